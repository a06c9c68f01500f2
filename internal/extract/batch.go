// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/tagharvest/internal/browser"
	"github.com/pdiddy/tagharvest/internal/store"
	"github.com/pdiddy/tagharvest/pkg/types"
)

// articleSettle is the render wait after an article page load. Tests
// shorten this to avoid real sleeps.
var articleSettle = 2 * time.Second

// Summary holds the outcome of a batch extraction run.
type Summary struct {
	Extracted  int
	Structured int
	Fallback   int
	Unusable   int
	Failed     int
}

// Total returns the number of URLs processed.
func (s Summary) Total() int {
	return s.Extracted + s.Unusable + s.Failed
}

// HasFailures reports whether any page failed to load or was unusable.
func (s Summary) HasFailures() bool {
	return s.Unusable > 0 || s.Failed > 0
}

// Run extracts metadata for every URL through one browser session and
// writes the raw records checkpoint. Individual failures are reported and
// skipped; only the checkpoint write is fatal.
func Run(ctx context.Context, opener browser.Opener, urls []string, cfg types.ExtractConfig, logger *zap.Logger, w io.Writer) ([]types.Article, Summary, error) {
	articles, summary := Batch(ctx, opener, urls, cfg, logger, w)

	path := store.RawArticlesPath(cfg.DataDir, cfg.Year)
	if err := store.SaveArticles(path, articles); err != nil {
		return articles, summary, fmt.Errorf("writing raw articles: %w", err)
	}
	fmt.Fprintf(w, "saved: %s (%d records)\n", path, len(articles))
	return articles, summary, nil
}

// Batch loads each URL in sequence, printing per-URL status and
// continuing past individual failures. A randomized politeness delay
// spaces out consecutive article loads.
func Batch(ctx context.Context, opener browser.Opener, urls []string, cfg types.ExtractConfig, logger *zap.Logger, w io.Writer) ([]types.Article, Summary) {
	var (
		articles []types.Article
		summary  Summary
	)

	for i, u := range urls {
		if i > 0 {
			time.Sleep(politenessDelay(cfg))
		}
		fmt.Fprintf(w, "[%d/%d] extracting: %s\n", i+1, len(urls), u)

		outcome, err := extractOne(ctx, opener, u)
		if err != nil {
			var unusable *UnusableError
			if errors.As(err, &unusable) {
				summary.Unusable++
				logger.Warn("unusable page",
					zap.String("url", u),
					zap.String("reason", unusable.Reason))
				fmt.Fprintf(w, "  dropped: %s\n", unusable.Reason)
			} else {
				summary.Failed++
				logger.Warn("extraction failed",
					zap.String("url", u),
					zap.Error(err))
				fmt.Fprintf(w, "  failed:  %v\n", err)
			}
			continue
		}

		summary.Extracted++
		switch outcome.Provenance {
		case ProvenanceStructured:
			summary.Structured++
		case ProvenanceFallback:
			summary.Fallback++
		}
		articles = append(articles, outcome.Article)
		fmt.Fprintf(w, "  ok (%s): %s\n", outcome.Provenance, outcome.Article.Title)
	}

	fmt.Fprintf(w, "\nExtraction summary: %d extracted (%d structured, %d fallback), %d unusable, %d failed (total: %d)\n",
		summary.Extracted, summary.Structured, summary.Fallback,
		summary.Unusable, summary.Failed, summary.Total())
	return articles, summary
}

// extractOne loads one article page and extracts from its rendered HTML.
// The page is closed before returning.
func extractOne(ctx context.Context, opener browser.Opener, u string) (Outcome, error) {
	page, err := opener.OpenPage(ctx, u)
	if err != nil {
		return Outcome{}, fmt.Errorf("loading article: %w", err)
	}
	defer page.Close()

	if err := browser.WaitReady(page, articleSettle, 0); err != nil {
		return Outcome{}, err
	}
	html, err := page.HTML()
	if err != nil {
		return Outcome{}, err
	}
	return FromHTML(html, u)
}

// politenessDelay picks a delay within the configured bounds.
func politenessDelay(cfg types.ExtractConfig) time.Duration {
	if cfg.DelayMax <= cfg.DelayMin {
		return cfg.DelayMin
	}
	return cfg.DelayMin + time.Duration(rand.Int63n(int64(cfg.DelayMax-cfg.DelayMin)))
}
