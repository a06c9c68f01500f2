// Package collect harvests article links from tag listing pages. Each tag
// is optionally seeded from its RSS feed, then scrolled through a browser
// session until the listing stops yielding new links, the scroll cap is
// hit, or a chronological listing has moved past the target year.
// See docs/ARCHITECTURE § Collection.
package collect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/tagharvest/internal/browser"
	"github.com/pdiddy/tagharvest/internal/store"
	"github.com/pdiddy/tagharvest/pkg/types"
)

// listingSettle is the render wait after the listing page load. Tests
// shorten this to avoid real sleeps.
var listingSettle = 5 * time.Second

// interstitialWait is the extra wait when the listing lands on an
// anti-bot interstitial.
var interstitialWait = 15 * time.Second

// Summary holds the outcome of a collection run across tags.
type Summary struct {
	Tags      int
	Links     int
	FeedSeeds int
}

// Run collects links for every tag through one browser session, merging
// each tag's result into its checkpoint file. A tag whose listing cannot
// be opened aborts the run; checkpoints of completed tags are kept.
func Run(ctx context.Context, opener browser.Opener, client *http.Client, tags []string, cfg types.CollectConfig, logger *zap.Logger, w io.Writer) (Summary, error) {
	var summary Summary
	for _, tag := range tags {
		links, seeded, err := CollectTag(ctx, opener, client, tag, cfg, logger, w)
		if err != nil {
			return summary, fmt.Errorf("collecting tag %s: %w", tag, err)
		}

		merged := links
		if existing, loadErr := store.LoadTagLinks(cfg.DataDir, tag); loadErr == nil {
			merged = store.MergeLinks(existing.Links, links)
		}
		if err := store.SaveTagLinks(cfg.DataDir, types.TagLinks{Tag: tag, Links: merged}); err != nil {
			return summary, fmt.Errorf("saving links for %s: %w", tag, err)
		}
		fmt.Fprintf(w, "saved: %s (%d links)\n", store.LinksPath(cfg.DataDir, tag), len(merged))

		summary.Tags++
		summary.Links += len(merged)
		summary.FeedSeeds += seeded
	}
	fmt.Fprintf(w, "\nCollection summary: %d links across %d tags (%d seeded from feeds)\n",
		summary.Links, summary.Tags, summary.FeedSeeds)
	return summary, nil
}

// CollectTag harvests article links for one tag and returns them
// deduplicated in first-seen order, along with the number seeded from the
// feed. Scroll and harvest failures are logged and skipped; failing to
// open the listing at all is fatal.
func CollectTag(ctx context.Context, opener browser.Opener, client *http.Client, tag string, cfg types.CollectConfig, logger *zap.Logger, w io.Writer) (links []string, seeded int, err error) {
	fmt.Fprintf(w, "collecting tag: %s\n", tag)

	seen := make(map[string]bool)

	if cfg.SeedFromFeed {
		seeds, feedErr := SeedFromFeed(ctx, client, tag, cfg)
		if feedErr != nil {
			logger.Warn("feed seeding failed", zap.String("tag", tag), zap.Error(feedErr))
			fmt.Fprintf(w, "  feed seeding skipped: %v\n", feedErr)
		}
		for _, s := range seeds {
			if seen[s] {
				continue
			}
			seen[s] = true
			links = append(links, s)
		}
		seeded = len(links)
		if seeded > 0 {
			fmt.Fprintf(w, "  seeded %d links from feed\n", seeded)
		}
	}

	page, err := opener.OpenPage(ctx, TagURL(tag))
	if err != nil {
		return links, seeded, fmt.Errorf("opening listing page: %w", err)
	}
	defer page.Close()

	if err := browser.WaitReady(page, listingSettle, interstitialWait); err != nil {
		return links, seeded, err
	}
	if pageURL, urlErr := page.URL(); urlErr == nil && !strings.Contains(pageURL, "/latest") {
		fmt.Fprintf(w, "  redirected to %s (no chronological feed)\n", pageURL)
	}

	stalls := 0
	for scroll := 1; scroll <= cfg.MaxScrolls; scroll++ {
		if err := ctx.Err(); err != nil {
			return links, seeded, err
		}

		if scrollErr := page.ScrollStep(); scrollErr != nil {
			logger.Warn("scroll failed",
				zap.String("tag", tag), zap.Int("scroll", scroll), zap.Error(scrollErr))
		}

		hrefs, harvestErr := page.AnchorHrefs()
		if harvestErr != nil {
			logger.Warn("harvest failed",
				zap.String("tag", tag), zap.Int("scroll", scroll), zap.Error(harvestErr))
			stalls++
			if stalls >= cfg.StallLimit {
				fmt.Fprintf(w, "  no new links after %d scrolls, stopping\n", cfg.StallLimit)
				break
			}
			time.Sleep(cfg.ScrollPause)
			continue
		}

		added := 0
		for _, href := range hrefs {
			if !IsArticleURL(href) {
				continue
			}
			normalized := NormalizeURL(href)
			if seen[normalized] {
				continue
			}
			seen[normalized] = true
			links = append(links, normalized)
			added++
		}
		if added > 0 {
			stalls = 0
		} else {
			stalls++
		}

		// The year stop applies on the chronological listing only; on the
		// default feed old stories surface between new ones.
		chronological := false
		if pageURL, urlErr := page.URL(); urlErr == nil {
			chronological = strings.Contains(pageURL, "/latest")
		}
		if chronological && len(links) > 0 {
			if dates, datesErr := page.VisibleDates(); datesErr == nil && listingPastYear(dates, cfg.Year) {
				fmt.Fprintf(w, "  listing has moved past %d, stopping\n", cfg.Year)
				break
			}
		}

		if stalls >= cfg.StallLimit {
			fmt.Fprintf(w, "  no new links after %d scrolls, stopping\n", cfg.StallLimit)
			break
		}

		fmt.Fprintf(w, "  scroll %d: %d links\n", scroll, len(links))
		time.Sleep(cfg.ScrollPause)
	}

	fmt.Fprintf(w, "  collected %d links for %s\n", len(links), tag)
	return links, seeded, nil
}

// listingPastYear reports whether the listing has scrolled into stories
// published before year: any parseable visible date older than the target.
// Undated listings report false so collection keeps going.
func listingPastYear(dates []string, year int) bool {
	for _, d := range dates {
		if len(d) < 4 {
			continue
		}
		y, err := strconv.Atoi(d[:4])
		if err != nil {
			continue
		}
		if y < year {
			return true
		}
	}
	return false
}
