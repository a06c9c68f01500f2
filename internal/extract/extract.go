// Package extract pulls article metadata out of rendered Medium pages.
// The schema.org JSON-LD block is the primary source; when it is absent,
// malformed, or missing a title, the same fields are re-derived from the
// page structure, with a readability pass recovering a still-missing title
// or summary. Pages yielding neither a title nor a date are unusable.
// See docs/ARCHITECTURE § Extraction.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/tagharvest/pkg/types"
)

// Provenance identifies which extraction path produced a record.
type Provenance string

const (
	// ProvenanceStructured marks records built from the JSON-LD block.
	ProvenanceStructured Provenance = "structured"

	// ProvenanceFallback marks records scraped from the page structure.
	ProvenanceFallback Provenance = "fallback"
)

// Outcome pairs an extracted record with the path that produced it.
type Outcome struct {
	Article    types.Article
	Provenance Provenance
}

// ErrNoStructuredData reports a page without a usable JSON-LD article node.
var ErrNoStructuredData = errors.New("no structured data block")

// UnusableError reports a page that yielded neither a title nor a
// publication date through either extraction path.
type UnusableError struct {
	URL    string
	Reason string
}

func (e *UnusableError) Error() string {
	return fmt.Sprintf("unusable page %s: %s", e.URL, e.Reason)
}

// FromHTML extracts article metadata from a rendered page. Partially
// populated records are returned as-is; filtering decides inclusion later.
// A page with no title and no date returns *UnusableError.
func FromHTML(html, pageURL string) (Outcome, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Outcome{}, fmt.Errorf("parsing page: %w", err)
	}

	article, err := fromJSONLD(doc)
	provenance := ProvenanceStructured
	if err != nil || article.Title == "" {
		article = fromPageStructure(doc)
		provenance = ProvenanceFallback
	}
	fillFromReadability(&article, html, pageURL)

	article.URL = pageURL
	article.Source = types.SourceMedium

	if article.Title == "" && article.Published == "" {
		return Outcome{}, &UnusableError{URL: pageURL, Reason: "no title or publication date"}
	}
	return Outcome{Article: article, Provenance: provenance}, nil
}

// cleanText collapses whitespace runs to single spaces and trims the ends,
// so multi-line DOM text compares predictably.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
