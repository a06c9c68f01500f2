// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export filters extracted article records by publication year and
// required tags, then writes the surviving set to matching JSON and CSV
// files in a fixed order, so re-running on the same input reproduces the
// same bytes. See docs/ARCHITECTURE § Filtering and Export.
package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/tagharvest/internal/store"
	"github.com/pdiddy/tagharvest/pkg/types"
)

// Summary holds the outcome of a filter/export run.
type Summary struct {
	Input    int
	Exported int
	JSONPath string
	CSVPath  string
}

// Dropped returns the number of records the filter removed.
func (s Summary) Dropped() int {
	return s.Input - s.Exported
}

// NormalizeTag canonicalizes a tag for comparison: lowercase, with hyphens
// and underscores mapped to spaces. "UX-Design" and "ux design" compare
// equal after normalization.
func NormalizeTag(tag string) string {
	tag = strings.ToLower(tag)
	tag = strings.ReplaceAll(tag, "-", " ")
	tag = strings.ReplaceAll(tag, "_", " ")
	return strings.TrimSpace(tag)
}

// matchesYear reports whether a normalized publication date falls in year.
// Dates are kept as strings, so the check is a prefix match on the year.
func matchesYear(published string, year int) bool {
	return strings.HasPrefix(published, strconv.Itoa(year))
}

// matchesTags reports whether every required tag is present among the
// record's tags. Comparison is on normalized forms with containment in
// either direction, so "artificial intelligence" satisfies a record tagged
// "ai in artificial intelligence" and vice versa.
func matchesTags(tags, required []string) bool {
	normalized := make([]string, len(tags))
	for i, t := range tags {
		normalized[i] = NormalizeTag(t)
	}
	for _, req := range required {
		r := NormalizeTag(req)
		found := false
		for _, t := range normalized {
			if strings.Contains(t, r) || strings.Contains(r, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Filter returns the records published in year that carry every required
// tag, sorted ascending by publication date with ties broken by URL. The
// sort is the export's ordering contract; input order never leaks through.
func Filter(articles []types.Article, year int, requiredTags []string) []types.Article {
	var kept []types.Article
	for _, a := range articles {
		if !matchesYear(a.Published, year) {
			continue
		}
		if !matchesTags(a.Tags, requiredTags) {
			continue
		}
		kept = append(kept, a)
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Published != kept[j].Published {
			return kept[i].Published < kept[j].Published
		}
		return kept[i].URL < kept[j].URL
	})
	return kept
}

// Run filters records per cfg and writes the JSON and CSV exports, printing
// per-file status and a summary line.
func Run(articles []types.Article, cfg types.FilterConfig, w io.Writer) (Summary, error) {
	kept := Filter(articles, cfg.Year, cfg.RequiredTags)

	summary := Summary{
		Input:    len(articles),
		Exported: len(kept),
		JSONPath: store.FilteredJSONPath(cfg.DataDir, cfg.Year),
		CSVPath:  store.FilteredCSVPath(cfg.DataDir, cfg.Year),
	}

	if err := store.SaveArticles(summary.JSONPath, kept); err != nil {
		return summary, fmt.Errorf("writing filtered JSON: %w", err)
	}
	fmt.Fprintf(w, "exported: %s (%d records)\n", summary.JSONPath, len(kept))

	if err := store.SaveArticlesCSV(summary.CSVPath, kept); err != nil {
		return summary, fmt.Errorf("writing filtered CSV: %w", err)
	}
	fmt.Fprintf(w, "exported: %s (%d records)\n", summary.CSVPath, len(kept))

	fmt.Fprintf(w, "\nFilter summary: %d of %d records match year %d with tags %s\n",
		summary.Exported, summary.Input, cfg.Year, strings.Join(cfg.RequiredTags, ", "))
	return summary, nil
}
