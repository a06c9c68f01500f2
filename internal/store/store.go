// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the pipeline's checkpoints and exports: per-tag
// link lists, raw and filtered article records (JSON), the tabular export
// (CSV), and the end-of-run report. Files are the only handoff between
// stages; each stage reads its input from here and writes its output back.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/tagharvest/pkg/types"
)

// LinksPath returns the per-tag link checkpoint path under dir.
func LinksPath(dir, tag string) string {
	return filepath.Join(dir, fmt.Sprintf("raw_links_%s.json", tag))
}

// RawArticlesPath returns the pre-filter article record path under dir.
func RawArticlesPath(dir string, year int) string {
	return filepath.Join(dir, fmt.Sprintf("articles_raw_%d.json", year))
}

// FilteredJSONPath returns the structured export path under dir.
func FilteredJSONPath(dir string, year int) string {
	return filepath.Join(dir, fmt.Sprintf("articles_filtered_%d.json", year))
}

// FilteredCSVPath returns the tabular export path under dir.
func FilteredCSVPath(dir string, year int) string {
	return filepath.Join(dir, fmt.Sprintf("articles_filtered_%d.csv", year))
}

// SaveTagLinks writes a per-tag link checkpoint, creating dir if needed.
// Total is recomputed from Links before writing.
func SaveTagLinks(dir string, links types.TagLinks) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	links.Total = len(links.Links)
	data, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling links for %s: %w", links.Tag, err)
	}
	return os.WriteFile(LinksPath(dir, links.Tag), data, 0o644)
}

// LoadTagLinks reads a per-tag link checkpoint. A missing file is returned
// as-is so callers can distinguish it with os.IsNotExist.
func LoadTagLinks(dir, tag string) (types.TagLinks, error) {
	data, err := os.ReadFile(LinksPath(dir, tag))
	if err != nil {
		return types.TagLinks{}, err
	}
	var links types.TagLinks
	if err := json.Unmarshal(data, &links); err != nil {
		return types.TagLinks{}, fmt.Errorf("parsing links for %s: %w", tag, err)
	}
	return links, nil
}

// MergeLinks concatenates URL lists, dropping duplicates while preserving
// first-seen order across the inputs.
func MergeLinks(lists ...[]string) []string {
	seen := make(map[string]bool)
	var merged []string
	for _, list := range lists {
		for _, u := range list {
			if seen[u] {
				continue
			}
			seen[u] = true
			merged = append(merged, u)
		}
	}
	return merged
}

// SaveArticles writes article records as an indented JSON array.
func SaveArticles(path string, articles []types.Article) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if articles == nil {
		articles = []types.Article{}
	}
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling articles: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadArticles reads article records from a JSON array file.
func LoadArticles(path string) ([]types.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var articles []types.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("parsing articles from %s: %w", path, err)
	}
	return articles, nil
}

// csvHeader lists the tabular export columns, matching the JSON field names
// so both exports have identical field coverage.
var csvHeader = []string{
	"title", "author", "publication_date", "tags",
	"reading_time", "summary", "source", "url",
}

// tagDelimiter joins the tag list into the single CSV tags column.
const tagDelimiter = ", "

// SaveArticlesCSV writes article records as a flat table. The tags list is
// flattened into one delimited column; everything else maps one field per
// column in csvHeader order.
func SaveArticlesCSV(path string, articles []types.Article) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}

	w := csv.NewWriter(f)
	rows := [][]string{csvHeader}
	for _, a := range articles {
		rows = append(rows, []string{
			a.Title,
			a.Author,
			a.Published,
			strings.Join(a.Tags, tagDelimiter),
			a.ReadingTime,
			a.Summary,
			a.Source,
			a.URL,
		})
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing CSV file: %w", err)
	}
	return nil
}
