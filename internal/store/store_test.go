// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/tagharvest/pkg/types"
)

func sampleArticles() []types.Article {
	return []types.Article{
		{
			Title:       "Designing for Trust",
			Author:      "Ana Torres",
			Published:   "2025-03-01",
			Tags:        []string{"ux design", "artificial intelligence"},
			ReadingTime: "6 min read",
			Summary:     "How interface decisions shape user trust in AI products.",
			Source:      types.SourceMedium,
			URL:         "https://medium.com/@ana/designing-for-trust-1a2b3c4d5e6f",
		},
		{
			Title:     "Prompt Patterns",
			Author:    "Lee Wong",
			Published: "2025-05-12",
			Tags:      []string{"artificial intelligence"},
			Source:    types.SourceMedium,
			URL:       "https://medium.com/@lee/prompt-patterns-9f8e7d6c5b4a",
		},
	}
}

// --- path helpers ---

func TestPathHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"links", LinksPath("data", "ux-design"), filepath.Join("data", "raw_links_ux-design.json")},
		{"raw", RawArticlesPath("data", 2025), filepath.Join("data", "articles_raw_2025.json")},
		{"filtered json", FilteredJSONPath("data", 2025), filepath.Join("data", "articles_filtered_2025.json")},
		{"filtered csv", FilteredCSVPath("data", 2025), filepath.Join("data", "articles_filtered_2025.csv")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

// --- tag link checkpoints ---

func TestSaveLoadTagLinks(t *testing.T) {
	dir := t.TempDir()

	in := types.TagLinks{
		Tag: "ux-design",
		// Total deliberately wrong; Save must recompute it.
		Total: 99,
		Links: []string{
			"https://medium.com/@a/post-1a2b3c4d5e6f",
			"https://medium.com/@b/post-f6e5d4c3b2a1",
		},
	}
	if err := SaveTagLinks(dir, in); err != nil {
		t.Fatalf("SaveTagLinks: %v", err)
	}

	out, err := LoadTagLinks(dir, "ux-design")
	if err != nil {
		t.Fatalf("LoadTagLinks: %v", err)
	}
	if out.Tag != "ux-design" {
		t.Errorf("Tag = %q, want %q", out.Tag, "ux-design")
	}
	if out.Total != 2 {
		t.Errorf("Total = %d, want 2 (recomputed)", out.Total)
	}
	if !reflect.DeepEqual(out.Links, in.Links) {
		t.Errorf("Links = %v, want %v", out.Links, in.Links)
	}
}

func TestLoadTagLinksMissing(t *testing.T) {
	_, err := LoadTagLinks(t.TempDir(), "nonexistent")
	if !os.IsNotExist(err) {
		t.Errorf("err = %v, want os.IsNotExist", err)
	}
}

func TestSaveTagLinksCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	err := SaveTagLinks(dir, types.TagLinks{Tag: "ai", Links: []string{"https://medium.com/@x/p-1a2b3c4d5e6f"}})
	if err != nil {
		t.Fatalf("SaveTagLinks: %v", err)
	}
	if _, err := os.Stat(LinksPath(dir, "ai")); err != nil {
		t.Errorf("checkpoint not created: %v", err)
	}
}

// --- link merging ---

func TestMergeLinks(t *testing.T) {
	tests := []struct {
		name  string
		lists [][]string
		want  []string
	}{
		{
			"disjoint lists concatenate in order",
			[][]string{{"a", "b"}, {"c"}},
			[]string{"a", "b", "c"},
		},
		{
			"shared URL kept once at first position",
			[][]string{{"a", "b"}, {"b", "c", "a"}},
			[]string{"a", "b", "c"},
		},
		{
			"duplicate within one list",
			[][]string{{"a", "a", "b"}},
			[]string{"a", "b"},
		},
		{
			"empty input",
			nil,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeLinks(tt.lists...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergeLinks = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- article records ---

func TestSaveLoadArticles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	in := sampleArticles()

	if err := SaveArticles(path, in); err != nil {
		t.Fatalf("SaveArticles: %v", err)
	}
	out, err := LoadArticles(path)
	if err != nil {
		t.Fatalf("LoadArticles: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round-trip mismatch:\ngot  %+v\nwant %+v", out, in)
	}
}

func TestSaveArticlesNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")

	if err := SaveArticles(path, nil); err != nil {
		t.Fatalf("SaveArticles: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("file = %q, want JSON array", string(data))
	}
}

func TestLoadArticlesMissing(t *testing.T) {
	_, err := LoadArticles(filepath.Join(t.TempDir(), "missing.json"))
	if !os.IsNotExist(err) {
		t.Errorf("err = %v, want os.IsNotExist", err)
	}
}

func TestArticleJSONFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	if err := SaveArticles(path, sampleArticles()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, field := range []string{
		`"title"`, `"author"`, `"publication_date"`, `"tags"`,
		`"reading_time"`, `"summary"`, `"source"`, `"url"`,
	} {
		if !strings.Contains(string(data), field) {
			t.Errorf("JSON output missing field %s", field)
		}
	}
}

// --- CSV export ---

func TestSaveArticlesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.csv")
	if err := SaveArticlesCSV(path, sampleArticles()); err != nil {
		t.Fatalf("SaveArticlesCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (header + 2 records)", len(rows))
	}
	if !reflect.DeepEqual(rows[0], csvHeader) {
		t.Errorf("header = %v, want %v", rows[0], csvHeader)
	}

	first := rows[1]
	if first[0] != "Designing for Trust" {
		t.Errorf("title = %q", first[0])
	}
	if first[3] != "ux design, artificial intelligence" {
		t.Errorf("tags column = %q, want delimited list", first[3])
	}
	if first[7] != "https://medium.com/@ana/designing-for-trust-1a2b3c4d5e6f" {
		t.Errorf("url = %q", first[7])
	}
}

func TestSaveArticlesCSVEmptyStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.csv")
	if err := SaveArticlesCSV(path, nil); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want header only", len(rows))
	}
}
