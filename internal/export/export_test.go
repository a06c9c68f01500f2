// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/pdiddy/tagharvest/internal/store"
	"github.com/pdiddy/tagharvest/pkg/types"
)

func article(title, published, url string, tags ...string) types.Article {
	return types.Article{
		Title:     title,
		Published: published,
		Tags:      tags,
		Source:    types.SourceMedium,
		URL:       url,
	}
}

// --- tag normalization ---

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ux-design", "ux design"},
		{"UX-Design", "ux design"},
		{"artificial_intelligence", "artificial intelligence"},
		{"  Machine Learning  ", "machine learning"},
		{"ai", "ai"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeTag(tt.in); got != tt.want {
				t.Errorf("NormalizeTag(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatchesTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		required []string
		want     bool
	}{
		{
			"exact match after normalization",
			[]string{"ux design", "artificial intelligence"},
			[]string{"ux-design", "artificial-intelligence"},
			true,
		},
		{
			"record tag contains required",
			[]string{"applied artificial intelligence"},
			[]string{"artificial-intelligence"},
			true,
		},
		{
			"required contains record tag",
			[]string{"ai"},
			[]string{"generative-ai"},
			true,
		},
		{
			"one required tag missing",
			[]string{"ux design"},
			[]string{"ux-design", "artificial-intelligence"},
			false,
		},
		{
			"no required tags always matches",
			[]string{"anything"},
			nil,
			true,
		},
		{
			"empty record tags fail any requirement",
			nil,
			[]string{"ux-design"},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesTags(tt.tags, tt.required); got != tt.want {
				t.Errorf("matchesTags(%v, %v) = %v, want %v", tt.tags, tt.required, got, tt.want)
			}
		})
	}
}

func TestMatchesYear(t *testing.T) {
	tests := []struct {
		published string
		year      int
		want      bool
	}{
		{"2025-03-01", 2025, true},
		{"2024-12-31", 2025, false},
		{"2025", 2025, true},
		{"", 2025, false},
		{"March 2025", 2025, false},
	}
	for _, tt := range tests {
		t.Run(tt.published, func(t *testing.T) {
			if got := matchesYear(tt.published, tt.year); got != tt.want {
				t.Errorf("matchesYear(%q, %d) = %v, want %v", tt.published, tt.year, got, tt.want)
			}
		})
	}
}

// --- filtering ---

func TestFilterYearAndTags(t *testing.T) {
	a := article("a", "2025-03-01", "https://medium.com/@x/a-1a2b3c4d5e6f",
		"ux design", "artificial intelligence")
	b := article("b", "2024-01-01", "https://medium.com/@x/b-2b3c4d5e6f7a",
		"ux design", "artificial intelligence")
	c := article("c", "2025-05-01", "https://medium.com/@x/c-3c4d5e6f7a8b",
		"ux design")

	got := Filter([]types.Article{a, b, c}, 2025, []string{"ux-design", "artificial-intelligence"})
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Title != "a" {
		t.Errorf("kept %q, want a", got[0].Title)
	}
}

func TestFilterSortsByDateThenURL(t *testing.T) {
	articles := []types.Article{
		article("late", "2025-06-01", "https://medium.com/@x/late-1a2b3c4d5e6f", "go"),
		article("tie-b", "2025-02-01", "https://medium.com/@x/bbb-2b3c4d5e6f7a", "go"),
		article("early", "2025-01-01", "https://medium.com/@x/early-3c4d5e6f7a8b", "go"),
		article("tie-a", "2025-02-01", "https://medium.com/@x/aaa-4d5e6f7a8b9c", "go"),
	}

	got := Filter(articles, 2025, []string{"go"})
	want := []string{"early", "tie-a", "tie-b", "late"}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestFilterInputOrderDoesNotLeak(t *testing.T) {
	a := article("a", "2025-01-01", "https://medium.com/@x/a-1a2b3c4d5e6f", "go")
	b := article("b", "2025-02-01", "https://medium.com/@x/b-2b3c4d5e6f7a", "go")

	forward := Filter([]types.Article{a, b}, 2025, []string{"go"})
	reversed := Filter([]types.Article{b, a}, 2025, []string{"go"})

	for i := range forward {
		if forward[i].URL != reversed[i].URL {
			t.Fatalf("order differs at %d: %q vs %q", i, forward[i].URL, reversed[i].URL)
		}
	}
}

// --- export run ---

func TestRunWritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	cfg := types.FilterConfig{
		Year:         2025,
		RequiredTags: []string{"ux-design"},
		DataDir:      dir,
	}
	articles := []types.Article{
		article("keep", "2025-03-01", "https://medium.com/@x/keep-1a2b3c4d5e6f", "ux design"),
		article("drop", "2024-03-01", "https://medium.com/@x/drop-2b3c4d5e6f7a", "ux design"),
	}

	var buf strings.Builder
	summary, err := Run(articles, cfg, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Input != 2 || summary.Exported != 1 || summary.Dropped() != 1 {
		t.Errorf("summary = %+v", summary)
	}

	// Both files exist and carry the same URL set.
	fromJSON, err := store.LoadArticles(summary.JSONPath)
	if err != nil {
		t.Fatalf("loading JSON export: %v", err)
	}
	jsonURLs := make(map[string]bool)
	for _, a := range fromJSON {
		jsonURLs[a.URL] = true
	}

	f, err := os.Open(summary.CSVPath)
	if err != nil {
		t.Fatalf("opening CSV export: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	csvURLs := make(map[string]bool)
	for _, row := range rows[1:] {
		csvURLs[row[len(row)-1]] = true
	}

	if len(jsonURLs) != len(csvURLs) {
		t.Fatalf("JSON has %d URLs, CSV has %d", len(jsonURLs), len(csvURLs))
	}
	for u := range jsonURLs {
		if !csvURLs[u] {
			t.Errorf("URL %s in JSON but not CSV", u)
		}
	}

	if !strings.Contains(buf.String(), "Filter summary: 1 of 2 records") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := types.FilterConfig{
		Year:         2025,
		RequiredTags: []string{"go"},
		DataDir:      dir,
	}
	articles := []types.Article{
		article("b", "2025-02-01", "https://medium.com/@x/b-2b3c4d5e6f7a", "go"),
		article("a", "2025-01-01", "https://medium.com/@x/a-1a2b3c4d5e6f", "go"),
	}

	var buf strings.Builder
	summary, err := Run(articles, cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	firstJSON, err := os.ReadFile(summary.JSONPath)
	if err != nil {
		t.Fatal(err)
	}
	firstCSV, err := os.ReadFile(summary.CSVPath)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Run(articles, cfg, &buf); err != nil {
		t.Fatal(err)
	}
	secondJSON, err := os.ReadFile(summary.JSONPath)
	if err != nil {
		t.Fatal(err)
	}
	secondCSV, err := os.ReadFile(summary.CSVPath)
	if err != nil {
		t.Fatal(err)
	}

	if string(firstJSON) != string(secondJSON) {
		t.Error("JSON export not byte-identical across runs")
	}
	if string(firstCSV) != string(secondCSV) {
		t.Error("CSV export not byte-identical across runs")
	}
}

func TestRunEmptyResultStillWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := types.FilterConfig{Year: 2030, RequiredTags: []string{"go"}, DataDir: dir}

	var buf strings.Builder
	summary, err := Run(sampleInput(), cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Exported != 0 {
		t.Errorf("Exported = %d, want 0", summary.Exported)
	}

	data, err := os.ReadFile(summary.JSONPath)
	if err != nil {
		t.Fatalf("JSON export missing: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("JSON export = %q, want empty array", string(data))
	}
}

func sampleInput() []types.Article {
	return []types.Article{
		article("a", "2025-01-01", "https://medium.com/@x/a-1a2b3c4d5e6f", "go"),
	}
}
