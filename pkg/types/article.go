// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceMedium identifies the origin platform stamped on every record.
const SourceMedium = "medium"

// Article holds the metadata collected for a single article.
type Article struct {
	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Author is the display name of the primary author.
	Author string `json:"author" yaml:"author"`

	// Published is the publication date normalized to YYYY-MM-DD where
	// possible; unparseable dates are carried through as found.
	Published string `json:"publication_date" yaml:"publication_date"`

	// Tags lists the topical labels attached to the article.
	Tags []string `json:"tags" yaml:"tags"`

	// ReadingTime is the platform's reading-time hint (e.g. "5 min read").
	ReadingTime string `json:"reading_time" yaml:"reading_time"`

	// Summary is the article description or excerpt.
	Summary string `json:"summary" yaml:"summary"`

	// Source identifies the origin platform (always SourceMedium here).
	Source string `json:"source" yaml:"source"`

	// URL is the canonical article URL and the record's unique key.
	URL string `json:"url" yaml:"url"`
}

// Usable reports whether the record carries enough metadata to keep:
// at least a title or a publication date.
func (a Article) Usable() bool {
	return a.Title != "" || a.Published != ""
}
