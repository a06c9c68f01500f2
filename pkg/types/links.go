// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TagLinks is the per-tag collection checkpoint: the article URLs gathered
// for one tag, in first-seen order.
type TagLinks struct {
	// Tag is the tag the links were collected under.
	Tag string `json:"tag" yaml:"tag"`

	// Total is the number of links (kept in sync with len(Links) on save).
	Total int `json:"total_links" yaml:"total_links"`

	// Links lists the collected article URLs in first-seen order,
	// deduplicated.
	Links []string `json:"links" yaml:"links"`
}
