// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/tagharvest/pkg/types"
)

// articleTypes is the set of schema.org types treated as articles.
var articleTypes = map[string]bool{
	"Article":     true,
	"NewsArticle": true,
	"BlogPosting": true,
}

// ldNode is one JSON-LD node with the fields the pipeline reads. Type,
// author, and keywords vary in shape across pages, so they decode from
// raw JSON.
type ldNode struct {
	Type          json.RawMessage   `json:"@type"`
	Headline      string            `json:"headline"`
	Name          string            `json:"name"`
	Author        json.RawMessage   `json:"author"`
	DatePublished string            `json:"datePublished"`
	Description   string            `json:"description"`
	Keywords      json.RawMessage   `json:"keywords"`
	TimeRequired  string            `json:"timeRequired"`
	Graph         []json.RawMessage `json:"@graph"`
}

// fromJSONLD scans the page's ld+json script blocks for the first article
// node and maps it to a record. ErrNoStructuredData is returned when no
// block holds one.
func fromJSONLD(doc *goquery.Document) (types.Article, error) {
	var found *ldNode
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if node := matchArticleNode(s.Text()); node != nil {
			found = node
			return false
		}
		return true
	})
	if found == nil {
		return types.Article{}, ErrNoStructuredData
	}
	return found.article(), nil
}

// matchArticleNode decodes one script block, which may hold a single node,
// a top-level array of nodes, or an @graph wrapper, and returns the first
// article node. Malformed JSON is skipped, not an error.
func matchArticleNode(text string) *ldNode {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []ldNode
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil
		}
		for i := range list {
			if list[i].isArticle() {
				return &list[i]
			}
		}
		return nil
	}

	var node ldNode
	if err := json.Unmarshal([]byte(trimmed), &node); err != nil {
		return nil
	}
	if node.isArticle() {
		return &node
	}
	for _, raw := range node.Graph {
		var n ldNode
		if err := json.Unmarshal(raw, &n); err != nil {
			continue
		}
		if n.isArticle() {
			return &n
		}
	}
	return nil
}

// isArticle reports whether the node's @type (string or list) is one of
// the article types.
func (n *ldNode) isArticle() bool {
	if len(n.Type) == 0 {
		return false
	}
	var single string
	if err := json.Unmarshal(n.Type, &single); err == nil {
		return articleTypes[single]
	}
	var list []string
	if err := json.Unmarshal(n.Type, &list); err == nil {
		for _, t := range list {
			if articleTypes[t] {
				return true
			}
		}
	}
	return false
}

// article maps the node to a record, normalizing the date and flattening
// the flexible author and keywords shapes.
func (n *ldNode) article() types.Article {
	a := types.Article{
		Title:       n.Headline,
		Author:      decodeAuthor(n.Author),
		Summary:     n.Description,
		Tags:        decodeKeywords(n.Keywords),
		ReadingTime: n.TimeRequired,
	}
	if a.Title == "" {
		a.Title = n.Name
	}
	if n.DatePublished != "" {
		a.Published = NormalizeDate(n.DatePublished)
	}
	return a
}

// ldName is the name-bearing shape used by author objects.
type ldName struct {
	Name string `json:"name"`
}

// decodeAuthor flattens the author field, which appears as an object with
// a name, a list of such objects or plain strings, or a bare string.
func decodeAuthor(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj ldName
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
		return obj.Name
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		var first ldName
		if err := json.Unmarshal(list[0], &first); err == nil && first.Name != "" {
			return first.Name
		}
		var fs string
		if err := json.Unmarshal(list[0], &fs); err == nil {
			return fs
		}
	}
	return ""
}

// decodeKeywords flattens the keywords field, which appears as a list of
// strings or a single comma-joined string.
func decodeKeywords(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err != nil || joined == "" {
		return nil
	}
	var tags []string
	for _, k := range strings.Split(joined, ",") {
		if k = strings.TrimSpace(k); k != "" {
			tags = append(tags, k)
		}
	}
	return tags
}
