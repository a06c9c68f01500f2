// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/pdiddy/tagharvest/pkg/types"
)

// fromPageStructure re-derives the metadata fields from the rendered DOM:
// headings and meta tags for the title and date, byline links for the
// author, tag links and the reading-time span for the rest. Every lookup
// is best-effort; absent elements leave the field empty.
func fromPageStructure(doc *goquery.Document) types.Article {
	var a types.Article

	a.Title = cleanText(doc.Find("h1").First().Text())
	if a.Title == "" {
		a.Title = metaContent(doc, `meta[property="og:title"]`)
	}
	if a.Title == "" {
		a.Title = metaContent(doc, `meta[name="twitter:title"]`)
	}
	if a.Title == "" {
		a.Title = cleanText(doc.Find("title").First().Text())
	}

	a.Author = cleanText(doc.Find(`a[data-testid="authorName"]`).First().Text())
	if a.Author == "" {
		a.Author = cleanText(doc.Find(`a[rel="author"]`).First().Text())
	}
	if a.Author == "" {
		a.Author = metaContent(doc, `meta[name="author"]`)
	}
	if a.Author == "" {
		a.Author = metaContent(doc, `meta[property="article:author"]`)
	}

	date := metaContent(doc, `meta[property="article:published_time"]`)
	if date == "" {
		date, _ = doc.Find("time[datetime]").First().Attr("datetime")
	}
	if date == "" {
		date = metaContent(doc, `meta[name="date"]`)
	}
	if date != "" {
		a.Published = NormalizeDate(date)
	}

	a.Summary = metaContent(doc, `meta[property="og:description"]`)

	seen := make(map[string]bool)
	doc.Find(`a[href*="/tag/"]`).Each(func(_ int, s *goquery.Selection) {
		tag := strings.ToLower(cleanText(s.Text()))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		a.Tags = append(a.Tags, tag)
	})

	doc.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := cleanText(s.Text())
		if strings.Contains(text, "min read") && len(text) < 40 {
			a.ReadingTime = text
			return false
		}
		return true
	})

	return a
}

// metaContent returns the cleaned content attribute of the first element
// matching selector.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return cleanText(content)
}

// fillFromReadability recovers a missing title, summary, or author from a
// readability parse of the captured HTML. Populated fields are never
// overridden; a failed parse leaves the record untouched.
func fillFromReadability(a *types.Article, html, pageURL string) {
	if a.Title != "" && a.Summary != "" && a.Author != "" {
		return
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return
	}
	parsed, err := readability.FromReader(strings.NewReader(html), u)
	if err != nil {
		return
	}
	if a.Title == "" {
		a.Title = cleanText(parsed.Title)
	}
	if a.Summary == "" {
		a.Summary = cleanText(parsed.Excerpt)
	}
	if a.Author == "" {
		a.Author = cleanText(parsed.Byline)
	}
}
