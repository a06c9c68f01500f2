// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"fmt"
	"regexp"
	"strings"
)

// tagURLTemplate targets the chronological /latest listing. Tags without
// one redirect to the default feed, which the scroll loop tolerates.
// Declared as a var so tests can substitute a local server.
var tagURLTemplate = "https://medium.com/tag/%s/latest"

// excludedFragments mark navigation, search, and account URLs that are
// never articles.
var excludedFragments = []string{
	"/tag/", "/search", "/me/", "/about", "/followers",
	"/lists", "/topics", "?source=", "/archive", "signin", "signup",
}

// hexSlugPattern matches the trailing hex ID Medium appends to story slugs.
var hexSlugPattern = regexp.MustCompile(`-[a-f0-9]{8,12}$`)

// TagURL returns the listing URL for a tag.
func TagURL(tag string) string {
	return fmt.Sprintf(tagURLTemplate, tag)
}

// IsArticleURL reports whether href looks like a story link rather than
// navigation: an author path long enough to carry a slug, or a trailing
// hex story ID, with the known non-article fragments excluded first.
func IsArticleURL(href string) bool {
	if href == "" {
		return false
	}
	lower := strings.ToLower(href)
	for _, frag := range excludedFragments {
		if strings.Contains(lower, frag) {
			return false
		}
	}
	if strings.Contains(href, "/@") && len(href) > 40 {
		return true
	}
	return hexSlugPattern.MatchString(href)
}

// NormalizeURL strips the query string and fragment, leaving the stable
// article address used for deduplication.
func NormalizeURL(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		return href[:i]
	}
	return href
}
