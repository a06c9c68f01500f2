// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/tagharvest/internal/httputil"
	"github.com/pdiddy/tagharvest/pkg/types"
)

// feedURLTemplate is the RSS feed for a tag. Declared as a var so tests
// can substitute an httptest server.
var feedURLTemplate = "https://medium.com/feed/tag/%s"

// SeedFromFeed fetches a tag's RSS feed and returns the article links it
// carries, normalized and deduplicated in feed order. The feed only covers
// the most recent stories; scroll collection remains authoritative.
func SeedFromFeed(ctx context.Context, client *http.Client, tag string, cfg types.CollectConfig) ([]string, error) {
	feedURL := fmt.Sprintf(feedURLTemplate, tag)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating feed request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching feed for %s: %w", tag, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed for %s returned HTTP %d", tag, resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed for %s: %w", tag, err)
	}

	var links []string
	seen := make(map[string]bool)
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}
		link := NormalizeURL(item.Link)
		if !IsArticleURL(link) || seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
	}
	return links, nil
}
