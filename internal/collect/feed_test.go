// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/tagharvest/pkg/types"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>UX Design on Medium</title>
<item><title>Trust</title><link>https://medium.com/@ana/designing-for-trust-1a2b3c4d5e6f?source=rss-feed</link></item>
<item><title>Patterns</title><link>https://medium.com/@lee/prompt-patterns-9f8e7d6c5b4a</link></item>
<item><title>Duplicate</title><link>https://medium.com/@ana/designing-for-trust-1a2b3c4d5e6f</link></item>
<item><title>Navigation</title><link>https://medium.com/tag/ux-design</link></item>
</channel></rss>`

// withFeedServer points the feed template at a local server for the test.
func withFeedServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	saved := feedURLTemplate
	feedURLTemplate = srv.URL + "/feed/tag/%s"
	t.Cleanup(func() { feedURLTemplate = saved })
	return srv
}

func TestSeedFromFeed(t *testing.T) {
	var gotUA string
	withFeedServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, feedXML)
	})

	cfg := types.CollectConfig{}
	cfg.UserAgent = "tagharvest/test"

	links, err := SeedFromFeed(context.Background(), &http.Client{}, "ux-design", cfg)
	if err != nil {
		t.Fatalf("SeedFromFeed: %v", err)
	}

	want := []string{
		"https://medium.com/@ana/designing-for-trust-1a2b3c4d5e6f",
		"https://medium.com/@lee/prompt-patterns-9f8e7d6c5b4a",
	}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("links = %v, want %v", links, want)
	}
	if gotUA != "tagharvest/test" {
		t.Errorf("User-Agent = %q, want configured agent", gotUA)
	}
}

func TestSeedFromFeedHTTPError(t *testing.T) {
	withFeedServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := SeedFromFeed(context.Background(), &http.Client{}, "ux-design", types.CollectConfig{})
	if err == nil {
		t.Fatal("expected error for HTTP 404")
	}
	if !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("err = %v, want status in message", err)
	}
}

func TestSeedFromFeedMalformedXML(t *testing.T) {
	withFeedServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not a feed")
	})

	_, err := SeedFromFeed(context.Background(), &http.Client{}, "ux-design", types.CollectConfig{})
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parsing feed") {
		t.Errorf("err = %v, want parse context", err)
	}
}

func TestSeedFromFeedEmptyFeed(t *testing.T) {
	withFeedServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>Empty</title></channel></rss>`)
	})

	links, err := SeedFromFeed(context.Background(), &http.Client{}, "ux-design", types.CollectConfig{})
	if err != nil {
		t.Fatalf("SeedFromFeed: %v", err)
	}
	if links != nil {
		t.Errorf("links = %v, want none", links)
	}
}
