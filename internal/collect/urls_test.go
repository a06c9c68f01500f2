// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import "testing"

func TestTagURL(t *testing.T) {
	got := TagURL("ux-design")
	want := "https://medium.com/tag/ux-design/latest"
	if got != want {
		t.Errorf("TagURL = %q, want %q", got, want)
	}
}

func TestIsArticleURL(t *testing.T) {
	tests := []struct {
		name string
		href string
		want bool
	}{
		{
			name: "author story with hex id",
			href: "https://medium.com/@ana/designing-for-trust-1a2b3c4d5e6f",
			want: true,
		},
		{
			name: "publication story with hex id",
			href: "https://medium.com/some-pub/story-name-9f8e7d6c",
			want: true,
		},
		{
			name: "long author path without hex id",
			href: "https://medium.com/@somewriter/a-story-slug-without-an-id",
			want: true,
		},
		{
			name: "short author profile",
			href: "https://medium.com/@ana",
			want: false,
		},
		{
			name: "empty",
			href: "",
			want: false,
		},
		{
			name: "tag listing",
			href: "https://medium.com/tag/ux-design",
			want: false,
		},
		{
			name: "search",
			href: "https://medium.com/search?q=design",
			want: false,
		},
		{
			name: "account settings",
			href: "https://medium.com/me/settings",
			want: false,
		},
		{
			name: "sign in",
			href: "https://medium.com/m/signin?operation=login",
			want: false,
		},
		{
			name: "tracking query excluded before normalization",
			href: "https://medium.com/@ana/designing-for-trust-1a2b3c4d5e6f?source=tag_page",
			want: false,
		},
		{
			name: "followers page",
			href: "https://medium.com/@ana/followers",
			want: false,
		},
		{
			name: "uppercase exclusion still matches",
			href: "https://medium.com/Tag/ux-design",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsArticleURL(tt.href); got != tt.want {
				t.Errorf("IsArticleURL(%q) = %v, want %v", tt.href, got, tt.want)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{
			name: "strips query",
			href: "https://medium.com/@ana/story-1a2b3c4d5e6f?source=rss",
			want: "https://medium.com/@ana/story-1a2b3c4d5e6f",
		},
		{
			name: "strips fragment",
			href: "https://medium.com/@ana/story-1a2b3c4d5e6f#comments",
			want: "https://medium.com/@ana/story-1a2b3c4d5e6f",
		},
		{
			name: "strips query and fragment",
			href: "https://medium.com/@ana/story-1a2b3c4d5e6f?a=1#b",
			want: "https://medium.com/@ana/story-1a2b3c4d5e6f",
		},
		{
			name: "clean url unchanged",
			href: "https://medium.com/@ana/story-1a2b3c4d5e6f",
			want: "https://medium.com/@ana/story-1a2b3c4d5e6f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(tt.href); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
