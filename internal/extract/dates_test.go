// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso timestamp", "2025-03-01T08:30:00.000Z", "2025-03-01"},
		{"offset timestamp", "2025-03-01T08:30:00+02:00", "2025-03-01"},
		{"plain date", "2025-03-01", "2025-03-01"},
		{"trailing z without time", "2025-03-01Z", "2025-03-01"},
		{"day first slashes", "15/03/2025", "2025-03-15"},
		{"month first slashes", "03/15/2025", "2025-03-15"},
		{"long month name", "March 1, 2025", "2025-03-01"},
		{"short month name", "Mar 1, 2025", "2025-03-01"},
		{"surrounding whitespace", "  2025-03-01  ", "2025-03-01"},
		{"unparseable carried through", "yesterday", "yesterday"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.in); got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
