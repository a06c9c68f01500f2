// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"time"
)

// dateLayouts are the publication date formats seen in the wild, tried in
// order once ISO timestamps have been cut down to their date part. Slash
// dates resolve day-first before month-first.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// NormalizeDate converts a publication date to YYYY-MM-DD. ISO timestamps
// are cut at the time separator and timezone offset; the remainder is
// tried against the known layouts. Unrecognized dates pass through
// unchanged so the raw value stays visible downstream.
func NormalizeDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	if i := strings.Index(date, "T"); i >= 0 {
		date = date[:i]
	}
	if i := strings.Index(date, "+"); i >= 0 {
		date = date[:i]
	}
	date = strings.TrimSuffix(date, "Z")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return date
}
