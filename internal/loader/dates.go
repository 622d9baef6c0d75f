package loader

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts accepted in the raw date column, tried in order. The 6-digit
// YYMMDD token is what the contact form writes; ISO-like variants show up in
// manually backfilled partitions.
var dateLayouts = []string{
	"060102",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006.01.02",
}

// ParseDate parses a raw date cell into a calendar date (midnight UTC).
// Anything unparseable is an error and drops the row upstream.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
