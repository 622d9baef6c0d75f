// Package search provides keyword filtering over an already-filtered VOC
// subset. Keywords are literal substrings, never user-supplied regex.
package search

import (
	"regexp"
	"strings"

	"github.com/webboardlab/voc-insight/internal/aggregate"
	"github.com/webboardlab/voc-insight/internal/domain"
)

// ParseKeywords splits a raw comma-separated keyword string into clean
// tokens: whitespace trimmed, empties discarded.
func ParseKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Match returns the records whose title or body summary contains any of the
// comma-separated keywords, case-insensitively.
//
// An empty keyword string (after parsing) returns the input unchanged: it is
// the deliberate "no search active" state, not "match nothing".
func Match(records []domain.Record, keywordString string) []domain.Record {
	tokens := ParseKeywords(keywordString)
	if len(tokens) == 0 {
		return records
	}

	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = regexp.QuoteMeta(tok)
	}
	// Tokens are literal-escaped, so joining them can't produce an invalid
	// pattern.
	pattern := regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))

	var out []domain.Record
	for i := range records {
		r := &records[i]
		if pattern.MatchString(r.Title) || pattern.MatchString(r.BodySummary) {
			out = append(out, *r)
		}
	}
	return out
}

// Trend runs the daily trend over the matched subset, producing the
// search-scoped chart series.
func Trend(records []domain.Record, keywordString string, r domain.DateRange) []domain.TrendPoint {
	return aggregate.DailyTrend(Match(records, keywordString), r)
}
