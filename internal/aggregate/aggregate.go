// Package aggregate computes derived statistics over normalized VOC record
// subsets. Nothing here mutates its input, and every function returns
// empty/zero-valued output on empty input instead of erroring.
package aggregate

import (
	"sort"
	"time"

	"github.com/webboardlab/voc-insight/internal/domain"
)

// DefaultTopN is the number of categories kept before the remainder is
// collapsed into the synthetic Other bucket.
const DefaultTopN = 4

// OtherBucket labels the synthetic remainder bucket in distributions.
const OtherBucket = "Other"

// GroupBy selects the label a record is bucketed under.
type GroupBy func(r *domain.Record) string

// Standard grouping fields.
var (
	ByGame      GroupBy = func(r *domain.Record) string { return string(r.Game) }
	ByPlatform  GroupBy = func(r *domain.Record) string { return string(r.Platform) }
	ByTagLevel1 GroupBy = func(r *domain.Record) string { return string(r.TagLevel1) }
	ByTagLevel2 GroupBy = func(r *domain.Record) string { return r.TagLevel2 }
	BySentiment GroupBy = func(r *domain.Record) string { return string(r.Sentiment) }
)

// DailyTrend produces one point per calendar day in the inclusive range,
// zero-filled for days with no records. The zero-fill keeps the trend line
// continuous; output length is always range.Days(). An invalid range yields
// an empty series.
func DailyTrend(records []domain.Record, r domain.DateRange) []domain.TrendPoint {
	days := r.Days()
	if days <= 0 {
		return nil
	}

	counts := make(map[int64]int, days)
	for i := range records {
		counts[dayKey(records[i].Date)]++
	}

	series := make([]domain.TrendPoint, 0, days)
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		series = append(series, domain.TrendPoint{Date: d, Count: counts[dayKey(d)]})
	}
	return series
}

// CategoryDistribution value-counts records under groupBy, sorted by count
// descending (label ascending on ties, for deterministic output). When the
// number of distinct labels exceeds topN+1, only the top topN survive and
// the rest collapse into one Other bucket holding their sum; at exactly
// topN+1 or fewer, everything is returned unmodified.
func CategoryDistribution(records []domain.Record, groupBy GroupBy, topN int) []domain.DistributionEntry {
	if topN <= 0 {
		topN = DefaultTopN
	}

	counts := make(map[string]int)
	for i := range records {
		counts[groupBy(&records[i])]++
	}
	if len(counts) == 0 {
		return nil
	}

	entries := make([]domain.DistributionEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, domain.DistributionEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})

	if len(entries) <= topN+1 {
		return entries
	}

	rest := 0
	for _, e := range entries[topN:] {
		rest += e.Count
	}
	return append(entries[:topN:topN], domain.DistributionEntry{Label: OtherBucket, Count: rest})
}

// PeriodDelta counts records in the current range and in the immediately
// preceding window of equal length, contiguous and non-overlapping.
func PeriodDelta(records []domain.Record, current domain.DateRange) domain.PeriodDelta {
	if !current.Valid() {
		return domain.PeriodDelta{}
	}
	prior := current.Prior()

	out := domain.PeriodDelta{}
	for i := range records {
		d := records[i].Date
		switch {
		case inRange(d, current):
			out.Current++
		case inRange(d, prior):
			out.Prior++
		}
	}
	out.Delta = out.Current - out.Prior
	return out
}

func inRange(d time.Time, r domain.DateRange) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func dayKey(t time.Time) int64 {
	y, m, d := t.Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}
