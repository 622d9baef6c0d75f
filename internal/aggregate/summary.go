package aggregate

import (
	"time"

	"github.com/webboardlab/voc-insight/internal/classifier"
	"github.com/webboardlab/voc-insight/internal/domain"
)

// Negative-ratio thresholds (percent) for the insight tiers.
const (
	criticalRatioThreshold = 30
	cautionRatioThreshold  = 10
)

// SummaryOptions tunes the yesterday summary.
type SummaryOptions struct {
	// ExcludeNonCore drops non-core tags (balance grumbling, ads,
	// generic events, unclassified) from BOTH the numerator and the
	// denominator of the negative ratio. The two sides always use the
	// same policy; a mismatched ratio is worse than either choice.
	ExcludeNonCore bool
}

// DefaultSummaryOptions is the service-wide policy: non-core tags are
// excluded so chronic noise does not drown real incidents.
var DefaultSummaryOptions = SummaryOptions{ExcludeNonCore: true}

// YesterdaySummary builds one IssueSummary per known game for the day before
// asOf, with the delta computed against the day before that. Games with no
// records for the day yield a sentinel HasData=false entry so the dashboard
// can render a "no data" card instead of skipping the game.
func YesterdaySummary(records []domain.Record, asOf time.Time, opts SummaryOptions) map[domain.Game]domain.IssueSummary {
	yesterday := truncateDay(asOf).AddDate(0, 0, -1)
	dayBefore := yesterday.AddDate(0, 0, -1)

	byGame := make(map[domain.Game][]domain.Record)
	prevCounts := make(map[domain.Game]int)
	for i := range records {
		r := records[i]
		switch {
		case sameDay(r.Date, yesterday):
			byGame[r.Game] = append(byGame[r.Game], r)
		case sameDay(r.Date, dayBefore):
			prevCounts[r.Game]++
		}
	}

	out := make(map[domain.Game]domain.IssueSummary, len(domain.AllGames))
	for _, game := range domain.AllGames {
		out[game] = summarizeGameDay(game, byGame[game], prevCounts[game], opts)
	}
	return out
}

func summarizeGameDay(game domain.Game, dayRecords []domain.Record, prevCount int, opts SummaryOptions) domain.IssueSummary {
	summary := domain.IssueSummary{
		Game:    game,
		Count:   len(dayRecords),
		Delta:   len(dayRecords) - prevCount,
		Insight: domain.InsightNormal,
	}
	if len(dayRecords) == 0 {
		// Sentinel "no data" entry.
		return summary
	}
	summary.HasData = true

	// Numerator and denominator share the core-tag policy.
	scope := dayRecords
	if opts.ExcludeNonCore {
		scope = filterCore(dayRecords)
	}

	negatives := 0
	for i := range scope {
		if scope[i].Sentiment == domain.SentimentNegative {
			negatives++
		}
	}
	if len(scope) > 0 {
		summary.NegativeRatio = float64(negatives) / float64(len(scope)) * 100
	}

	summary.DominantTag = dominantTag(scope, dayRecords)
	summary.Sample = pickSample(scope, dayRecords)

	switch {
	case summary.NegativeRatio >= criticalRatioThreshold:
		summary.Insight = domain.InsightCritical
	case summary.NegativeRatio >= cautionRatioThreshold:
		summary.Insight = domain.InsightCaution
	}
	return summary
}

// pickSample returns the representative record: the longest-bodied negative
// record in scope, falling back to the longest-bodied record overall.
func pickSample(scope, all []domain.Record) *domain.Record {
	if best := longestBody(scope, true); best != nil {
		return best
	}
	if best := longestBody(scope, false); best != nil {
		return best
	}
	return longestBody(all, false)
}

// longestBody returns the record with the longest body summary, optionally
// restricted to negative-sentiment records. Length is measured in runes so
// Korean bodies compare fairly with ASCII ones.
func longestBody(records []domain.Record, negativeOnly bool) *domain.Record {
	var best *domain.Record
	bestLen := -1
	for i := range records {
		r := &records[i]
		if negativeOnly && r.Sentiment != domain.SentimentNegative {
			continue
		}
		if n := len([]rune(r.BodySummary)); n > bestLen {
			best, bestLen = r, n
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// dominantTag returns the most frequent level-2 tag in scope, falling back
// to the full day's records when the scope is empty.
func dominantTag(scope, all []domain.Record) string {
	records := scope
	if len(records) == 0 {
		records = all
	}

	counts := make(map[string]int)
	for i := range records {
		counts[records[i].TagLevel2]++
	}

	best, bestCount := "", -1
	for tag, count := range counts {
		if count > bestCount || (count == bestCount && tag < best) {
			best, bestCount = tag, count
		}
	}
	return best
}

func filterCore(records []domain.Record) []domain.Record {
	core := make([]domain.Record, 0, len(records))
	for i := range records {
		if classifier.IsCoreTag(records[i].TagLevel2) {
			core = append(core, records[i])
		}
	}
	return core
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
