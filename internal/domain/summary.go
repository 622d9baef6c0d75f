package domain

import "time"

// TrendPoint is one day of the daily trend series.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// DistributionEntry is one bucket of a categorical distribution.
type DistributionEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PeriodDelta compares a window against the preceding window of equal length.
type PeriodDelta struct {
	Current int `json:"current"`
	Prior   int `json:"prior"`
	Delta   int `json:"delta"`
}

// Insight tiers for the per-game yesterday summary.
const (
	InsightCritical = "critical"
	InsightCaution  = "caution"
	InsightNormal   = "normal"
)

// IssueSummary is the per-game, per-day derived aggregate backing the
// "yesterday" cards on the dashboard. Never persisted.
type IssueSummary struct {
	Game          Game    `json:"game"`
	Count         int     `json:"count"`
	Delta         int     `json:"delta"`          // vs. the day before
	NegativeRatio float64 `json:"negative_ratio"` // percentage, 0-100
	DominantTag   string  `json:"dominant_tag"`
	Insight       string  `json:"insight"` // critical / caution / normal
	Sample        *Record `json:"sample,omitempty"`
	HasData       bool    `json:"has_data"`
}
