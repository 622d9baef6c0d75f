package domain

import "time"

// DateRange is an inclusive [Start, End] calendar interval.
// Both bounds are date-granular; times are truncated by the consumers.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the range has exactly two set bounds in order.
func (r DateRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.Start.After(r.End)
}

// Days returns the number of calendar days covered, inclusive.
// Returns 0 for an invalid range.
func (r DateRange) Days() int {
	if !r.Valid() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Clamp restricts the range to [minDate, maxDate].
func (r DateRange) Clamp(minDate, maxDate time.Time) DateRange {
	out := r
	if out.Start.Before(minDate) {
		out.Start = minDate
	}
	if out.End.After(maxDate) {
		out.End = maxDate
	}
	return out
}

// Prior returns the immediately preceding window of identical length,
// contiguous and non-overlapping: it ends the day before r.Start.
func (r DateRange) Prior() DateRange {
	days := r.Days()
	end := r.Start.AddDate(0, 0, -1)
	return DateRange{Start: end.AddDate(0, 0, -(days - 1)), End: end}
}

// SelectionLeaf is one selected (game, platform) pair in the filter tree.
// Platform may be empty for game-only leaves (single-platform entities).
type SelectionLeaf struct {
	Game     Game     `json:"game"`
	Platform Platform `json:"platform,omitempty"`
}

// Matches reports whether the record falls under this leaf.
func (l SelectionLeaf) Matches(r *Record) bool {
	if r.Game != l.Game {
		return false
	}
	return l.Platform == "" || r.Platform == l.Platform
}

// FilterSelection is the user's full filter state: the selected leaves
// plus the date interval. It is a plain value passed into the filter
// engine; the checkbox-tree sync that produces it lives elsewhere.
type FilterSelection struct {
	Leaves []SelectionLeaf `json:"leaves"`
	Range  DateRange       `json:"range"`
}
