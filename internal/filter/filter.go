// Package filter reduces the normalized VOC table to the subset matching the
// user's (game, platform) selection and date range. Malformed selections
// yield empty results plus a ConfigurationWarning; nothing here errors.
package filter

import (
	"github.com/webboardlab/voc-insight/internal/domain"
)

// Apply returns the records matching the selection. A record matches when
// any selected leaf covers it (leaf predicates OR together) and its date
// falls inside the range after clamping to the table's actual coverage.
//
// An empty leaf set means "show nothing", not "no filter": the master
// checkbox unticked is a deliberate state. An invalid range is reported,
// not fixed up.
func Apply(table *domain.Table, sel domain.FilterSelection) ([]domain.Record, []domain.ConfigurationWarning) {
	var warnings []domain.ConfigurationWarning

	if len(sel.Leaves) == 0 {
		return nil, append(warnings, domain.WarnEmptySelection)
	}
	if !sel.Range.Valid() {
		return nil, append(warnings, domain.WarnInvalidDateRange)
	}
	if table.Empty() {
		return nil, warnings
	}

	minDate, maxDate, _ := table.DateBounds()
	r := sel.Range.Clamp(minDate, maxDate)

	var out []domain.Record
	for i := range table.Records {
		rec := &table.Records[i]
		if rec.Date.Before(r.Start) || rec.Date.After(r.End) {
			continue
		}
		for _, leaf := range sel.Leaves {
			if leaf.Matches(rec) {
				out = append(out, *rec)
				break
			}
		}
	}

	if len(out) == 0 {
		warnings = append(warnings, domain.WarnNoMatches)
	}
	return out, warnings
}
