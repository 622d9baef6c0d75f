package domain

import "fmt"

// LoadFailureKind classifies why a load cycle produced no table.
type LoadFailureKind string

const (
	LoadAuthFailure    LoadFailureKind = "auth_failure"
	LoadNotFound       LoadFailureKind = "not_found"
	LoadMissingColumns LoadFailureKind = "missing_columns"
	LoadEmpty          LoadFailureKind = "empty"
)

// LoadFailure is a recoverable load error. Callers show the message and an
// empty table; nothing here is fatal.
type LoadFailure struct {
	Kind    LoadFailureKind
	Detail  string
	Wrapped error
}

func (e *LoadFailure) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("load failed (%s): %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("load failed (%s)", e.Kind)
}

func (e *LoadFailure) Unwrap() error {
	return e.Wrapped
}

// NewLoadFailure builds a LoadFailure of the given kind.
func NewLoadFailure(kind LoadFailureKind, detail string, wrapped error) *LoadFailure {
	return &LoadFailure{Kind: kind, Detail: detail, Wrapped: wrapped}
}

// ConfigurationWarning signals a misconfigured but non-fatal filter state.
// It lets the caller distinguish "empty because no data" from "empty
// because the selection asked for nothing".
type ConfigurationWarning string

const (
	WarnEmptySelection   ConfigurationWarning = "empty_selection"
	WarnInvalidDateRange ConfigurationWarning = "invalid_date_range"
	WarnNoMatches        ConfigurationWarning = "no_matches"
)
