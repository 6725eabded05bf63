package domain

import "fmt"

// InvalidYearError reports a year token that cannot be canonicalized to an
// integer. In the aggregation path it is downgraded to a per-year warning; in
// the state map path it aborts the call.
type InvalidYearError struct {
	Token string
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("invalid year %q", e.Token)
}

// InvalidStateError reports a state identifier that is either not an integer
// or not present among the distinct STATE values of the year's records.
type InvalidStateError struct {
	Token string
	Year  Year
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %s: not present in %s accident records", e.Token, e.Year)
}

// MissingColumnError reports a required column absent from a loaded table.
// It usually means the file for that year follows a different layout than the
// yearly accident release.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %s", e.Column)
}
