package domain

import (
	"strconv"
	"strings"
)

// Year is a canonicalized calendar year.
//
// Tokens arrive loosely typed (CLI arguments, config lists, range
// expansions), so every entry point canonicalizes through [ParseYear] before
// the year reaches file resolution or aggregation.
type Year int

// ParseYear canonicalizes a year token. Surrounding whitespace is tolerated;
// anything not coercible to a decimal integer fails with [InvalidYearError].
// A four-digit year is assumed but not enforced: implausible integers resolve
// to files that do not exist and fail downstream instead.
func ParseYear(token string) (Year, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return 0, &InvalidYearError{Token: token}
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &InvalidYearError{Token: token}
	}
	return Year(n), nil
}

// Int returns the year as a plain int.
func (y Year) Int() int { return int(y) }

func (y Year) String() string { return strconv.Itoa(int(y)) }
