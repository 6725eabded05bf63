package domain

import (
	"fmt"
	"sort"
	"time"
)

// SummaryMatrix is a month-by-year pivot of accident counts. A cell for a
// (month, year) pair with no observed rows is absent, not zero; [SummaryMatrix.Count]
// reports presence explicitly so the distinction survives rendering.
type SummaryMatrix struct {
	months []int
	years  []Year
	cells  map[summaryKey]int

	// GeneratedAt records when the pivot was produced, from the package clock.
	GeneratedAt time.Time
}

type summaryKey struct {
	month int
	year  Year
}

// Summarize pivots an aggregated MONTH+year table into a [SummaryMatrix].
// Rows with a null MONTH carry no month information and are ignored; the
// returned int reports how many were. Year columns are exactly the distinct
// years present in the rows, so a matrix built from zero rows has zero
// columns rather than empty columns for requested years.
func Summarize(agg *Table) (*SummaryMatrix, int, error) {
	m := &SummaryMatrix{cells: make(map[summaryKey]int), GeneratedAt: clock.Now()}
	if agg == nil || agg.NumRows() == 0 {
		return m, 0, nil
	}
	if err := agg.Require(ColMonth, ColYear); err != nil {
		return nil, 0, err
	}
	months, err := agg.Column(ColMonth)
	if err != nil {
		return nil, 0, err
	}
	years, err := agg.Column(ColYear)
	if err != nil {
		return nil, 0, err
	}

	skipped := 0
	for i := range months {
		if months[i].IsNull() {
			skipped++
			continue
		}
		mo, ok := months[i].Int()
		if !ok {
			return nil, 0, fmt.Errorf("row %d: non-integer MONTH value %q", i, months[i].Text())
		}
		yr, ok := years[i].Int()
		if !ok {
			return nil, 0, fmt.Errorf("row %d: non-integer year value %q", i, years[i].Text())
		}
		m.cells[summaryKey{month: mo, year: Year(yr)}]++
	}

	monthSet := make(map[int]struct{})
	yearSet := make(map[Year]struct{})
	for k := range m.cells {
		monthSet[k.month] = struct{}{}
		yearSet[k.year] = struct{}{}
	}
	for mo := range monthSet {
		m.months = append(m.months, mo)
	}
	for y := range yearSet {
		m.years = append(m.years, y)
	}
	sort.Ints(m.months)
	sort.Slice(m.years, func(i, j int) bool { return m.years[i] < m.years[j] })

	return m, skipped, nil
}

// Months returns the distinct months present, ascending.
func (m *SummaryMatrix) Months() []int { return append([]int(nil), m.months...) }

// Years returns the distinct years present, ascending.
func (m *SummaryMatrix) Years() []Year { return append([]Year(nil), m.years...) }

// Count returns the occurrence count for (month, year) and whether that cell
// is present at all.
func (m *SummaryMatrix) Count(month int, year Year) (int, bool) {
	n, ok := m.cells[summaryKey{month: month, year: year}]
	return n, ok
}

// Empty reports whether the matrix has no cells.
func (m *SummaryMatrix) Empty() bool { return len(m.cells) == 0 }
