package pipeline_test

import (
	"context"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/observability"
)

// --- mocks ---

// mockResolver names files the way the default layout does, without touching
// the filesystem.
type mockResolver struct{}

func (mockResolver) Path(year domain.Year) string {
	return fmt.Sprintf("accident_%d.csv.bz2", year.Int())
}

// mockLoader serves in-memory tables keyed by path and records every path
// requested.
type mockLoader struct {
	tables    map[string]*domain.Table
	requested []string
}

func (m *mockLoader) ReadRecords(path string) (*domain.Table, error) {
	m.requested = append(m.requested, path)
	tbl, ok := m.tables[path]
	if !ok {
		return nil, fmt.Errorf("read records: open %s: %w", path, fs.ErrNotExist)
	}
	return tbl, nil
}

// mockRenderer records the maps it was asked to draw.
type mockRenderer struct {
	rendered []*domain.StateMap
	err      error
}

func (m *mockRenderer) Render(_ context.Context, sm *domain.StateMap) error {
	if m.err != nil {
		return m.err
	}
	m.rendered = append(m.rendered, sm)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

// --- fixture tables ---

// accidentRow is one synthetic FARS record.
type accidentRow struct {
	state int
	month int
	lon   float64
	lat   float64

	nullMonth bool
}

// makeYearTable builds a FARS-shaped table with the columns the reporting
// operations touch plus passenger columns they must carry untouched.
func makeYearTable(t *testing.T, rows ...accidentRow) *domain.Table {
	t.Helper()
	tbl, err := domain.NewTable("STATE", "ST_CASE", "MONTH", "LONGITUD", "LATITUDE", "FATALS")
	require.NoError(t, err)
	for i, r := range rows {
		month := domain.NumberCell(float64(r.month))
		if r.nullMonth {
			month = domain.NullCell()
		}
		require.NoError(t, tbl.AppendRow(
			domain.NumberCell(float64(r.state)),
			domain.NumberCell(float64(10001+i)),
			month,
			domain.NumberCell(r.lon),
			domain.NumberCell(r.lat),
			domain.NumberCell(1),
		))
	}
	return tbl
}

// monthsOf lists the MONTH values of a narrowed table in row order.
func monthsOf(t *testing.T, tbl *domain.Table) []int {
	t.Helper()
	cells, err := tbl.Column(domain.ColMonth)
	require.NoError(t, err)
	out := make([]int, 0, len(cells))
	for _, c := range cells {
		n, ok := c.Int()
		require.True(t, ok)
		out = append(out, n)
	}
	return out
}

// cellsOf flattens a matrix into a comparable map keyed by "month/year".
func cellsOf(m *domain.SummaryMatrix) map[string]int {
	out := make(map[string]int)
	for _, month := range m.Months() {
		for _, year := range m.Years() {
			if n, ok := m.Count(month, year); ok {
				out[fmt.Sprintf("%d/%s", month, year)] = n
			}
		}
	}
	return out
}
