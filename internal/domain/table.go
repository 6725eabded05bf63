package domain

import (
	"fmt"
	"strconv"
)

// Column labels the reporting operations rely on. FARS files carry dozens of
// other columns; those are loaded and carried along but never interpreted.
const (
	ColState     = "STATE"
	ColMonth     = "MONTH"
	ColLongitude = "LONGITUD"
	ColLatitude  = "LATITUDE"

	// ColYear is added during aggregation. Lowercase on purpose: FARS files
	// already have an uppercase YEAR column and labels are case-sensitive.
	ColYear = "year"
)

// Cell is one typed value in a [Table]. The loader infers column types, so a
// cell is numeric, text, or null (an empty source field).
type Cell struct {
	text string
	num  float64
	kind cellKind
}

type cellKind uint8

const (
	cellNull cellKind = iota
	cellText
	cellNumber
)

// TextCell returns a text-typed cell.
func TextCell(s string) Cell { return Cell{text: s, kind: cellText} }

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell { return Cell{num: v, kind: cellNumber} }

// NullCell returns the null cell, representing an empty source field.
func NullCell() Cell { return Cell{} }

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool { return c.kind == cellNull }

// Text returns the cell's text. Numeric cells format their value; null cells
// return the empty string.
func (c Cell) Text() string {
	if c.kind == cellNumber {
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	}
	return c.text
}

// Float returns the numeric value and whether the cell is numeric.
func (c Cell) Float() (float64, bool) {
	if c.kind != cellNumber {
		return 0, false
	}
	return c.num, true
}

// Int returns the cell value as an int when the cell is numeric and whole.
func (c Cell) Int() (int, bool) {
	v, ok := c.Float()
	if !ok {
		return 0, false
	}
	n := int(v)
	if float64(n) != v {
		return 0, false
	}
	return n, true
}

// Table is an ordered, column-labeled collection of rows loaded from one
// accident file or derived from another table. Derivations ([Table.Select],
// [Table.WithColumn], [Concat]) return new tables; a loaded table is never
// mutated afterward.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]Cell
}

// NewTable creates an empty table with the given column labels. Labels must
// be unique; FARS layouts never repeat a column.
func NewTable(cols ...string) (*Table, error) {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}
	return &Table{cols: append([]string(nil), cols...), index: index}, nil
}

// Columns returns the column labels in order.
func (t *Table) Columns() []string { return append([]string(nil), t.cols...) }

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.rows) }

// HasColumn reports whether a column with the given label exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Require verifies that every named column is present, returning a
// [MissingColumnError] for the first one that is not.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return &MissingColumnError{Column: c}
		}
	}
	return nil
}

// AppendRow adds one row. The cell count must match the column count.
func (t *Table) AppendRow(cells ...Cell) error {
	if len(cells) != len(t.cols) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.cols))
	}
	t.rows = append(t.rows, append([]Cell(nil), cells...))
	return nil
}

// Cell returns the value at (row, column).
func (t *Table) Cell(row int, col string) (Cell, error) {
	i, ok := t.index[col]
	if !ok {
		return Cell{}, &MissingColumnError{Column: col}
	}
	if row < 0 || row >= len(t.rows) {
		return Cell{}, fmt.Errorf("row %d out of range (%d rows)", row, len(t.rows))
	}
	return t.rows[row][i], nil
}

// Column returns all values of one column in row order.
func (t *Table) Column(col string) ([]Cell, error) {
	i, ok := t.index[col]
	if !ok {
		return nil, &MissingColumnError{Column: col}
	}
	out := make([]Cell, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Select returns a new table narrowed to the given columns, in the given
// order.
func (t *Table) Select(cols ...string) (*Table, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		j, ok := t.index[c]
		if !ok {
			return nil, &MissingColumnError{Column: c}
		}
		idx[i] = j
	}
	out, err := NewTable(cols...)
	if err != nil {
		return nil, err
	}
	for _, row := range t.rows {
		cells := make([]Cell, len(idx))
		for i, j := range idx {
			cells[i] = row[j]
		}
		out.rows = append(out.rows, cells)
	}
	return out, nil
}

// WithColumn returns a new table extended by one column holding the same
// value in every row. The label must not collide with an existing column.
func (t *Table) WithColumn(name string, value Cell) (*Table, error) {
	out, err := NewTable(append(t.Columns(), name)...)
	if err != nil {
		return nil, err
	}
	for _, row := range t.rows {
		cells := make([]Cell, 0, len(row)+1)
		cells = append(cells, row...)
		cells = append(cells, value)
		out.rows = append(out.rows, cells)
	}
	return out, nil
}

// Concat concatenates tables row-wise. All inputs must share the same column
// labels in the same order. Zero inputs yield an empty, column-less table.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return &Table{index: map[string]int{}}, nil
	}
	out, err := NewTable(tables[0].cols...)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		if !equalColumns(t.cols, out.cols) {
			return nil, fmt.Errorf("column mismatch: %v vs %v", t.cols, out.cols)
		}
		out.rows = append(out.rows, t.rows...)
	}
	return out, nil
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
