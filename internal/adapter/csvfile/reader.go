package csvfile

import (
	"compress/bzip2"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/fars-report/internal/domain"
)

// Loader reads delimited accident files into tables. It holds no state; the
// pipeline owns logging and metrics around each read.
type Loader struct{}

// ReadRecords parses one accident file into a table. Compression is chosen
// by extension (.bz2 or .gz), anything else is read as plain CSV. A missing
// file wraps the underlying path error, so errors.Is(err, fs.ErrNotExist)
// holds for callers that tolerate absent years.
func (Loader) ReadRecords(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	defer f.Close()

	r, err := decompressed(f, path)
	if err != nil {
		return nil, err
	}
	tbl, err := parseTable(r)
	if err != nil {
		return nil, fmt.Errorf("read records %s: %w", path, err)
	}
	return tbl, nil
}

func decompressed(f *os.File, path string) (io.Reader, error) {
	switch {
	case strings.HasSuffix(path, ".bz2"):
		return bzip2.NewReader(f), nil
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("read records %s: %w", path, err)
		}
		return zr, nil
	default:
		return f, nil
	}
}

// parseTable reads the header and all rows, then types each column: a column
// is numeric when every non-empty field in it parses as a decimal number.
// Inference needs the whole file, so rows are buffered before cells are built.
func parseTable(r io.Reader) (*domain.Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file: no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}

	var raw [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		raw = append(raw, append([]string(nil), rec...))
	}

	numeric := inferNumericColumns(raw, len(cols))

	tbl, err := domain.NewTable(cols...)
	if err != nil {
		return nil, err
	}
	cells := make([]domain.Cell, len(cols))
	for _, rec := range raw {
		for i, field := range rec {
			cells[i] = makeCell(field, numeric[i])
		}
		if err := tbl.AppendRow(cells...); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func inferNumericColumns(rows [][]string, ncols int) []bool {
	numeric := make([]bool, ncols)
	for i := range numeric {
		numeric[i] = true
	}
	for _, rec := range rows {
		for i, field := range rec {
			if !numeric[i] {
				continue
			}
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if _, err := strconv.ParseFloat(field, 64); err != nil {
				numeric[i] = false
			}
		}
	}
	return numeric
}

// makeCell types one field. Empty fields become null cells regardless of the
// column type, so a blank MONTH stays distinguishable from month zero.
func makeCell(field string, numeric bool) domain.Cell {
	field = strings.TrimSpace(field)
	if field == "" {
		return domain.NullCell()
	}
	if numeric {
		if v, err := strconv.ParseFloat(field, 64); err == nil {
			return domain.NumberCell(v)
		}
	}
	return domain.TextCell(field)
}
