// Command genfars generates synthetic yearly accident files shaped like the
// FARS accident_<year> release, for demos and for building test datasets
// without shipping real records. Generated files include rows with the FARS
// unknown-coordinate sentinel codes so downstream cleaning has something to
// clean.
//
// Usage:
//
//	go run ./cmd/genfars -out ./data -years 2013-2015 -rows 500 -gz
package main

import (
	"compress/gzip"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/fars-report/internal/domain"
)

// Unknown-coordinate sentinel codes per the FARS coding manual. A small share
// of generated rows carries one of these instead of a real location.
var (
	lonSentinels = []float64{777.7777, 888.8888, 999.9999}
	latSentinels = []float64{77.7777, 88.8888, 99.9999}
)

// sentinelShare is the fraction of rows given an unknown coordinate.
const sentinelShare = 0.05

// Contiguous-US coordinate window the synthetic locations are drawn from.
const (
	minLon, maxLon = -124.7, -67.0
	minLat, maxLat = 24.5, 49.4
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", ".", "directory to write accident files into")
	years := flag.String("years", "2015", "year or inclusive range, e.g. 2013-2015")
	rows := flag.Int("rows", 200, "data rows per year file")
	seed := flag.Int64("seed", 1, "random seed (same seed, same files)")
	gz := flag.Bool("gz", false, "write accident_<year>.csv.gz instead of plain .csv")
	flag.Parse()

	from, to, err := parseYears(*years)
	if err != nil {
		return err
	}
	if *rows < 1 {
		return fmt.Errorf("-rows must be positive, got %d", *rows)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))
	for year := from; year <= to; year++ {
		path, err := writeYear(*outDir, year, *rows, *gz, rng)
		if err != nil {
			return fmt.Errorf("generate %d: %w", year, err)
		}
		log.Printf("wrote %s (%d rows)", path, *rows)
	}
	return nil
}

// parseYears accepts a single year or an inclusive "from-to" range.
func parseYears(s string) (from, to int, err error) {
	if first, last, ok := strings.Cut(s, "-"); ok {
		from, err = strconv.Atoi(first)
		if err == nil {
			to, err = strconv.Atoi(last)
		}
		if err != nil || to < from {
			return 0, 0, fmt.Errorf("invalid -years range %q", s)
		}
		return from, to, nil
	}
	from, err = strconv.Atoi(s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -years value %q", s)
	}
	return from, from, nil
}

func writeYear(dir string, year, rows int, gz bool, rng *rand.Rand) (string, error) {
	name := fmt.Sprintf("accident_%d.csv", year)
	if gz {
		name += ".gz"
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var w io.Writer = f
	var zw *gzip.Writer
	if gz {
		zw = gzip.NewWriter(f)
		w = zw
	}

	if err := writeRecords(w, year, rows, rng); err != nil {
		return "", err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return "", err
		}
	}
	return path, f.Close()
}

func writeRecords(w io.Writer, year, rows int, rng *rand.Rand) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"STATE", "ST_CASE", "YEAR", "MONTH", "DAY", "LONGITUD", "LATITUDE", "FATALS"}); err != nil {
		return err
	}

	codes := domain.StateCodes()
	for i := 0; i < rows; i++ {
		state := codes[rng.Intn(len(codes))]
		lon := minLon + rng.Float64()*(maxLon-minLon)
		lat := minLat + rng.Float64()*(maxLat-minLat)
		if rng.Float64() < sentinelShare {
			k := rng.Intn(len(lonSentinels))
			lon, lat = lonSentinels[k], latSentinels[k]
		}

		rec := []string{
			strconv.Itoa(state),
			// ST_CASE is <state><5-digit sequence> in real releases.
			fmt.Sprintf("%d%05d", state, i+1),
			strconv.Itoa(year),
			strconv.Itoa(1 + rng.Intn(12)),
			strconv.Itoa(1 + rng.Intn(28)),
			strconv.FormatFloat(lon, 'f', 4, 64),
			strconv.FormatFloat(lat, 'f', 4, 64),
			strconv.Itoa(1 + rng.Intn(3)),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
