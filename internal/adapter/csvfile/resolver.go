// Package csvfile locates and reads the yearly FARS accident files.
package csvfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/fars-report/internal/domain"
)

// DefaultPattern is the naming template of the yearly accident release. The
// name is a compatibility contract with existing datasets: the canonical
// year is substituted without padding, so year 99 yields accident_99.csv.bz2.
const DefaultPattern = "accident_%d.csv.bz2"

// Resolver maps years to accident files under a base directory. The zero
// value resolves DefaultPattern relative to the current directory; tests
// point Dir at a temporary directory and swap Pattern for an uncompressed
// one.
type Resolver struct {
	Dir     string
	Pattern string
}

// Filename returns the bare file name expected to hold a year's records.
func (r Resolver) Filename(year domain.Year) string {
	p := r.Pattern
	if p == "" {
		p = DefaultPattern
	}
	return fmt.Sprintf(p, year.Int())
}

// Path returns the full path for a year's file.
func (r Resolver) Path(year domain.Year) string {
	return filepath.Join(r.Dir, r.Filename(year))
}

// ValidatePattern checks that a naming template substitutes exactly one
// integer year and nothing else.
func ValidatePattern(p string) error {
	if strings.Count(p, "%") != 1 || !strings.Contains(p, "%d") {
		return fmt.Errorf("filename pattern %q must contain exactly one %%d", p)
	}
	return nil
}
