package csvfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fars-report/internal/domain"
)

func TestFilename(t *testing.T) {
	t.Run("default pattern", func(t *testing.T) {
		var r Resolver
		assert.Equal(t, "accident_2013.csv.bz2", r.Filename(2013))
	})

	t.Run("no padding for short years", func(t *testing.T) {
		var r Resolver
		assert.Equal(t, "accident_99.csv.bz2", r.Filename(99))
	})

	t.Run("custom pattern", func(t *testing.T) {
		r := Resolver{Pattern: "accident_%d.csv"}
		assert.Equal(t, "accident_2015.csv", r.Filename(2015))
	})

	t.Run("token and integer year agree", func(t *testing.T) {
		year, err := domain.ParseYear(" 2013 ")
		require.NoError(t, err)

		var r Resolver
		assert.Equal(t, r.Filename(domain.Year(2013)), r.Filename(year))
	})
}

func TestPath(t *testing.T) {
	t.Run("joins base directory", func(t *testing.T) {
		r := Resolver{Dir: filepath.Join("data", "fars")}
		assert.Equal(t, filepath.Join("data", "fars", "accident_2014.csv.bz2"), r.Path(2014))
	})

	t.Run("zero value resolves relative", func(t *testing.T) {
		var r Resolver
		assert.Equal(t, "accident_2014.csv.bz2", r.Path(2014))
	})
}

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"default", DefaultPattern, false},
		{"plain csv", "accident_%d.csv", false},
		{"gzip", "accident_%d.csv.gz", false},
		{"no verb", "accident.csv.bz2", true},
		{"wrong verb", "accident_%s.csv.bz2", true},
		{"two verbs", "accident_%d_%d.csv", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePattern(tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
