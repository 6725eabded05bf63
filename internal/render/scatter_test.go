package render

import (
	"bytes"
	"context"
	"math/bits"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fars-report/internal/domain"
)

func renderToLines(t *testing.T, m *domain.StateMap, width, height int) []string {
	t.Helper()
	var buf bytes.Buffer
	s := NewScatter(&buf, WithSize(width, height))
	require.NoError(t, s.Render(context.Background(), m))
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// countDots sums the braille dots set across all grid lines.
func countDots(lines []string) int {
	n := 0
	for _, line := range lines {
		for _, r := range line {
			if r >= 0x2800 && r <= 0x28FF {
				n += bits.OnesCount8(uint8(r - 0x2800))
			}
		}
	}
	return n
}

func TestRenderScatter(t *testing.T) {
	m := &domain.StateMap{
		State:     1,
		StateName: "Alabama",
		Year:      2013,
		Points: []domain.Point{
			{Lon: -90, Lat: 30},
			{Lon: -80, Lat: 40},
		},
		Bounds:    domain.Bounds{MinLon: -90, MaxLon: -80, MinLat: 30, MaxLat: 40},
		HasBounds: true,
	}

	lines := renderToLines(t, m, 10, 4)
	require.Len(t, lines, 6, "title, four grid rows, bounds footer")

	t.Run("title", func(t *testing.T) {
		assert.Equal(t, "Alabama, 2013: 2 accident locations", lines[0])
	})

	t.Run("corners land in corner cells", func(t *testing.T) {
		grid := lines[1:5]
		for _, row := range grid {
			assert.Equal(t, 10, len([]rune(row)))
		}

		// Northeast point: top grid row, last cell, upper-right dot.
		topRight := []rune(grid[0])[9]
		assert.Equal(t, rune(0x2808), topRight)

		// Southwest point: bottom grid row, first cell, lower-left dot.
		bottomLeft := []rune(grid[3])[0]
		assert.Equal(t, rune(0x2840), bottomLeft)

		assert.Equal(t, 2, countDots(grid), "one dot per accident")
	})

	t.Run("bounds footer", func(t *testing.T) {
		assert.Equal(t, "lon [-90.0000, -80.0000]  lat [30.0000, 40.0000]", lines[5])
	})
}

func TestRenderExcludedNote(t *testing.T) {
	m := &domain.StateMap{
		State:     48,
		StateName: "Texas",
		Year:      2014,
		Points:    []domain.Point{{Lon: -95.3, Lat: 29.8}},
		Bounds:    domain.Bounds{MinLon: -95.3, MaxLon: -95.3, MinLat: 29.8, MaxLat: 29.8},
		HasBounds: true,
		Matched:   3,
		Excluded:  2,
	}

	lines := renderToLines(t, m, 12, 4)
	require.NotEmpty(t, lines)
	assert.Equal(t, "Texas, 2014: 1 accident locations (2 without usable coordinates)", lines[0])
}

func TestRenderSinglePointCenters(t *testing.T) {
	m := &domain.StateMap{
		State:     56,
		StateName: "Wyoming",
		Year:      2015,
		Points:    []domain.Point{{Lon: -104.8, Lat: 41.1}},
		Bounds:    domain.Bounds{MinLon: -104.8, MaxLon: -104.8, MinLat: 41.1, MaxLat: 41.1},
		HasBounds: true,
	}

	lines := renderToLines(t, m, 8, 4)
	require.Len(t, lines, 6)
	assert.Equal(t, 1, countDots(lines[1:5]))
}

func TestRenderUnknownStateName(t *testing.T) {
	m := &domain.StateMap{
		State:     3,
		Year:      2013,
		Points:    []domain.Point{{Lon: -100, Lat: 40}},
		Bounds:    domain.Bounds{MinLon: -100, MaxLon: -100, MinLat: 40, MaxLat: 40},
		HasBounds: true,
	}

	lines := renderToLines(t, m, 8, 4)
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "state 3,"))
}

func TestRenderNothingToDraw(t *testing.T) {
	t.Run("no points", func(t *testing.T) {
		m := &domain.StateMap{State: 1, StateName: "Alabama", Year: 2013}
		lines := renderToLines(t, m, 10, 4)
		assert.Empty(t, lines)
	})

	t.Run("points without bounds never happens, still safe", func(t *testing.T) {
		m := &domain.StateMap{
			State:  1,
			Year:   2013,
			Points: []domain.Point{{Lon: -86, Lat: 32}},
		}
		lines := renderToLines(t, m, 10, 4)
		assert.Empty(t, lines)
	})
}
