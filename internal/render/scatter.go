// Package render draws cleaned accident coordinate sets as terminal plots.
package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/couchcryptid/fars-report/internal/domain"
)

const (
	defaultHeight = 16
	minWidth      = 20
	maxWidth      = 120
	widthBackup   = 80
)

// Scatter renders accident locations as a braille-dot scatter plot, one dot
// per accident. Braille cells pack 2x4 sub-character dots, so a modest
// terminal still resolves thousands of points.
type Scatter struct {
	w      io.Writer
	width  int // character cells; 0 means follow the terminal
	height int
}

// Option configures a Scatter.
type Option func(*Scatter)

// WithSize fixes the plot size in character cells instead of following the
// terminal width.
func WithSize(width, height int) Option {
	return func(s *Scatter) {
		s.width = width
		s.height = height
	}
}

// NewScatter creates a renderer writing to w.
func NewScatter(w io.Writer, opts ...Option) *Scatter {
	s := &Scatter{w: w, height: defaultHeight}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render draws the state map. A map with no points or no bounds draws
// nothing; the caller reports that case in words.
func (s *Scatter) Render(_ context.Context, m *domain.StateMap) error {
	if len(m.Points) == 0 || !m.HasBounds {
		return nil
	}
	width, height := s.size()

	grid := newBrailleGrid(width, height)
	b := m.Bounds
	for _, pt := range m.Points {
		x := scaleToAxis(pt.Lon, b.MinLon, b.MaxLon, width*2)
		y := scaleToAxis(pt.Lat, b.MinLat, b.MaxLat, height*4)
		// Latitude grows northward, rows grow downward.
		grid.set(x, height*4-1-y)
	}

	title := m.StateName
	if title == "" {
		title = fmt.Sprintf("state %d", m.State)
	}
	if _, err := fmt.Fprintf(s.w, "%s, %s: %d accident locations", title, m.Year, len(m.Points)); err != nil {
		return err
	}
	if m.Excluded > 0 {
		if _, err := fmt.Fprintf(s.w, " (%d without usable coordinates)", m.Excluded); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(s.w); err != nil {
		return err
	}

	for y := 0; y < height; y++ {
		if _, err := fmt.Fprintln(s.w, grid.row(y)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(s.w, "lon [%.4f, %.4f]  lat [%.4f, %.4f]\n",
		b.MinLon, b.MaxLon, b.MinLat, b.MaxLat)
	return err
}

// size returns the plot dimensions, following the terminal width when no
// explicit size was set.
func (s *Scatter) size() (int, int) {
	if s.width > 0 && s.height > 0 {
		return s.width, s.height
	}
	width := widthBackup
	if f, ok := s.w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}
	if width > maxWidth {
		width = maxWidth
	}
	if width < minWidth {
		width = minWidth
	}
	return width, defaultHeight
}

// scaleToAxis maps v from [min, max] onto [0, n). A degenerate range puts
// every value in the middle.
func scaleToAxis(v, min, max float64, n int) int {
	if max <= min {
		return n / 2
	}
	pos := (v - min) / (max - min)
	x := int(math.Round(pos * float64(n-1)))
	if x < 0 {
		x = 0
	}
	if x >= n {
		x = n - 1
	}
	return x
}

// brailleGrid is a width x height field of braille cells addressed by
// sub-character dot coordinates: x in [0, 2*width), y in [0, 4*height).
type brailleGrid struct {
	width  int
	height int
	cells  []uint8
}

func newBrailleGrid(width, height int) *brailleGrid {
	return &brailleGrid{width: width, height: height, cells: make([]uint8, width*height)}
}

// dotMasks maps (dot row, dot column) to the braille bit for that position.
// The bottom row lives in the high bits per the Unicode braille block.
var dotMasks = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func (g *brailleGrid) set(x, y int) {
	if x < 0 || y < 0 || x >= g.width*2 || y >= g.height*4 {
		return
	}
	g.cells[(y/4)*g.width+x/2] |= dotMasks[y%4][x%2]
}

// row renders one line of braille runes. Empty cells become the blank
// braille pattern U+2800, which keeps column alignment in any font.
func (g *brailleGrid) row(y int) string {
	var b strings.Builder
	b.Grow(g.width * 3)
	for x := 0; x < g.width; x++ {
		b.WriteRune(rune(0x2800 + int(g.cells[y*g.width+x])))
	}
	return b.String()
}
