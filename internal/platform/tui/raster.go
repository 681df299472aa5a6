package tui

import (
	"math"

	"github.com/vovakirdan/sinland/internal/core"
)

// Fade levels at which the terminal dims or blanks the frame.
// Cells have no alpha, so the overlay is quantized.
const (
	dimFade   = 0.35
	blackFade = 0.95
)

// Raster maps world space onto a character grid.
type Raster struct {
	Cols, Rows int
}

// NewRaster creates a rasterizer for a terminal of cols x rows.
func NewRaster(cols, rows int) Raster {
	return Raster{Cols: max(cols, 1), Rows: max(rows, 1)}
}

// Cell converts a world position to a cell coordinate.
func (r Raster) Cell(x, y float64) (int, int) {
	return int(math.Floor(x * r.sx())), int(math.Floor(y * r.sy()))
}

// World converts a cell coordinate to the world position of its center.
func (r Raster) World(col, row int) (float64, float64) {
	return (float64(col) + 0.5) / r.sx(), (float64(row) + 0.5) / r.sy()
}

func (r Raster) sx() float64 { return float64(r.Cols) / core.WorldW }
func (r Raster) sy() float64 { return float64(r.Rows) / core.WorldH }

// span returns the cells covered by [a, a+n) on an axis with the given scale.
// Anything with a positive size covers at least one cell.
func span(a, n, scale float64) (int, int) {
	lo := int(math.Floor(a * scale))
	hi := int(math.Ceil((a + n) * scale))
	if n > 0 && hi <= lo {
		hi = lo + 1
	}
	return lo, hi - lo
}

// Draw rasterizes d into s. Shapes go first in order, then labels.
func (r Raster) Draw(d *core.DrawState, s *core.Screen) {
	s.Clear()

	sx, sy := r.sx(), r.sy()
	for _, sh := range d.Shapes {
		x, w := span(sh.Rect.X, sh.Rect.W, sx)
		y, h := span(sh.Rect.Y, sh.Rect.H, sy)
		if sh.Frame {
			s.DrawBox(x, y, w, h, sh.Color)
			continue
		}
		g := sh.Glyph
		if g == 0 {
			g = '█'
		}
		s.DrawRect(x, y, w, h, g, sh.Color)
	}

	for _, l := range d.Labels {
		col, row := r.Cell(l.Pos.X, l.Pos.Y)
		text := l.Text
		if l.Big {
			text = spaced(text)
		}
		if l.Centered {
			s.DrawTextCentered(col, row, text, l.Color)
		} else {
			s.DrawText(col, row, text, l.Color)
		}
	}

	switch {
	case d.Fade >= blackFade:
		s.Dim(true)
	case d.Fade >= dimFade:
		s.Dim(false)
	}
}

// spaced letterspaces headings so they stand out on a text grid.
func spaced(text string) string {
	rs := []rune(text)
	if len(rs) < 2 {
		return text
	}
	out := make([]rune, 0, len(rs)*2-1)
	for i, c := range rs {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	return string(out)
}
