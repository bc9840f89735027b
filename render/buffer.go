package render

import (
	"github.com/gdamore/tcell/v2"
)

// RenderBuffer is a cell compositor flushed to a tcell screen
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns the buffer dimensions
func (b *RenderBuffer) Size() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to blank background using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: RgbHUDText, Bg: RgbBackground}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns the cell at x, y; zero Cell when out of bounds
func (b *RenderBuffer) Cell(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// SetBg composites a background color
func (b *RenderBuffer) SetBg(x, y int, bg RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Bg = mode.apply(dst.Bg, bg, alpha)
}

// SetFgOnly writes rune and foreground while preserving background
func (b *RenderBuffer) SetFgOnly(x, y int, r rune, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
}

// WriteString writes s left to right from x, clipped at the buffer edge
// Returns the column after the last rune
func (b *RenderBuffer) WriteString(x, y int, s string, fg RGB) int {
	for _, r := range s {
		b.SetFgOnly(x, y, r, fg)
		x++
	}
	return x
}

// FlushToScreen copies the buffer to screen and shows it
func (b *RenderBuffer) FlushToScreen(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x, c := range row {
			style := tcell.StyleDefault.Foreground(c.Fg.Color()).Background(c.Bg.Color())
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			screen.SetContent(x, y, r, nil, style)
		}
	}
	screen.Show()
}
