package render

import (
	"math"

	"github.com/lixenwraith/clatter/parameter"
)

// Camera is an orthographic side view looking along -Z
// Terminal cells are twice as tall as wide, so one meter spans twice as many columns as rows
type Camera struct {
	Width, Height  int // View area in cells
	BlockW, BlockH int // Pixel block in cells

	unit    float64 // Rows per meter
	originX float64 // Column of world x = 0
	floorY  float64 // Row boundary of world y = 0
}

// NewCamera fits the view area into width x height cells
// pixelSize quantises output into blocks of pixelSize/2 rows by pixelSize columns
func NewCamera(width, height, pixelSize int) Camera {
	width, height = max(width, 1), max(height, 1)
	blockH := max(pixelSize/2, 1)

	unitX := float64(width) / (2 * parameter.ViewHalfWidth) / 2
	unitY := float64(height-1) / parameter.ViewHeight
	unit := math.Max(math.Min(unitX, unitY), 0.1)

	return Camera{
		Width:   width,
		Height:  height,
		BlockW:  blockH * 2,
		BlockH:  blockH,
		unit:    unit,
		originX: float64(width) / 2,
		floorY:  float64(height - 1),
	}
}

// ToWorld returns world x, y at fractional cell coordinates
func (c Camera) ToWorld(col, row float64) (x, y float64) {
	x = (col - c.originX) / (2 * c.unit)
	y = (c.floorY - row) / c.unit
	return x, y
}

// ToCell returns the cell containing world x, y
func (c Camera) ToCell(x, y float64) (col, row int) {
	col = int(math.Floor(c.originX + x*2*c.unit))
	row = int(math.Floor(c.floorY - y*c.unit))
	return col, row
}
