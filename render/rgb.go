package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Color converts to a tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// clamp converts float to uint8
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend is linear alpha blending
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// fastDiv255 approximates x / 255: (x + (x >> 8) + 1) >> 8
func fastDiv255(x int) int {
	return (x + (x >> 8) + 1) >> 8
}

// Screen blend: 1 - (1-Dst)*(1-Src) with alpha blending
func Screen(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}
	screened := RGB{
		R: uint8(255 - fastDiv255((255-int(c.R))*(255-int(src.R)))),
		G: uint8(255 - fastDiv255((255-int(c.G))*(255-int(src.G)))),
		B: uint8(255 - fastDiv255((255-int(c.B))*(255-int(src.B)))),
	}
	if alpha >= 1.0 {
		return screened
	}
	return Blend(c, screened, alpha)
}

// Scale multiplies all channels by factor
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Grayscale converts with Rec. 601 luma: (R*299 + G*587 + B*114) / 1000
func Grayscale(c RGB) RGB {
	gray := uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
	return RGB{R: gray, G: gray, B: gray}
}
