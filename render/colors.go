package render

// Tokyo Night base
var (
	RgbBackground = RGB{26, 27, 38}
	RgbFloor      = RGB{119, 119, 119}
	RgbFloorEdge  = RGB{160, 160, 170}
	RgbFlash      = RGB{255, 255, 255}

	RgbHUDText     = RGB{192, 202, 245}
	RgbHUDDim      = RGB{100, 100, 110}
	RgbHUDSelected = RGB{255, 165, 0}
	RgbHUDAudible  = RGB{90, 255, 120}
	RgbHUDMuted    = RGB{255, 80, 80}
)

// meshPalette cycles by mesh hue
var meshPalette = []RGB{
	{40, 180, 255},  // Cyan
	{255, 60, 120},  // Magenta
	{120, 255, 80},  // Lime
	{255, 200, 50},  // Amber
	{170, 120, 255}, // Violet
	{255, 120, 60},  // Orange
}

// MeshColor returns the base color for a hue index
func MeshColor(hue int) RGB {
	if hue < 0 {
		hue = -hue
	}
	return meshPalette[hue%len(meshPalette)]
}
