// Package impact converts raw contact speeds into perceptual intensity
package impact

import "github.com/lixenwraith/clatter/vmath"

// Normalize maps impact speed v onto [0, 1] against ceiling
// Speeds at or above ceiling saturate at 1.0; the ceiling is read by the caller at event time
// A non-positive ceiling yields 0
func Normalize(v, ceiling float64) float64 {
	if ceiling <= 0 {
		return 0
	}
	return vmath.MapLinear(vmath.Clamp(v, 0, ceiling), 0, ceiling, 0, 1)
}

// Audible reports whether intensity clears the silence threshold
func Audible(intensity, threshold float64) bool {
	return intensity > threshold
}
