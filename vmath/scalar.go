package vmath

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v to [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MapLinear maps x from [a1, a2] onto [b1, b2]
// Degenerate source range returns b1
func MapLinear(x, a1, a2, b1, b2 float64) float64 {
	if a2 == a1 {
		return b1
	}
	return b1 + (x-a1)*(b2-b1)/(a2-a1)
}

// MaxF returns the larger of a and b
func MaxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Snap floors v to a multiple of step; step <= 1 returns v
func Snap(v, step int) int {
	if step <= 1 {
		return v
	}
	if v < 0 {
		return -((-v + step - 1) / step * step)
	}
	return v / step * step
}
