package render

// BlendMode selects how Set composites a color onto a cell
type BlendMode uint8

const (
	BlendReplace BlendMode = iota
	BlendAlpha
	BlendScreen
)

func (m BlendMode) apply(dst, src RGB, alpha float64) RGB {
	switch m {
	case BlendAlpha:
		return Blend(dst, src, alpha)
	case BlendScreen:
		return Screen(dst, src, alpha)
	default:
		return src
	}
}
