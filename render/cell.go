package render

// Cell is one terminal character with colors
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}
