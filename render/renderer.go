// Package render draws the sandbox scene and HUD into a cell buffer for tcell
package render

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/clatter/parameter"
	"github.com/lixenwraith/clatter/scene"
	"github.com/lixenwraith/clatter/vmath"
)

// Key light, y up, towards the viewer
var lightDir = mgl64.Vec3{-0.35, 0.55, 0.75}.Normalize()

const (
	ambient     = 0.35
	floorExtent = 5.0 // Floor half width (m)
	rayStart    = 100.0
	flashPeak   = 0.8
	pausedGray  = 0.6 // Desaturation while paused
)

// Renderer composes the scene view and HUD
type Renderer struct {
	buf *RenderBuffer
}

// NewRenderer creates a renderer for a width x height screen
func NewRenderer(width, height int) *Renderer {
	return &Renderer{buf: NewRenderBuffer(width, height)}
}

// Resize adapts to a new screen size
func (r *Renderer) Resize(width, height int) {
	r.buf.Resize(width, height)
}

// Buffer exposes the composed frame
func (r *Renderer) Buffer() *RenderBuffer {
	return r.buf
}

// Draw composes one frame; the bottom HUDRows rows hold the HUD
func (r *Renderer) Draw(meshes []*scene.Mesh, hud HUD) {
	r.buf.Clear()
	w, h := r.buf.Size()
	viewH := h - parameter.HUDRows
	if viewH > 0 {
		r.drawScene(meshes, NewCamera(w, viewH, hud.Snapshot.Visual.PixelSize), hud.Paused)
	}
	r.drawHUD(hud, max(viewH, 0))
}

// Flush shows the composed frame on screen
func (r *Renderer) Flush(screen tcell.Screen) {
	r.buf.FlushToScreen(screen)
}

// drawScene samples one point per pixel block and fills the block
func (r *Renderer) drawScene(meshes []*scene.Mesh, cam Camera, paused bool) {
	// Nearest first so the first hit wins
	ordered := make([]*scene.Mesh, len(meshes))
	copy(ordered, meshes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position.Z() > ordered[j].Position.Z()
	})

	for row := 0; row < cam.Height; row++ {
		for col := 0; col < cam.Width; col++ {
			ox, oy := vmath.Snap(col, cam.BlockW), vmath.Snap(row, cam.BlockH)
			if ox != col || oy != row {
				r.buf.SetBg(col, row, r.buf.Cell(ox, oy).Bg, BlendReplace, 1)
				continue
			}
			cx := math.Min(float64(col)+float64(cam.BlockW)/2, float64(cam.Width))
			cy := math.Min(float64(row)+float64(cam.BlockH)/2, float64(cam.Height))
			x, y := cam.ToWorld(cx, cy)
			c := shade(ordered, x, y)
			r.buf.SetBg(col, row, c, BlendReplace, 1)
			if paused {
				r.buf.SetBg(col, row, Grayscale(c), BlendAlpha, pausedGray)
			}
		}
	}
}

// shade returns the color seen at world x, y
func shade(meshes []*scene.Mesh, x, y float64) RGB {
	for _, m := range meshes {
		n, ok := hit(m, x, y)
		if !ok {
			continue
		}
		light := ambient + (1-ambient)*math.Max(n.Dot(lightDir), 0)
		c := Scale(MeshColor(m.Hue), light)
		if m.Flash > 0 {
			c = Screen(c, RgbFlash, m.Flash/parameter.FlashDuration*flashPeak)
		}
		return c
	}
	if y < 0 && math.Abs(x) <= floorExtent {
		if y > -0.15 {
			return RgbFloorEdge
		}
		return RgbFloor
	}
	return RgbBackground
}

// hit intersects the view ray through x, y with m and returns the surface normal
func hit(m *scene.Mesh, x, y float64) (mgl64.Vec3, bool) {
	switch m.Kind {
	case scene.MeshSphere:
		r := m.Scale.X()
		dx, dy := x-m.Position.X(), y-m.Position.Y()
		d2 := dx*dx + dy*dy
		if r <= 0 || d2 > r*r {
			return mgl64.Vec3{}, false
		}
		return mgl64.Vec3{dx / r, dy / r, math.Sqrt(1 - d2/(r*r))}, true
	case scene.MeshBox:
		return hitBox(m, x, y)
	}
	return mgl64.Vec3{}, false
}

// hitBox is a slab test in box-local space; the normal is the entry face
func hitBox(m *scene.Mesh, x, y float64) (mgl64.Vec3, bool) {
	inv := m.Orientation.Conjugate()
	o := inv.Rotate(mgl64.Vec3{x, y, m.Position.Z() + rayStart}.Sub(m.Position))
	d := inv.Rotate(mgl64.Vec3{0, 0, -1})
	h := m.Scale

	tmin, tmax := math.Inf(-1), math.Inf(1)
	axis, sign := -1, 0.0
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 {
			if math.Abs(o[i]) > h[i] {
				return mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (-h[i] - o[i]) / d[i]
		t2 := (h[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
			sign = -math.Copysign(1, d[i])
		}
		tmax = math.Min(tmax, t2)
	}
	if axis < 0 || tmin > tmax || tmax < 0 {
		return mgl64.Vec3{}, false
	}
	var n mgl64.Vec3
	n[axis] = sign
	return m.Orientation.Rotate(n), true
}
