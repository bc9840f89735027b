// Package scene holds the render-side view of the sandbox: one mesh per physical object
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// MeshKind selects how a mesh is drawn
type MeshKind int

const (
	MeshSphere MeshKind = iota
	MeshBox
)

// Mesh is a drawable copy of a body transform
// Scale is the sphere radius on every axis, or box half extents
type Mesh struct {
	ID          uint64
	Kind        MeshKind
	Scale       mgl64.Vec3
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Hue         int     // Palette index
	Flash       float64 // Remaining flash seconds
}

// NewMesh creates a mesh with identity orientation
func NewMesh(kind MeshKind, scale mgl64.Vec3) *Mesh {
	return &Mesh{
		Kind:        kind,
		Scale:       scale,
		Orientation: mgl64.QuatIdent(),
	}
}

// SetTransform copies a body transform into the mesh
func (m *Mesh) SetTransform(pos mgl64.Vec3, rot mgl64.Quat) {
	m.Position = pos
	m.Orientation = rot
}

// Scene is the ordered collection of meshes
// Not safe for concurrent use
type Scene struct {
	meshes []*Mesh
	nextID uint64
}

// New creates an empty scene
func New() *Scene {
	return &Scene{}
}

// Add inserts m and assigns its id
func (s *Scene) Add(m *Mesh) {
	s.nextID++
	m.ID = s.nextID
	s.meshes = append(s.meshes, m)
}

// Remove deletes m, returns false if it was not in the scene
func (s *Scene) Remove(m *Mesh) bool {
	for i, cur := range s.meshes {
		if cur == m {
			copy(s.meshes[i:], s.meshes[i+1:])
			s.meshes[len(s.meshes)-1] = nil
			s.meshes = s.meshes[:len(s.meshes)-1]
			return true
		}
	}
	return false
}

// Meshes returns the meshes in insertion order
func (s *Scene) Meshes() []*Mesh {
	out := make([]*Mesh, len(s.meshes))
	copy(out, s.meshes)
	return out
}

// Len returns the mesh count
func (s *Scene) Len() int {
	return len(s.meshes)
}

// DecayFlash counts flash timers down by dt seconds
func (s *Scene) DecayFlash(dt float64) {
	for _, m := range s.meshes {
		if m.Flash > 0 {
			m.Flash -= dt
			if m.Flash < 0 {
				m.Flash = 0
			}
		}
	}
}
