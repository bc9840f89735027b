// Package physics is a small 3D rigid-body world: spheres, boxes and static planes,
// fixed-step integration, sequential-impulse contacts and collision listeners
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind identifies the collision geometry
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
	ShapePlane
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapePlane:
		return "plane"
	default:
		return "unknown"
	}
}

// Shape is body collision geometry in body-local space
type Shape interface {
	Kind() ShapeKind
	// Inertia returns the principal moments for mass
	Inertia(mass float64) mgl64.Vec3
	// BoundingRadius is used for the broad phase; +Inf for unbounded shapes
	BoundingRadius() float64
}

// Sphere centred on the body origin
type Sphere struct {
	Radius float64
}

func (s *Sphere) Kind() ShapeKind { return ShapeSphere }

func (s *Sphere) Inertia(mass float64) mgl64.Vec3 {
	i := 2.0 / 5.0 * mass * s.Radius * s.Radius
	return mgl64.Vec3{i, i, i}
}

func (s *Sphere) BoundingRadius() float64 { return s.Radius }

// Box with half extents along local axes
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b *Box) Kind() ShapeKind { return ShapeBox }

// Inertia uses half extents: I = m/3 * (b^2 + c^2)
func (b *Box) Inertia(mass float64) mgl64.Vec3 {
	h := b.HalfExtents
	return mgl64.Vec3{
		mass / 3 * (h[1]*h[1] + h[2]*h[2]),
		mass / 3 * (h[0]*h[0] + h[2]*h[2]),
		mass / 3 * (h[0]*h[0] + h[1]*h[1]),
	}
}

func (b *Box) BoundingRadius() float64 { return b.HalfExtents.Len() }

// corners returns the eight box vertices in world space
func (b *Box) corners(pos mgl64.Vec3, rot mgl64.Quat) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	h := b.HalfExtents
	i := 0
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			for _, sz := range [2]float64{-1, 1} {
				out[i] = pos.Add(rot.Rotate(mgl64.Vec3{sx * h[0], sy * h[1], sz * h[2]}))
				i++
			}
		}
	}
	return out
}

// Plane is an infinite static half-space; the surface normal is local +Y
type Plane struct{}

func (p *Plane) Kind() ShapeKind { return ShapePlane }

func (p *Plane) Inertia(mass float64) mgl64.Vec3 { return mgl64.Vec3{} }

func (p *Plane) BoundingRadius() float64 { return math.Inf(1) }
