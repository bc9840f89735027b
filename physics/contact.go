package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Contact is one contact point between two bodies
// Normal points from BodyA towards BodyB
type Contact struct {
	BodyA, BodyB *Body
	Point        mgl64.Vec3 // World space
	Normal       mgl64.Vec3
	Depth        float64 // Penetration, > 0

	Friction    float64
	Restitution float64

	// Solver state
	rA, rB       mgl64.Vec3
	invIA, invIB mgl64.Mat3
	normalMass   float64
	tangents     [2]mgl64.Vec3
	tangentMass  [2]float64
	bounce       float64
	jn           float64
	jt           [2]float64
	share        float64 // 1 / contacts in this pair
}

// Other returns the body opposite b
func (c *Contact) Other(b *Body) *Body {
	if c.BodyA == b {
		return c.BodyB
	}
	return c.BodyA
}

// relativeVelocity returns velocity of B relative to A at the contact point
func (c *Contact) relativeVelocity() mgl64.Vec3 {
	rA := c.Point.Sub(c.BodyA.Position)
	rB := c.Point.Sub(c.BodyB.Position)
	return c.BodyB.velocityAt(rB).Sub(c.BodyA.velocityAt(rA))
}

// ImpactVelocityAlongNormal returns the closing speed along the normal
// Positive when the bodies approach; valid before the solver runs
func (c *Contact) ImpactVelocityAlongNormal() float64 {
	return -c.Normal.Dot(c.relativeVelocity())
}

// --- Narrow phase ---

// collide generates contacts for a pair; nil if separated
func collide(a, b *Body) []*Contact {
	ka, kb := a.Shape.Kind(), b.Shape.Kind()

	// Order pairs so each case is written once; flip the result back
	if ka > kb {
		cs := collide(b, a)
		for _, c := range cs {
			c.BodyA, c.BodyB = c.BodyB, c.BodyA
			c.Normal = c.Normal.Mul(-1)
		}
		return cs
	}

	switch {
	case ka == ShapeSphere && kb == ShapeSphere:
		return sphereSphere(a, b)
	case ka == ShapeSphere && kb == ShapeBox:
		return sphereBox(a, b)
	case ka == ShapeSphere && kb == ShapePlane:
		return spherePlane(a, b)
	case ka == ShapeBox && kb == ShapeBox:
		return boxBox(a, b)
	case ka == ShapeBox && kb == ShapePlane:
		return boxPlane(a, b)
	}
	return nil
}

func planeNormal(p *Body) mgl64.Vec3 {
	return p.Orientation.Rotate(mgl64.Vec3{0, 1, 0})
}

func sphereSphere(a, b *Body) []*Contact {
	ra := a.Shape.(*Sphere).Radius
	rb := b.Shape.(*Sphere).Radius
	d := b.Position.Sub(a.Position)
	dist := d.Len()
	if dist >= ra+rb {
		return nil
	}
	n := mgl64.Vec3{0, 1, 0}
	if dist > 1e-12 {
		n = d.Mul(1 / dist)
	}
	return []*Contact{{
		BodyA:  a,
		BodyB:  b,
		Point:  a.Position.Add(n.Mul(ra)),
		Normal: n,
		Depth:  ra + rb - dist,
	}}
}

func spherePlane(s, p *Body) []*Contact {
	r := s.Shape.(*Sphere).Radius
	n := planeNormal(p)
	dist := s.Position.Sub(p.Position).Dot(n) - r
	if dist >= 0 {
		return nil
	}
	return []*Contact{{
		BodyA:  s,
		BodyB:  p,
		Point:  s.Position.Sub(n.Mul(r)),
		Normal: n.Mul(-1),
		Depth:  -dist,
	}}
}

func boxPlane(bx, p *Body) []*Contact {
	box := bx.Shape.(*Box)
	n := planeNormal(p)
	var out []*Contact
	for _, c := range box.corners(bx.Position, bx.Orientation) {
		d := c.Sub(p.Position).Dot(n)
		if d < 0 {
			out = append(out, &Contact{
				BodyA:  bx,
				BodyB:  p,
				Point:  c,
				Normal: n.Mul(-1),
				Depth:  -d,
			})
		}
	}
	return out
}

func sphereBox(s, bx *Body) []*Contact {
	r := s.Shape.(*Sphere).Radius
	h := bx.Shape.(*Box).HalfExtents
	inv := bx.Orientation.Conjugate()
	local := inv.Rotate(s.Position.Sub(bx.Position))

	closest := mgl64.Vec3{
		math.Max(-h[0], math.Min(h[0], local[0])),
		math.Max(-h[1], math.Min(h[1], local[1])),
		math.Max(-h[2], math.Min(h[2], local[2])),
	}

	var nLocal mgl64.Vec3 // From box towards sphere
	var depth float64
	if closest == local {
		// Centre inside the box: push out through the nearest face
		axis, best := 0, math.Inf(1)
		for i := 0; i < 3; i++ {
			if gap := h[i] - math.Abs(local[i]); gap < best {
				axis, best = i, gap
			}
		}
		sign := 1.0
		if local[axis] < 0 {
			sign = -1
		}
		nLocal[axis] = sign
		closest[axis] = sign * h[axis]
		depth = r + best
	} else {
		diff := local.Sub(closest)
		dist := diff.Len()
		if dist >= r {
			return nil
		}
		nLocal = diff.Mul(1 / dist)
		depth = r - dist
	}

	n := bx.Orientation.Rotate(nLocal)
	return []*Contact{{
		BodyA:  s,
		BodyB:  bx,
		Point:  bx.Position.Add(bx.Orientation.Rotate(closest)),
		Normal: n.Mul(-1),
		Depth:  depth,
	}}
}

// boxBox tests each box's vertices against the other box
// Edge-edge contacts are not generated
func boxBox(a, b *Body) []*Contact {
	var out []*Contact
	// Vertices of a inside b: b's outward face normal points towards a
	for _, c := range vertexInBox(a, b) {
		c.BodyA, c.BodyB = a, b
		c.Normal = c.Normal.Mul(-1)
		out = append(out, c)
	}
	// Vertices of b inside a: a's outward face normal points towards b
	for _, c := range vertexInBox(b, a) {
		c.BodyA, c.BodyB = a, b
		out = append(out, c)
	}
	return out
}

// vertexInBox returns contacts for vertices of v inside box; Normal is box's outward face normal
func vertexInBox(v, box *Body) []*Contact {
	h := box.Shape.(*Box).HalfExtents
	inv := box.Orientation.Conjugate()
	var out []*Contact
	for _, p := range v.Shape.(*Box).corners(v.Position, v.Orientation) {
		local := inv.Rotate(p.Sub(box.Position))
		if math.Abs(local[0]) >= h[0] || math.Abs(local[1]) >= h[1] || math.Abs(local[2]) >= h[2] {
			continue
		}
		axis, best := 0, math.Inf(1)
		for i := 0; i < 3; i++ {
			if gap := h[i] - math.Abs(local[i]); gap < best {
				axis, best = i, gap
			}
		}
		var nLocal mgl64.Vec3
		nLocal[axis] = 1
		if local[axis] < 0 {
			nLocal[axis] = -1
		}
		out = append(out, &Contact{
			Point:  p,
			Normal: box.Orientation.Rotate(nLocal),
			Depth:  best,
		})
	}
	return out
}
