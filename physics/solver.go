package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/clatter/parameter"
)

// tangentBasis returns two unit vectors orthogonal to n
func tangentBasis(n mgl64.Vec3) [2]mgl64.Vec3 {
	ref := mgl64.Vec3{1, 0, 0}
	if math.Abs(n[0]) > 0.57 {
		ref = mgl64.Vec3{0, 1, 0}
	}
	t1 := n.Cross(ref).Normalize()
	t2 := n.Cross(t1)
	return [2]mgl64.Vec3{t1, t2}
}

// effectiveMass returns 1 / (J M^-1 J^T) along dir
func (c *Contact) effectiveMass(dir mgl64.Vec3) float64 {
	a, b := c.BodyA, c.BodyB
	k := a.invMass + b.invMass
	rnA := c.rA.Cross(dir)
	rnB := c.rB.Cross(dir)
	k += rnA.Dot(c.invIA.Mul3x1(rnA))
	k += rnB.Dot(c.invIB.Mul3x1(rnB))
	if k <= 0 {
		return 0
	}
	return 1 / k
}

// prepare caches lever arms, masses and the restitution target
func (c *Contact) prepare() {
	a, b := c.BodyA, c.BodyB
	c.rA = c.Point.Sub(a.Position)
	c.rB = c.Point.Sub(b.Position)
	c.invIA = a.invInertiaWorld()
	c.invIB = b.invInertiaWorld()

	c.normalMass = c.effectiveMass(c.Normal)
	c.tangents = tangentBasis(c.Normal)
	for i := range c.tangents {
		c.tangentMass[i] = c.effectiveMass(c.tangents[i])
	}

	vn := c.Normal.Dot(c.relativeVelocity())
	c.bounce = 0
	if vn < -parameter.RestitutionVelocityThreshold {
		c.bounce = -c.Restitution * vn
	}
	c.jn = 0
	c.jt = [2]float64{}
}

func (c *Contact) applyImpulse(p mgl64.Vec3) {
	c.BodyA.applyImpulse(p.Mul(-1), c.rA, c.invIA)
	c.BodyB.applyImpulse(p, c.rB, c.invIB)
}

// solveVelocity runs one sequential-impulse iteration with accumulated clamping
func (c *Contact) solveVelocity() {
	if c.normalMass == 0 {
		return
	}

	// Normal
	vrel := c.BodyB.velocityAt(c.rB).Sub(c.BodyA.velocityAt(c.rA))
	vn := c.Normal.Dot(vrel)
	lambda := (c.bounce - vn) * c.normalMass
	prev := c.jn
	c.jn = math.Max(prev+lambda, 0)
	c.applyImpulse(c.Normal.Mul(c.jn - prev))

	// Friction, bounded by the accumulated normal impulse
	maxF := c.Friction * c.jn
	for i, t := range c.tangents {
		if c.tangentMass[i] == 0 {
			continue
		}
		vrel = c.BodyB.velocityAt(c.rB).Sub(c.BodyA.velocityAt(c.rA))
		lambda = -t.Dot(vrel) * c.tangentMass[i]
		prev = c.jt[i]
		c.jt[i] = math.Max(-maxF, math.Min(maxF, prev+lambda))
		c.applyImpulse(t.Mul(c.jt[i] - prev))
	}
}

// correctPosition pushes overlapping bodies apart along the normal
func (c *Contact) correctPosition() {
	a, b := c.BodyA, c.BodyB
	total := a.invMass + b.invMass
	if total == 0 {
		return
	}
	excess := c.Depth - parameter.PenetrationSlop
	if excess <= 0 {
		return
	}
	shift := c.Normal.Mul(excess * parameter.PositionCorrection * c.share / total)
	if a.active() {
		a.Position = a.Position.Sub(shift.Mul(a.invMass))
	}
	if b.active() {
		b.Position = b.Position.Add(shift.Mul(b.invMass))
	}
}
