package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/clatter/parameter"
)

// BodyType distinguishes simulated bodies from fixed ones
type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyStatic
)

// ListenerID identifies a registered collision listener
type ListenerID uint64

// CollisionListener is called synchronously inside World.Step
// self is the body the listener is registered on
type CollisionListener func(self *Body, c *Contact)

type listenerEntry struct {
	id ListenerID
	fn CollisionListener
}

// Body is a rigid body
type Body struct {
	ID       uint64 // Assigned by World.AddBody
	Type     BodyType
	Shape    Shape
	Material *Material

	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	LinearDamping  float64
	AngularDamping float64

	mass       float64
	invMass    float64
	invInertia mgl64.Vec3 // Local principal axes

	sleeping  bool
	sleepTime float64

	world        *World
	listeners    []listenerEntry
	nextListener ListenerID
}

// NewBody creates a body; mass <= 0 creates a static body
func NewBody(shape Shape, mass float64, position mgl64.Vec3) *Body {
	b := &Body{
		Shape:          shape,
		Position:       position,
		Orientation:    mgl64.QuatIdent(),
		LinearDamping:  parameter.LinearDamping,
		AngularDamping: parameter.AngularDamping,
	}
	if mass <= 0 || shape.Kind() == ShapePlane {
		b.Type = BodyStatic
		return b
	}
	b.Type = BodyDynamic
	b.mass = mass
	b.invMass = 1 / mass
	inertia := shape.Inertia(mass)
	for i := 0; i < 3; i++ {
		if inertia[i] > 0 {
			b.invInertia[i] = 1 / inertia[i]
		}
	}
	return b
}

// Mass returns the body mass; 0 for static bodies
func (b *Body) Mass() float64 {
	return b.mass
}

// InvMass returns the inverse mass; 0 for static bodies
func (b *Body) InvMass() float64 {
	return b.invMass
}

// World returns the world the body belongs to, nil once removed
func (b *Body) World() *World {
	return b.world
}

// AddCollisionListener registers fn and returns its id
func (b *Body) AddCollisionListener(fn CollisionListener) ListenerID {
	b.nextListener++
	b.listeners = append(b.listeners, listenerEntry{id: b.nextListener, fn: fn})
	return b.nextListener
}

// RemoveCollisionListener unregisters id, returns false if it was not registered
func (b *Body) RemoveCollisionListener(id ListenerID) bool {
	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// ListenerCount returns the number of registered listeners
func (b *Body) ListenerCount() int {
	return len(b.listeners)
}

// dispatch calls every listener registered at the time of the call
func (b *Body) dispatch(c *Contact) {
	if len(b.listeners) == 0 {
		return
	}
	snapshot := make([]listenerEntry, len(b.listeners))
	copy(snapshot, b.listeners)
	for _, l := range snapshot {
		if !b.hasListener(l.id) {
			continue
		}
		l.fn(b, c)
	}
}

func (b *Body) hasListener(id ListenerID) bool {
	for _, l := range b.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// IsSleeping reports whether the body is asleep
func (b *Body) IsSleeping() bool {
	return b.sleeping
}

// WakeUp resumes simulation of a sleeping body
func (b *Body) WakeUp() {
	b.sleeping = false
	b.sleepTime = 0
}

// Sleep stops simulating the body until woken
func (b *Body) Sleep() {
	b.sleeping = true
	b.Velocity = mgl64.Vec3{}
	b.AngularVelocity = mgl64.Vec3{}
}

// active reports whether the integrator should move the body
func (b *Body) active() bool {
	return b.Type == BodyDynamic && !b.sleeping
}

// invInertiaWorld returns R * diag(invInertia) * R^T
func (b *Body) invInertiaWorld() mgl64.Mat3 {
	if b.invMass == 0 {
		return mgl64.Mat3{}
	}
	r := b.Orientation.Mat4().Mat3()
	d := mgl64.Diag3(b.invInertia)
	return r.Mul3(d).Mul3(r.Transpose())
}

// velocityAt returns the world velocity of the point at offset r from the centre
func (b *Body) velocityAt(r mgl64.Vec3) mgl64.Vec3 {
	return b.Velocity.Add(b.AngularVelocity.Cross(r))
}

// applyImpulse applies impulse p at offset r from the centre
func (b *Body) applyImpulse(p, r mgl64.Vec3, invI mgl64.Mat3) {
	if b.invMass == 0 {
		return
	}
	b.Velocity = b.Velocity.Add(p.Mul(b.invMass))
	b.AngularVelocity = b.AngularVelocity.Add(invI.Mul3x1(r.Cross(p)))
}

// ApplyImpulse applies an impulse at a world point and wakes the body
func (b *Body) ApplyImpulse(impulse, worldPoint mgl64.Vec3) {
	if b.Type != BodyDynamic {
		return
	}
	b.WakeUp()
	b.applyImpulse(impulse, worldPoint.Sub(b.Position), b.invInertiaWorld())
}

// integrate advances position and orientation by dt
func (b *Body) integrate(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	w := b.AngularVelocity
	if w.LenSqr() == 0 {
		return
	}
	spin := mgl64.Quat{W: 0, V: w}.Mul(b.Orientation)
	q := b.Orientation
	q.W += 0.5 * dt * spin.W
	q.V = q.V.Add(spin.V.Mul(0.5 * dt))
	b.Orientation = q.Normalize()
}
