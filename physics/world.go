package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/clatter/parameter"
)

type pairKey struct{ lo, hi uint64 }

func keyOf(a, b *Body) pairKey {
	if a.ID < b.ID {
		return pairKey{a.ID, b.ID}
	}
	return pairKey{b.ID, a.ID}
}

// World owns bodies and advances them in fixed steps
// Not safe for concurrent use
type World struct {
	Gravity                mgl64.Vec3
	DefaultContactMaterial *ContactMaterial
	AllowSleep             bool
	SolverIterations       int

	bodies           []*Body
	contactMaterials []*ContactMaterial
	nextID           uint64

	accumulator float64
	time        float64
	stepping    bool
	removed     bool // A body was removed during the current step

	touching     map[pairKey]bool // Pairs in contact during the last step
	lastContacts int
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		DefaultContactMaterial: &ContactMaterial{},
		SolverIterations:       parameter.SolverIterations,
		touching:               make(map[pairKey]bool),
	}
}

// SetGravity updates gravity, waking sleeping bodies when it changes
func (w *World) SetGravity(g mgl64.Vec3) {
	if g == w.Gravity {
		return
	}
	w.Gravity = g
	for _, b := range w.bodies {
		b.WakeUp()
	}
}

// AddBody inserts b and assigns its id
func (w *World) AddBody(b *Body) {
	if b.world == w {
		return
	}
	w.nextID++
	b.ID = w.nextID
	b.world = w
	w.bodies = append(w.bodies, b)
}

// RemoveBody detaches b; safe to call from a collision listener
func (w *World) RemoveBody(b *Body) {
	if b.world != w {
		return
	}
	b.world = nil
	if w.stepping {
		w.removed = true
		return
	}
	w.compact()
}

// compact drops detached bodies from the body list and pair cache
func (w *World) compact() {
	kept := w.bodies[:0]
	for _, b := range w.bodies {
		if b.world == w {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(w.bodies); i++ {
		w.bodies[i] = nil
	}
	w.bodies = kept
	w.removed = false

	live := make(map[uint64]bool, len(w.bodies))
	for _, b := range w.bodies {
		live[b.ID] = true
	}
	for k := range w.touching {
		if !live[k.lo] || !live[k.hi] {
			delete(w.touching, k)
		}
	}
}

// Bodies returns the live bodies
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		if b.world == w {
			out = append(out, b)
		}
	}
	return out
}

// Time returns simulated seconds
func (w *World) Time() float64 {
	return w.time
}

// ContactCount returns contacts found in the last step
func (w *World) ContactCount() int {
	return w.lastContacts
}

// AddContactMaterial installs a pair-specific contact material
func (w *World) AddContactMaterial(cm *ContactMaterial) {
	w.contactMaterials = append(w.contactMaterials, cm)
}

// RemoveContactMaterial uninstalls cm
func (w *World) RemoveContactMaterial(cm *ContactMaterial) {
	for i, c := range w.contactMaterials {
		if c == cm {
			w.contactMaterials = append(w.contactMaterials[:i], w.contactMaterials[i+1:]...)
			return
		}
	}
}

// ContactMaterialFor resolves the contact material between two materials
func (w *World) ContactMaterialFor(a, b *Material) *ContactMaterial {
	if a != nil && b != nil {
		for _, cm := range w.contactMaterials {
			if cm.matches(a, b) {
				return cm
			}
		}
	}
	return w.DefaultContactMaterial
}

// Step advances the world using a fixed-step accumulator
// realDt < 0 performs exactly one fixed step. Otherwise realDt is accumulated and at most
// maxSubSteps fixed steps run; time beyond that is dropped. Returns steps taken.
func (w *World) Step(fixedDt, realDt float64, maxSubSteps int) int {
	if fixedDt <= 0 {
		return 0
	}
	if realDt < 0 {
		w.internalStep(fixedDt)
		return 1
	}

	w.accumulator += realDt
	steps := 0
	for w.accumulator >= fixedDt && steps < maxSubSteps {
		w.internalStep(fixedDt)
		w.accumulator -= fixedDt
		steps++
	}
	w.accumulator = math.Mod(w.accumulator, fixedDt)
	return steps
}

func (w *World) internalStep(dt float64) {
	w.stepping = true
	defer func() {
		w.stepping = false
		if w.removed {
			w.compact()
		}
	}()

	// Forces
	for _, b := range w.bodies {
		if !b.active() {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		b.Velocity = b.Velocity.Mul(math.Pow(1-b.LinearDamping, dt))
		b.AngularVelocity = b.AngularVelocity.Mul(math.Pow(1-b.AngularDamping, dt))
	}

	// Narrow phase
	contacts := w.findContacts()
	w.lastContacts = len(contacts)

	// Collision events fire when a pair starts touching, before the solver
	current := make(map[pairKey]bool, len(contacts))
	for _, c := range contacts {
		current[keyOf(c.BodyA, c.BodyB)] = true
	}
	for _, c := range contacts {
		if w.touching[keyOf(c.BodyA, c.BodyB)] {
			continue
		}
		// A listener on A may remove either body
		if w.live(c) {
			c.BodyA.dispatch(c)
		}
		if w.live(c) {
			c.BodyB.dispatch(c)
		}
	}
	w.touching = current

	if w.removed {
		kept := contacts[:0]
		for _, c := range contacts {
			if w.live(c) {
				kept = append(kept, c)
			}
		}
		contacts = kept
	}

	// Solve
	for _, c := range contacts {
		c.prepare()
	}
	for i := 0; i < w.SolverIterations; i++ {
		for _, c := range contacts {
			c.solveVelocity()
		}
	}
	for _, c := range contacts {
		c.correctPosition()
	}

	// Integrate
	for _, b := range w.bodies {
		if b.world == w && b.active() {
			b.integrate(dt)
		}
	}

	if w.AllowSleep {
		w.updateSleep(dt)
	}
	w.time += dt
}

// findContacts runs the broad and narrow phase over every live pair
func (w *World) findContacts() []*Contact {
	var out []*Contact
	n := len(w.bodies)
	for i := 0; i < n; i++ {
		a := w.bodies[i]
		for j := i + 1; j < n; j++ {
			b := w.bodies[j]
			if a.Type == BodyStatic && b.Type == BodyStatic {
				continue
			}
			if !a.active() && !b.active() {
				continue
			}
			if !boundsOverlap(a, b) {
				continue
			}
			cs := collide(a, b)
			if len(cs) == 0 {
				continue
			}

			// A moving body wakes a sleeping one
			if a.sleeping && b.active() {
				a.WakeUp()
			}
			if b.sleeping && a.active() {
				b.WakeUp()
			}

			cm := w.ContactMaterialFor(a.Material, b.Material)
			share := 1 / float64(len(cs))
			for _, c := range cs {
				c.Friction = cm.Friction
				c.Restitution = cm.Restitution
				c.share = share
			}
			out = append(out, cs...)
		}
	}
	return out
}

// live reports whether both bodies of c are still in the world
func (w *World) live(c *Contact) bool {
	return c.BodyA.world == w && c.BodyB.world == w
}

func boundsOverlap(a, b *Body) bool {
	ra, rb := a.Shape.BoundingRadius(), b.Shape.BoundingRadius()
	if math.IsInf(ra, 1) || math.IsInf(rb, 1) {
		return true
	}
	r := ra + rb
	return a.Position.Sub(b.Position).LenSqr() <= r*r
}

// updateSleep puts bodies to sleep after staying slow for SleepTimeLimit
func (w *World) updateSleep(dt float64) {
	limit := parameter.SleepSpeedLimit * parameter.SleepSpeedLimit
	for _, b := range w.bodies {
		if b.world != w || !b.active() {
			continue
		}
		if b.Velocity.LenSqr() < limit && b.AngularVelocity.LenSqr() < limit {
			b.sleepTime += dt
			if b.sleepTime >= parameter.SleepTimeLimit.Seconds() {
				b.Sleep()
			}
		} else {
			b.sleepTime = 0
		}
	}
}
