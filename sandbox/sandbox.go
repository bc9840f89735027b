// Package sandbox drives the simulation: it owns the world and the scene,
// keeps physics settings in sync with the tunables and routes collisions to sound
package sandbox

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/clatter/event"
	"github.com/lixenwraith/clatter/parameter"
	"github.com/lixenwraith/clatter/physics"
	"github.com/lixenwraith/clatter/scene"
	"github.com/lixenwraith/clatter/sonify"
)

// State is the driver lifecycle
type State int

const (
	StateStepping State = iota
	StateResetting
)

func (s State) String() string {
	if s == StateResetting {
		return "resetting"
	}
	return "stepping"
}

// Processor handles one collision for an object
// Implemented by sonify.Pipeline
type Processor interface {
	Process(ev event.Collision, obj sonify.Transposable) bool
}

// Sandbox is the simulation driver
// Not safe for concurrent use; the frame loop owns it
type Sandbox struct {
	world    *physics.World
	scene    *scene.Scene
	src      sonify.SnapshotSource
	sound    Processor
	material *physics.Material
	floor    *physics.Body

	installed *physics.ContactMaterial
	rebuilds  int

	objects []*Object
	state   State
	rng     *rand.Rand

	lastFrame time.Time
	hasFrame  bool
}

// New creates a sandbox with a floor plane at y = 0
// sound may be nil for a silent sandbox
func New(src sonify.SnapshotSource, sound Processor, seed int64) *Sandbox {
	s := &Sandbox{
		world:    physics.NewWorld(),
		scene:    scene.New(),
		src:      src,
		sound:    sound,
		material: &physics.Material{Name: "default"},
		rng:      rand.New(rand.NewSource(seed)),
	}
	s.world.AllowSleep = true

	s.floor = physics.NewBody(&physics.Plane{}, 0, mgl64.Vec3{})
	s.floor.Material = s.material
	s.world.AddBody(s.floor)

	s.syncWorld()
	return s
}

// World returns the physics world
func (s *Sandbox) World() *physics.World {
	return s.world
}

// Scene returns the render scene
func (s *Sandbox) Scene() *scene.Scene {
	return s.scene
}

// State returns the lifecycle state
func (s *Sandbox) State() State {
	return s.state
}

// Objects returns live objects in spawn order
func (s *Sandbox) Objects() []*Object {
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// ContactMaterial returns the installed contact material
func (s *Sandbox) ContactMaterial() *physics.ContactMaterial {
	return s.installed
}

// Rebuilds counts contact material replacements
func (s *Sandbox) Rebuilds() int {
	return s.rebuilds
}

// SpawnSphere adds a sphere of radius at pos
func (s *Sandbox) SpawnSphere(radius float64, pos mgl64.Vec3) *Object {
	radius = math.Max(radius, parameter.MinBoxHalfExtent)
	body := physics.NewBody(&physics.Sphere{Radius: radius}, parameter.DefaultBodyMass, pos)
	mesh := scene.NewMesh(scene.MeshSphere, mgl64.Vec3{radius, radius, radius})
	return s.spawn(body, mesh)
}

// SpawnBox adds a box of full size w x h x d at pos
func (s *Sandbox) SpawnBox(w, h, d float64, pos mgl64.Vec3) *Object {
	half := mgl64.Vec3{
		math.Max(w*0.5, parameter.MinBoxHalfExtent),
		math.Max(h*0.5, parameter.MinBoxHalfExtent),
		math.Max(d*0.5, parameter.MinBoxHalfExtent),
	}
	body := physics.NewBody(&physics.Box{HalfExtents: half}, parameter.DefaultBodyMass, pos)
	mesh := scene.NewMesh(scene.MeshBox, half)
	return s.spawn(body, mesh)
}

// SpawnRandomSphere drops a sphere of random radius above the floor
func (s *Sandbox) SpawnRandomSphere() *Object {
	r := s.rng.Float64()*parameter.SpawnRadiusRange + parameter.SpawnRadiusMin
	return s.SpawnSphere(r, s.randomDropPoint())
}

// SpawnRandomBox drops a box of random size above the floor
func (s *Sandbox) SpawnRandomBox() *Object {
	w := math.Max(s.rng.Float64(), parameter.SpawnBoxMin)
	h := math.Max(s.rng.Float64(), parameter.SpawnBoxMin)
	d := math.Max(s.rng.Float64(), parameter.SpawnBoxMin)
	return s.SpawnBox(w, h, d, s.randomDropPoint())
}

func (s *Sandbox) randomDropPoint() mgl64.Vec3 {
	return mgl64.Vec3{
		(s.rng.Float64() - 0.5) * parameter.SpawnSpread,
		parameter.SpawnHeight,
		(s.rng.Float64() - 0.5) * parameter.SpawnSpread,
	}
}

func (s *Sandbox) spawn(body *physics.Body, mesh *scene.Mesh) *Object {
	body.Material = s.material
	s.world.AddBody(body)

	mesh.SetTransform(body.Position, body.Orientation)
	mesh.Hue = len(s.objects)
	s.scene.Add(mesh)

	obj := &Object{ID: body.ID, Body: body, Mesh: mesh}
	obj.listener = body.AddCollisionListener(func(_ *physics.Body, c *physics.Contact) {
		s.onCollide(obj, c)
	})
	s.objects = append(s.objects, obj)
	return obj
}

// onCollide runs synchronously inside World.Step
func (s *Sandbox) onCollide(obj *Object, c *physics.Contact) {
	if obj.detached || s.sound == nil {
		return
	}
	ev := event.Collision{
		ObjectID:    obj.ID,
		ImpactSpeed: math.Abs(c.ImpactVelocityAlongNormal()),
		Restitution: c.Restitution,
	}
	if s.sound.Process(ev, obj) {
		obj.Mesh.Flash = parameter.FlashDuration
	}
}

// Reset removes every object: listener first, then body, then mesh
func (s *Sandbox) Reset() {
	for _, obj := range s.objects {
		obj.Body.RemoveCollisionListener(obj.listener)
		obj.detached = true
		s.world.RemoveBody(obj.Body)
		s.scene.Remove(obj.Mesh)
	}
	if len(s.objects) > 0 {
		log.Printf("[sandbox] reset %d objects", len(s.objects))
	}
	s.objects = s.objects[:0]
	s.state = StateResetting
}

// Frame steps by the wall time elapsed since the previous frame; the first frame steps 0
func (s *Sandbox) Frame(now time.Time) int {
	var dt float64
	if s.hasFrame {
		dt = now.Sub(s.lastFrame).Seconds()
	}
	s.lastFrame = now
	s.hasFrame = true
	return s.Step(dt)
}

// ResetClock forgets the previous frame time so the next Frame steps 0
func (s *Sandbox) ResetClock() {
	s.hasFrame = false
}

// Step syncs the world to fresh tunables, advances it by dt seconds and syncs meshes
// Returns the number of fixed sub-steps taken
func (s *Sandbox) Step(dt float64) int {
	s.state = StateStepping
	s.syncWorld()

	steps := s.world.Step(parameter.FixedTimeStep, dt, parameter.MaxSubSteps)

	for _, obj := range s.objects {
		obj.Mesh.SetTransform(obj.Body.Position, obj.Body.Orientation)
	}
	s.scene.DecayFlash(dt)
	return steps
}

// syncWorld applies gravity and rebuilds the contact material only when it changed
func (s *Sandbox) syncWorld() {
	g := s.src.Snapshot().Global
	s.world.SetGravity(mgl64.Vec3{0, g.GravityY, 0})

	if s.installed != nil &&
		s.installed.Friction == g.FloorFriction &&
		s.installed.Restitution == g.FloorRestitution {
		return
	}

	cm := physics.NewContactMaterial(s.material, s.material, g.FloorFriction, g.FloorRestitution)
	if s.installed != nil {
		s.world.RemoveContactMaterial(s.installed)
		s.rebuilds++
	}
	s.world.AddContactMaterial(cm)
	s.world.DefaultContactMaterial = cm
	s.installed = cm
}
