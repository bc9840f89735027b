// Package tune holds the live-adjustable sandbox parameters.
// Consumers read an immutable Snapshot; only the Store mutates state.
package tune

import (
	"github.com/lixenwraith/clatter/audio"
	"github.com/lixenwraith/clatter/parameter"
)

// Global covers world physics and the voice toggle
type Global struct {
	GravityY              float64 // m/s^2, negative is down
	FloorFriction         float64
	FloorRestitution      float64
	ImpactVelocityCeiling float64 // m/s mapped to full intensity
	Synthesize            bool    // Membrane synth instead of the sample
}

// Performance covers the musical response to collisions
type Performance struct {
	BaseNote               audio.Pitch
	NoteIncrementPerBounce int
	DelayTime              float64 // Seconds
	DelayFeedback          float64 // 0-0.99
	ReverbDecayBase        float64 // Seconds at full intensity
	// TransposeLimit clamps per-object transpose to +-limit semitones; 0 is unbounded
	TransposeLimit int
}

// Visual covers the renderer; pixel size also drives the bit crusher
type Visual struct {
	PixelSize int
}

// Snapshot is a value copy of every tunable at one instant
type Snapshot struct {
	Global      Global
	Performance Performance
	Visual      Visual
}

// Defaults returns the initial tunables
func Defaults() Snapshot {
	return Snapshot{
		Global: Global{
			GravityY:              parameter.DefaultGravityY,
			FloorFriction:         parameter.DefaultFloorFriction,
			FloorRestitution:      parameter.DefaultFloorRestitution,
			ImpactVelocityCeiling: parameter.DefaultImpactVelocityCeiling,
		},
		Performance: Performance{
			BaseNote:               audio.MustPitch(parameter.DefaultBaseNote),
			NoteIncrementPerBounce: parameter.DefaultNoteIncrement,
			DelayTime:              parameter.DefaultDelayTime,
			DelayFeedback:          parameter.DefaultDelayFeedback,
			ReverbDecayBase:        parameter.DefaultReverbDecayBase,
			TransposeLimit:         parameter.DefaultTransposeLimit,
		},
		Visual: Visual{
			PixelSize: parameter.DefaultPixelSize,
		},
	}
}

// BitDepth derives the crusher depth from pixel size: (34 - px) / 2
func (s Snapshot) BitDepth() float64 {
	return (parameter.BitCrushPixelOffset - float64(s.Visual.PixelSize)) / parameter.BitCrushPixelDivisor
}

// Store owns the mutable tunables
// Not safe for concurrent use; the frame loop owns it
type Store struct {
	cur     Snapshot
	version uint64
}

// NewStore creates a store seeded with snap
func NewStore(snap Snapshot) *Store {
	return &Store{cur: snap}
}

// Snapshot returns a copy of the current tunables
func (s *Store) Snapshot() Snapshot {
	return s.cur
}

// Version increments on every effective change
func (s *Store) Version() uint64 {
	return s.version
}

// Replace installs snap wholesale, bypassing control ranges
func (s *Store) Replace(snap Snapshot) {
	if snap != s.cur {
		s.cur = snap
		s.version++
	}
}

// Set assigns a control value, clamped and snapped to the control's range
func (s *Store) Set(name string, v float64) error {
	c, ok := Lookup(name)
	if !ok {
		return unknown(name)
	}
	s.update(func(snap *Snapshot) { c.set(snap, c.normalize(v)) })
	return nil
}

// Adjust moves a control by steps increments
// Boolean controls flip on any odd step count
func (s *Store) Adjust(name string, steps int) error {
	c, ok := Lookup(name)
	if !ok {
		return unknown(name)
	}
	if c.Kind == KindBool {
		if steps%2 != 0 {
			return s.Toggle(name)
		}
		return nil
	}
	cur := c.get(&s.cur)
	s.update(func(snap *Snapshot) { c.set(snap, c.normalize(cur+float64(steps)*c.Step)) })
	return nil
}

// Toggle flips a boolean control
func (s *Store) Toggle(name string) error {
	c, ok := Lookup(name)
	if !ok {
		return unknown(name)
	}
	if c.Kind != KindBool {
		return notToggle(name)
	}
	cur := c.get(&s.cur)
	s.update(func(snap *Snapshot) { c.set(snap, 1-cur) })
	return nil
}

// Value returns the numeric value of a control
func (s *Store) Value(name string) (float64, error) {
	c, ok := Lookup(name)
	if !ok {
		return 0, unknown(name)
	}
	return c.get(&s.cur), nil
}

func (s *Store) update(fn func(*Snapshot)) {
	next := s.cur
	fn(&next)
	s.Replace(next)
}
