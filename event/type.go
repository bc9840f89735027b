// Package event carries collision events and the side-effect intents derived from them
package event

import (
	"github.com/lixenwraith/clatter/audio"
)

// Collision is raised for each contact point when two bodies start touching
// Trigger: physics.World contact listener
// Consumer: sonify.Handle
type Collision struct {
	ObjectID    uint64
	ImpactSpeed float64 // m/s along the contact normal, >= 0
	Restitution float64 // Restitution of the installed contact material
}

// Intent is a side effect requested by the collision handler
// Intents are applied in the order returned
type Intent interface {
	intent()
}

// ConfigureEffects reconfigures the shared effect chain
// Trigger: audible collision
// Consumer: audio output | Payload: audio.ChainParams
type ConfigureEffects struct {
	Params audio.ChainParams
}

// EnsureRunning resumes a suspended audio output
// Trigger: audible collision
// Consumer: audio output | Payload: none
type EnsureRunning struct{}

// TriggerVoice starts one note
// Trigger: audible collision
// Consumer: audio output | Payload: audio.Hit
type TriggerVoice struct {
	Hit audio.Hit
}

// UpdateTranspose stores the new per-object transpose offset
// Trigger: audible collision
// Consumer: sandbox.Object | Payload: semitone offset
type UpdateTranspose struct {
	Offset int
}

func (ConfigureEffects) intent() {}
func (EnsureRunning) intent()    {}
func (TriggerVoice) intent()     {}
func (UpdateTranspose) intent()  {}
