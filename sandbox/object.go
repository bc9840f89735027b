package sandbox

import (
	"github.com/lixenwraith/clatter/physics"
	"github.com/lixenwraith/clatter/scene"
)

// Object pairs a physics body with its mesh and per-object musical state
type Object struct {
	ID              uint64
	Body            *physics.Body
	Mesh            *scene.Mesh
	TransposeOffset int

	listener physics.ListenerID
	detached bool
}

// Transpose returns the semitone offset applied to the next note
func (o *Object) Transpose() int {
	return o.TransposeOffset
}

// SetTranspose stores the offset for the next note
func (o *Object) SetTranspose(offset int) {
	o.TransposeOffset = offset
}

// Detached reports whether the object was removed by Reset
func (o *Object) Detached() bool {
	return o.detached
}
