package parameter

import "time"

// Frame Loop
const (
	// FrameUpdateInterval is the sandbox frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// InputQueueSize buffers terminal events between the poller and the frame loop
	InputQueueSize = 256

	// CollisionLogSize is the number of recent collisions kept for the HUD
	CollisionLogSize = 8

	// FlashDuration is how long a mesh stays highlighted after an audible hit (seconds)
	FlashDuration = 0.2
)

// Performance Tunable Defaults
const (
	DefaultBaseNote        = "C3"
	DefaultNoteIncrement   = 1
	DefaultDelayTime       = 0.01
	DefaultDelayFeedback   = 0.1
	DefaultReverbDecayBase = 2.0
	DefaultPixelSize       = 2
	DefaultTransposeLimit  = 0 // unbounded
)

// Terminal View
const (
	// ViewHalfWidth is the world half-extent shown horizontally (m)
	ViewHalfWidth = 5.0

	// ViewHeight is the world height shown above the floor (m)
	ViewHeight = 4.5

	// HUDRows is reserved at the bottom of the screen
	HUDRows = 4
)
