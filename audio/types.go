package audio

import (
	"errors"
	"time"
)

// VoiceKind selects the sound source for a hit
type VoiceKind int

const (
	VoiceSampled VoiceKind = iota // One-shot sample pitched by resampling
	VoiceSynth                    // Membrane synth with pitch sweep
)

func (k VoiceKind) String() string {
	switch k {
	case VoiceSampled:
		return "sampled"
	case VoiceSynth:
		return "synth"
	default:
		return "unknown"
	}
}

// Hit is one note-on/note-off request
type Hit struct {
	Voice    VoiceKind
	Pitch    Pitch
	Velocity float64       // 0.0-1.0
	Duration time.Duration // Note-on length before release
	// PitchDecay is the synth pitch sweep time in seconds, ignored by the sampled voice
	PitchDecay float64
}

// ChainParams is the full parameter set of the effect chain
type ChainParams struct {
	Bits          float64 // Bit crusher depth
	DelayTime     float64 // Seconds
	DelayFeedback float64 // 0-0.99
	ReverbDecay   float64 // Seconds, > 0
}

// State is the run state of an audio output
type State int

const (
	StateSuspended State = iota
	StateRunning
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateSuspended:
		return "suspended"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrInvalidPitch  = errors.New("invalid pitch")
	ErrInvalidSample = errors.New("invalid sample")
	ErrEngineClosed  = errors.New("audio engine closed")
	ErrAlreadyActive = errors.New("audio engine already running")
)
