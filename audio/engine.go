package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/clatter/parameter"
)

// speakerLock guards graph state against the speaker goroutine
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// AudioEngine plays hits through the system speaker
// Without a usable device the engine runs in silent mode and drops hits
type AudioEngine struct {
	config *AudioConfig
	graph  *Graph

	running    atomic.Bool
	suspended  atomic.Bool
	silentMode atomic.Bool
	muted      atomic.Bool

	mu sync.Mutex // Serialises Start/Stop/Resume/Suspend
}

// NewAudioEngine creates an engine; sample may be nil for the built-in hit
func NewAudioEngine(cfg *AudioConfig, sample *beep.Buffer) *AudioEngine {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	ae := &AudioEngine{
		config: cfg,
		graph:  NewGraph(cfg.SampleRate, sample, speakerLock{}),
	}
	ae.muted.Store(!cfg.Enabled)
	return ae
}

// Start opens the speaker and attaches the graph
func (ae *AudioEngine) Start() error {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if ae.running.Load() {
		return ErrAlreadyActive
	}

	if ae.muted.Load() {
		ae.silentMode.Store(true)
		ae.running.Store(true)
		return nil
	}

	rate := beep.SampleRate(ae.config.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		log.Printf("[audio] speaker unavailable, running silent: %v", err)
		ae.silentMode.Store(true)
		ae.running.Store(true)
		return nil // Silent mode, not an error
	}

	speaker.Play(newVolume(ae.graph, ae.config.MasterVolume))
	ae.running.Store(true)

	if ae.config.StartSuspended {
		if err := speaker.Suspend(); err != nil {
			log.Printf("[audio] suspend on start: %v", err)
		} else {
			ae.suspended.Store(true)
		}
	}
	return nil
}

// Stop closes the speaker
func (ae *AudioEngine) Stop() {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if !ae.running.CompareAndSwap(true, false) {
		return
	}
	if !ae.silentMode.Load() {
		speaker.Clear()
		speaker.Close()
	}
	ae.suspended.Store(false)
}

// State reports the output run state
func (ae *AudioEngine) State() State {
	switch {
	case !ae.running.Load():
		return StateClosed
	case ae.suspended.Load():
		return StateSuspended
	default:
		return StateRunning
	}
}

// Resume restarts a suspended output
func (ae *AudioEngine) Resume() error {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if !ae.running.Load() {
		return ErrEngineClosed
	}
	if !ae.suspended.Load() {
		return nil
	}
	if err := speaker.Resume(); err != nil {
		return fmt.Errorf("audio: resume: %w", err)
	}
	ae.suspended.Store(false)
	return nil
}

// Suspend pauses the output device; graph state is kept
func (ae *AudioEngine) Suspend() error {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	if !ae.running.Load() {
		return ErrEngineClosed
	}
	if ae.suspended.Load() || ae.silentMode.Load() {
		return nil
	}
	if err := speaker.Suspend(); err != nil {
		return fmt.Errorf("audio: suspend: %w", err)
	}
	ae.suspended.Store(true)
	return nil
}

// SetChain reconfigures the effect chain
func (ae *AudioEngine) SetChain(p ChainParams) {
	if ae.silentMode.Load() || !ae.running.Load() {
		// Keep parameters so a later state read is consistent
		ae.graph.chain.Set(p)
		return
	}
	ae.graph.SetChain(p)
}

// Play triggers a hit; dropped when muted, silent or closed
func (ae *AudioEngine) Play(h Hit) bool {
	if !ae.running.Load() || ae.muted.Load() || ae.silentMode.Load() {
		return false
	}
	return ae.graph.Play(h)
}

// ToggleMute toggles mute state, returns true if now enabled
func (ae *AudioEngine) ToggleMute() bool {
	newMute := !ae.muted.Load()
	ae.muted.Store(newMute)
	return !newMute
}

// IsMuted returns current mute state
func (ae *AudioEngine) IsMuted() bool {
	return ae.muted.Load()
}

// IsSilent returns true when no device could be opened
func (ae *AudioEngine) IsSilent() bool {
	return ae.silentMode.Load()
}

// Chain returns the active effect configuration
func (ae *AudioEngine) Chain() ChainParams {
	if ae.silentMode.Load() || !ae.running.Load() {
		return ae.graph.chain.Params()
	}
	return ae.graph.Chain()
}

// GetStats returns played and dropped voice counts
func (ae *AudioEngine) GetStats() (played, dropped uint64) {
	return ae.graph.GetStats()
}
