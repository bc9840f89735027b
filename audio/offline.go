package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"
	"github.com/gopxl/beep"
)

// OfflineRenderer runs the graph without a device, capturing output in memory
// The caller advances time explicitly, so rendering is deterministic
type OfflineRenderer struct {
	graph      *Graph
	sampleRate int
	suspended  bool
	out        []float32 // Interleaved stereo
	buf        [][2]float64
	mu         sync.Mutex
}

// NewOfflineRenderer creates a renderer; sample may be nil for the built-in hit
// Output starts suspended, matching a freshly opened device
func NewOfflineRenderer(sampleRate int, sample *beep.Buffer) *OfflineRenderer {
	r := &OfflineRenderer{sampleRate: sampleRate, suspended: true}
	r.graph = NewGraph(sampleRate, sample, &r.mu)
	return r
}

// State reports whether rendering has been resumed
func (r *OfflineRenderer) State() State {
	if r.suspended {
		return StateSuspended
	}
	return StateRunning
}

// Resume enables capture
func (r *OfflineRenderer) Resume() error {
	r.suspended = false
	return nil
}

// SetChain reconfigures the effect chain
func (r *OfflineRenderer) SetChain(p ChainParams) {
	r.graph.SetChain(p)
}

// Chain returns the active effect configuration
func (r *OfflineRenderer) Chain() ChainParams {
	return r.graph.Chain()
}

// Play triggers a hit; false when no voice could sound it
func (r *OfflineRenderer) Play(h Hit) bool {
	return r.graph.Play(h)
}

// ActiveVoices returns the number of sounding voices
func (r *OfflineRenderer) ActiveVoices() int {
	return r.graph.ActiveVoices()
}

// Advance renders d of audio; a suspended renderer captures silence
func (r *OfflineRenderer) Advance(d time.Duration) {
	n := beep.SampleRate(r.sampleRate).N(d)
	if n <= 0 {
		return
	}
	if r.suspended {
		r.out = append(r.out, make([]float32, n*2)...)
		return
	}
	if cap(r.buf) < n {
		r.buf = make([][2]float64, n)
	}
	buf := r.buf[:n]

	r.mu.Lock()
	r.graph.Stream(buf)
	r.mu.Unlock()

	for _, s := range buf {
		r.out = append(r.out, float32(s[0]), float32(s[1]))
	}
}

// Samples returns the captured interleaved stereo output
func (r *OfflineRenderer) Samples() []float32 {
	return r.out
}

// Frames returns the number of captured frames
func (r *OfflineRenderer) Frames() int {
	return len(r.out) / 2
}

// WriteWAV writes the captured output as 16-bit stereo WAV
func (r *OfflineRenderer) WriteWAV(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, r.sampleRate, 16, 2, 1)
	buf := &goaudio.Float32Buffer{
		Format: &goaudio.Format{
			SampleRate:  r.sampleRate,
			NumChannels: 2,
		},
		Data:           clipped(r.out),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// clipped hard-limits samples to [-1, 1] for integer encoding
func clipped(in []float32) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		switch {
		case v > 1:
			v = 1
		case v < -1:
			v = -1
		}
		out[i] = v
	}
	return out
}
