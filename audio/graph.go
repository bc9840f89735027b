package audio

import (
	"sync"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/clatter/parameter"
)

// Graph wires voices, the voice bus and the effect chain
// lock guards graph state against the goroutine pulling samples
type Graph struct {
	sampleRate int
	bus        *Bus
	chain      *Chain
	voices     map[VoiceKind]Voice
	lock       sync.Locker
}

// NewGraph builds a graph over sample (recorded at SampleRootNote)
// A nil sample falls back to the synthesised default hit
func NewGraph(sampleRate int, sample *beep.Buffer, lock sync.Locker) *Graph {
	if sample == nil {
		sample = DefaultHitSample(sampleRate)
	}
	if lock == nil {
		lock = &sync.Mutex{}
	}
	bus := NewBus(parameter.MaxActiveVoices)
	return &Graph{
		sampleRate: sampleRate,
		bus:        bus,
		chain:      NewChain(sampleRate, bus),
		voices: map[VoiceKind]Voice{
			VoiceSampled: NewSampledVoice(sample, Pitch(parameter.SampleRootNote)),
			VoiceSynth:   NewMembraneVoice(sampleRate),
		},
		lock: lock,
	}
}

// SetChain reconfigures the effect chain
func (g *Graph) SetChain(p ChainParams) {
	g.lock.Lock()
	g.chain.Set(p)
	g.lock.Unlock()
}

// Chain returns the active effect configuration
func (g *Graph) Chain() ChainParams {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.chain.Params()
}

// Play triggers the selected voice and reports whether a voice was added
func (g *Graph) Play(h Hit) bool {
	v, ok := g.voices[h.Voice]
	if !ok {
		return false
	}
	s := v.Trigger(h)
	if s == nil {
		return false
	}
	g.lock.Lock()
	g.bus.Add(s)
	g.lock.Unlock()
	return true
}

// ActiveVoices returns the number of sounding voices
func (g *Graph) ActiveVoices() int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.bus.Len()
}

// GetStats returns played and dropped voice counts
func (g *Graph) GetStats() (played, dropped uint64) {
	return g.bus.GetStats()
}

// Stream pulls the chain output; the output holds lock while streaming
func (g *Graph) Stream(samples [][2]float64) (n int, ok bool) {
	return g.chain.Stream(samples)
}

// Err returns nil
func (g *Graph) Err() error { return nil }
