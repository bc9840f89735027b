package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/clatter/parameter"
)

// Voice turns a hit into a sounding streamer
// Each trigger returns an independent streamer so hits overlap
type Voice interface {
	Trigger(h Hit) beep.Streamer
}

// --- SampledVoice: one-shot sample pitched by resampling ---

// SampledVoice plays a recorded hit transposed from its root pitch
type SampledVoice struct {
	sample *beep.Buffer
	root   Pitch
}

// NewSampledVoice creates a voice over sample recorded at root
func NewSampledVoice(sample *beep.Buffer, root Pitch) *SampledVoice {
	return &SampledVoice{sample: sample, root: root}
}

// Trigger plays the whole sample; samples don't respond to note length
func (v *SampledVoice) Trigger(h Hit) beep.Streamer {
	if v.sample == nil || v.sample.Len() == 0 {
		return nil
	}
	ratio := h.Pitch.Frequency() / v.root.Frequency()
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return nil
	}
	s := v.sample.Streamer(0, v.sample.Len())
	var pitched beep.Streamer = s
	if ratio != 1 {
		pitched = beep.ResampleRatio(parameter.ResampleQuality, ratio, s)
	}
	return newVolume(pitched, h.Velocity)
}

// --- MembraneVoice: sine with exponential pitch sweep and ADSR ---

// ADSRState tracks envelope phase
type ADSRState int

const (
	ADSRIdle ADSRState = iota
	ADSRAttack
	ADSRDecay
	ADSRSustain
	ADSRRelease
)

// MembraneVoice synthesises drum-like tones
type MembraneVoice struct {
	sampleRate int
}

// NewMembraneVoice creates a synth voice
func NewMembraneVoice(sampleRate int) *MembraneVoice {
	return &MembraneVoice{sampleRate: sampleRate}
}

// Trigger starts a membrane hit
func (v *MembraneVoice) Trigger(h Hit) beep.Streamer {
	rate := beep.SampleRate(v.sampleRate)
	pd := h.PitchDecay
	if pd < parameter.MinEffectTime {
		pd = parameter.MinEffectTime
	}
	base := h.Pitch.Frequency()
	return &membrane{
		sampleRate: float64(v.sampleRate),
		base:       base,
		peak:       base * parameter.MembraneOctaves,
		sweepLen:   pd * float64(v.sampleRate),
		velocity:   h.Velocity,
		envState:   ADSRAttack,
		attack:     rate.N(parameter.MembraneAttack),
		decay:      rate.N(parameter.MembraneDecay),
		sustain:    parameter.MembraneSustain,
		release:    rate.N(parameter.MembraneRelease),
		noteOff:    rate.N(h.Duration),
	}
}

// membrane is one sounding synth hit
type membrane struct {
	sampleRate float64
	base, peak float64
	sweepLen   float64 // Samples
	velocity   float64
	phase      float64
	position   int

	envState ADSRState
	envLevel float64
	envPos   int
	attack   int
	decay    int
	sustain  float64
	release  int
	noteOff  int // Sample index at which release begins

	releaseFrom float64
}

// frequency returns the swept oscillator frequency at the current position
func (m *membrane) frequency() float64 {
	f := m.base
	if float64(m.position) < m.sweepLen {
		t := float64(m.position) / m.sweepLen
		f = m.peak * math.Pow(m.base/m.peak, t)
	}
	nyquist := m.sampleRate / 2
	if math.IsNaN(f) || f <= 0 {
		f = m.base
	}
	if f >= nyquist {
		f = nyquist * 0.99
	}
	return f
}

func (m *membrane) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if m.envState == ADSRIdle {
			return i, i > 0
		}
		if m.position == m.noteOff && m.envState != ADSRRelease {
			m.releaseFrom = m.envLevel
			m.envState = ADSRRelease
			m.envPos = 0
		}

		raw := math.Sin(2 * math.Pi * m.phase)
		m.phase += m.frequency() / m.sampleRate
		m.phase -= math.Floor(m.phase)

		val := raw * m.processEnvelope() * m.velocity
		samples[i][0] = val
		samples[i][1] = val
		m.position++
	}
	return len(samples), true
}

func (m *membrane) processEnvelope() float64 {
	switch m.envState {
	case ADSRAttack:
		if m.attack > 0 {
			m.envLevel = float64(m.envPos) / float64(m.attack)
		} else {
			m.envLevel = 1.0
		}
		m.envPos++
		if m.envPos >= m.attack {
			m.envState = ADSRDecay
			m.envPos = 0
		}

	case ADSRDecay:
		if m.decay > 0 {
			t := float64(m.envPos) / float64(m.decay)
			m.envLevel = 1.0 - t*(1.0-m.sustain)
		} else {
			m.envLevel = m.sustain
		}
		m.envPos++
		if m.envPos >= m.decay {
			m.envState = ADSRSustain
		}

	case ADSRSustain:
		m.envLevel = m.sustain

	case ADSRRelease:
		if m.release > 0 {
			t := float64(m.envPos) / float64(m.release)
			m.envLevel = m.releaseFrom * (1.0 - t)
		} else {
			m.envLevel = 0
		}
		m.envPos++
		if m.envPos >= m.release || m.envLevel <= 0 {
			m.envState = ADSRIdle
			m.envLevel = 0
		}
	}
	return m.envLevel
}

func (m *membrane) Err() error { return nil }
