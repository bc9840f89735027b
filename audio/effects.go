package audio

import (
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/lixenwraith/clatter/parameter"
)

// BitCrusher quantises samples to a reduced bit depth
type BitCrusher struct {
	bits float64
	step float64
}

// NewBitCrusher creates a crusher at the given depth
func NewBitCrusher(bits float64) *BitCrusher {
	b := &BitCrusher{}
	b.SetBits(bits)
	return b
}

// SetBits updates the depth; the quantisation step is 0.5^(bits-1)
func (b *BitCrusher) SetBits(bits float64) {
	if bits < 1 {
		bits = 1
	}
	b.bits = bits
	b.step = math.Pow(0.5, bits-1)
}

// Bits returns the current depth
func (b *BitCrusher) Bits() float64 {
	return b.bits
}

// Process quantises one sample
func (b *BitCrusher) Process(x float64) float64 {
	return math.Floor(x/b.step+0.5) * b.step
}

// sanitize prepares a value for a feedback write; non-finite input becomes silence
func sanitize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return dspcore.FlushDenormals(x)
}

// FeedbackDelay is a single-tap delay with feedback and fractional delay time
type FeedbackDelay struct {
	sampleRate int
	buffer     []float64
	writePos   int
	delay      float64 // Samples
	feedback   float64
}

// NewFeedbackDelay creates a delay line holding up to maxSeconds
func NewFeedbackDelay(sampleRate int, maxSeconds float64) *FeedbackDelay {
	size := int(maxSeconds*float64(sampleRate)) + 2
	return &FeedbackDelay{
		sampleRate: sampleRate,
		buffer:     make([]float64, size),
		delay:      1,
	}
}

// Set applies delay time in seconds and feedback
func (d *FeedbackDelay) Set(seconds, feedback float64) {
	samples := seconds * float64(d.sampleRate)
	maxDelay := float64(len(d.buffer) - 2)
	if samples < 1 {
		samples = 1
	} else if samples > maxDelay {
		samples = maxDelay
	}
	d.delay = samples
	d.feedback = feedback
}

// read returns the sample written delay samples ago
func (d *FeedbackDelay) read(delay int) float64 {
	size := len(d.buffer)
	return d.buffer[((d.writePos-delay)%size+size)%size]
}

// Process runs one sample through the delay and returns the delayed output
func (d *FeedbackDelay) Process(x float64) float64 {
	intDelay := int(d.delay)
	frac := d.delay - float64(intDelay)
	s1 := d.read(intDelay)
	s2 := d.read(intDelay + 1)
	y := s1 + frac*(s2-s1)

	d.buffer[d.writePos] = sanitize(x + y*d.feedback)
	d.writePos = (d.writePos + 1) % len(d.buffer)
	return y
}

// Reset clears the delay line
func (d *FeedbackDelay) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// combFilter is a feedback comb with per-filter decay gain
type combFilter struct {
	buffer []float64
	pos    int
	gain   float64
}

func (c *combFilter) process(x float64) float64 {
	out := c.buffer[c.pos]
	c.buffer[c.pos] = sanitize(x + out*c.gain)
	c.pos = (c.pos + 1) % len(c.buffer)
	return out
}

// allpassFilter diffuses the comb output
type allpassFilter struct {
	buffer []float64
	pos    int
}

func (a *allpassFilter) process(x float64) float64 {
	bufOut := a.buffer[a.pos]
	a.buffer[a.pos] = sanitize(x + bufOut*parameter.ReverbAllpassGain)
	a.pos = (a.pos + 1) % len(a.buffer)
	return bufOut - x
}

// Reverb is a Schroeder network: four parallel combs into two serial allpasses
// Output is fully wet
type Reverb struct {
	sampleRate int
	decay      float64
	combs      [4]combFilter
	allpasses  [2]allpassFilter
}

// NewReverb creates a reverb with the given decay in seconds
func NewReverb(sampleRate int, decay float64) *Reverb {
	scale := float64(sampleRate) / 44100.0
	lengths := [4]int{parameter.ReverbComb1, parameter.ReverbComb2, parameter.ReverbComb3, parameter.ReverbComb4}

	r := &Reverb{sampleRate: sampleRate}
	for i, l := range lengths {
		n := int(float64(l) * scale)
		if n < 1 {
			n = 1
		}
		r.combs[i].buffer = make([]float64, n)
	}
	for i := range r.allpasses {
		n := int(float64(parameter.ReverbAllpass) * scale)
		if n < 1 {
			n = 1
		}
		// Offset second allpass to avoid coincident echoes
		r.allpasses[i].buffer = make([]float64, n+i*37)
	}
	r.SetDecay(decay)
	return r
}

// SetDecay sets the time in seconds for the tail to fall 60dB
// Non-positive values are floored to MinEffectTime
func (r *Reverb) SetDecay(decay float64) {
	if decay < parameter.MinEffectTime {
		decay = parameter.MinEffectTime
	}
	r.decay = decay
	for i := range r.combs {
		// gain^(decay*sr/len) = 10^(-60/20)
		loops := decay * float64(r.sampleRate) / float64(len(r.combs[i].buffer))
		r.combs[i].gain = math.Pow(10, parameter.ReverbDecayDB/20/loops)
	}
}

// Decay returns the current decay in seconds
func (r *Reverb) Decay() float64 {
	return r.decay
}

// Process runs one sample through the network
func (r *Reverb) Process(x float64) float64 {
	var sum float64
	for i := range r.combs {
		sum += r.combs[i].process(x)
	}
	y := sum * parameter.ReverbOutputGain
	for i := range r.allpasses {
		y = r.allpasses[i].process(y)
	}
	return y
}

// Reset clears the reverb state
func (r *Reverb) Reset() {
	for i := range r.combs {
		clear(r.combs[i].buffer)
		r.combs[i].pos = 0
	}
	for i := range r.allpasses {
		clear(r.allpasses[i].buffer)
		r.allpasses[i].pos = 0
	}
}
