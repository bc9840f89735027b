package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/clatter/parameter"
)

// DefaultChainParams returns the chain state before any collision configures it
func DefaultChainParams() ChainParams {
	return ChainParams{
		Bits:          (parameter.BitCrushPixelOffset - parameter.DefaultPixelSize) / parameter.BitCrushPixelDivisor,
		DelayTime:     parameter.DefaultDelayTime,
		DelayFeedback: parameter.DefaultDelayFeedback,
		ReverbDecay:   parameter.DefaultReverbDecayBase,
	}
}

// Chain is the shared effect chain every voice feeds:
// voices -> (delay + reverb in parallel) -> bit crusher -> out
type Chain struct {
	input   beep.Streamer
	crusher *BitCrusher
	delay   *FeedbackDelay
	reverb  *Reverb
	params  ChainParams
}

// NewChain builds a chain pulling from input
func NewChain(sampleRate int, input beep.Streamer) *Chain {
	p := DefaultChainParams()
	c := &Chain{
		input:   input,
		crusher: NewBitCrusher(p.Bits),
		delay:   NewFeedbackDelay(sampleRate, parameter.MaxDelaySeconds),
		reverb:  NewReverb(sampleRate, p.ReverbDecay),
	}
	c.Set(p)
	return c
}

// Set reconfigures every stage in place
// Stage state is kept, so tails ring on through parameter changes
func (c *Chain) Set(p ChainParams) {
	if p.ReverbDecay < parameter.MinEffectTime {
		p.ReverbDecay = parameter.MinEffectTime
	}
	c.params = p
	c.crusher.SetBits(p.Bits)
	c.delay.Set(p.DelayTime, p.DelayFeedback)
	c.reverb.SetDecay(p.ReverbDecay)
}

// Params returns the active configuration
func (c *Chain) Params() ChainParams {
	return c.params
}

// Stream processes the input through the chain; the chain never drains
func (c *Chain) Stream(samples [][2]float64) (n int, ok bool) {
	n, _ = c.input.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}

	for i := range samples {
		x := 0.5 * (samples[i][0] + samples[i][1])
		y := c.crusher.Process(c.delay.Process(x) + c.reverb.Process(x))
		samples[i][0] = y
		samples[i][1] = y
	}
	return len(samples), true
}

// Err returns the input error
func (c *Chain) Err() error { return c.input.Err() }

// Reset clears delay and reverb tails
func (c *Chain) Reset() {
	c.delay.Reset()
	c.reverb.Reset()
}
