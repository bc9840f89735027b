package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/clatter/parameter"
)

// TestBitCrusherQuantisation verifies step size follows 0.5^(bits-1)
func TestBitCrusherQuantisation(t *testing.T) {
	tests := []struct {
		name string
		bits float64
		in   float64
		want float64
	}{
		{"one bit rounds down", 1, 0.3, 0},
		{"one bit rounds up", 1, 0.6, 1},
		{"two bits", 2, 0.3, 0.5},
		{"two bits negative", 2, -0.8, -1},
		{"zero stays zero", 16, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBitCrusher(tt.bits)
			if got := b.Process(tt.in); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestBitCrusherHighDepthTransparent verifies small error at 16 bits
func TestBitCrusherHighDepthTransparent(t *testing.T) {
	b := NewBitCrusher(16)
	step := math.Pow(0.5, 15)
	for _, x := range []float64{0.123456, -0.7, 0.999, -0.00001} {
		if d := math.Abs(b.Process(x) - x); d > step/2+1e-12 {
			t.Errorf("Input %v: error %v exceeds half step", x, d)
		}
	}
}

// TestBitCrusherFloor verifies depth is floored at one bit
func TestBitCrusherFloor(t *testing.T) {
	b := NewBitCrusher(-4)
	if b.Bits() != 1 {
		t.Errorf("Expected bits floored to 1, got %v", b.Bits())
	}
}

func impulseResponse(p func(float64) float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := 0.0
		if i == 0 {
			x = 1
		}
		out[i] = p(x)
	}
	return out
}

// TestFeedbackDelayImpulse verifies a single echo at the delay time
func TestFeedbackDelayImpulse(t *testing.T) {
	d := NewFeedbackDelay(1000, 1)
	d.Set(0.01, 0)

	out := impulseResponse(d.Process, 50)
	for i, v := range out {
		want := 0.0
		if i == 10 {
			want = 1
		}
		if math.Abs(v-want) > 1e-12 {
			t.Errorf("Sample %d: expected %v, got %v", i, want, v)
		}
	}
}

// TestFeedbackDelayRepeats verifies feedback produces decaying repeats
func TestFeedbackDelayRepeats(t *testing.T) {
	d := NewFeedbackDelay(1000, 1)
	d.Set(0.01, 0.5)

	out := impulseResponse(d.Process, 40)
	expected := map[int]float64{10: 1, 20: 0.5, 30: 0.25}
	for i, want := range expected {
		if math.Abs(out[i]-want) > 1e-12 {
			t.Errorf("Repeat at %d: expected %v, got %v", i, want, out[i])
		}
	}
}

// TestFeedbackDelayClamp verifies delay time bounds
func TestFeedbackDelayClamp(t *testing.T) {
	d := NewFeedbackDelay(1000, 1)

	d.Set(5, 0)
	if d.delay != 1000 {
		t.Errorf("Expected delay clamped to 1000 samples, got %v", d.delay)
	}

	d.Set(0, 0)
	if d.delay != 1 {
		t.Errorf("Expected delay floored to 1 sample, got %v", d.delay)
	}
}

func tailEnergy(r *Reverb, sampleRate int, from time.Duration, total time.Duration) float64 {
	rate := beep.SampleRate(sampleRate)
	out := impulseResponse(r.Process, rate.N(total))
	var e float64
	for _, v := range out[rate.N(from):] {
		e += v * v
	}
	return e
}

// TestReverbDecayControlsTail verifies longer decay leaves more late energy
func TestReverbDecayControlsTail(t *testing.T) {
	const sr = 8000
	short := tailEnergy(NewReverb(sr, 0.1), sr, 500*time.Millisecond, time.Second)
	long := tailEnergy(NewReverb(sr, 2), sr, 500*time.Millisecond, time.Second)

	if long <= short {
		t.Errorf("Expected long decay tail (%v) above short decay tail (%v)", long, short)
	}
	if short > 1e-6 {
		t.Errorf("Expected short decay to be silent after 500ms, got energy %v", short)
	}
}

// TestReverbStable verifies output stays bounded
func TestReverbStable(t *testing.T) {
	r := NewReverb(8000, 10)
	out := impulseResponse(r.Process, 16000)
	for i, v := range out {
		if math.IsNaN(v) || math.Abs(v) > 2 {
			t.Fatalf("Sample %d unstable: %v", i, v)
		}
	}
}

// TestFeedbackRecoversFromNonFinite verifies a bad sample is not recirculated
func TestFeedbackRecoversFromNonFinite(t *testing.T) {
	delay := NewFeedbackDelay(1000, 1)
	delay.Set(0.01, 0.9)
	reverb := NewReverb(8000, 3)

	tests := []struct {
		name    string
		process func(float64) float64
	}{
		{"delay", delay.Process},
		{"reverb", reverb.Process},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.process(math.NaN())
			tt.process(math.Inf(1))
			tt.process(math.Inf(-1))
			var heard bool
			for i := 0; i < 8000; i++ {
				x := 0.0
				if i == 0 {
					x = 1
				}
				v := tt.process(x)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("Expected finite output, got %v at %d", v, i)
				}
				if v != 0 {
					heard = true
				}
			}
			if !heard {
				t.Error("Expected later input to still pass through")
			}
		})
	}
}

// TestReverbDecayFloor verifies non-positive decay is floored
func TestReverbDecayFloor(t *testing.T) {
	r := NewReverb(8000, 1)
	r.SetDecay(0)
	if r.Decay() != parameter.MinEffectTime {
		t.Errorf("Expected decay %v, got %v", parameter.MinEffectTime, r.Decay())
	}
	r.SetDecay(-3)
	if r.Decay() != parameter.MinEffectTime {
		t.Errorf("Expected decay %v, got %v", parameter.MinEffectTime, r.Decay())
	}
}

// TestReverbReset verifies state is cleared
func TestReverbReset(t *testing.T) {
	r := NewReverb(8000, 2)
	impulseResponse(r.Process, 4000)
	r.Reset()
	for i := 0; i < 4000; i++ {
		if v := r.Process(0); v != 0 {
			t.Fatalf("Expected silence after reset, got %v at %d", v, i)
		}
	}
}

// TestOscillatorSine verifies sine wave generation
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok {
		t.Error("Expected stream to return ok=true")
	}
	if n != 100 {
		t.Errorf("Expected to stream 100 samples, got %d", n)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
	}
}

// TestOscillatorDuration verifies the oscillator drains after its duration
func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 50*time.Millisecond, WaveNoise, rate)

	samples := make([][2]float64, 80)
	n, ok := osc.Stream(samples)
	if n != 50 || !ok {
		t.Errorf("Expected 50 samples and ok on first read, got %d, %v", n, ok)
	}
	n, ok = osc.Stream(samples)
	if n != 0 || ok {
		t.Errorf("Expected drained oscillator, got %d, %v", n, ok)
	}
}

// TestEnvelopeAttack verifies the envelope starts from silence
func TestEnvelopeAttack(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	osc := NewOscillator(0, d, WaveNoise, rate)
	env := NewEnvelope(osc, d, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("Expected 100 samples, got %d", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected first sample silent, got %v", samples[0][0])
	}
}

// TestDefaultHitSample verifies the built-in hit is non-silent and bounded
func TestDefaultHitSample(t *testing.T) {
	buf := DefaultHitSample(8000)
	max := beep.SampleRate(8000).N(parameter.HitSoundDuration)
	if buf.Len() == 0 || buf.Len() > max {
		t.Fatalf("Expected 1-%d samples, got %d", max, buf.Len())
	}

	samples := make([][2]float64, buf.Len())
	n, _ := buf.Streamer(0, buf.Len()).Stream(samples)
	var peak float64
	for _, s := range samples[:n] {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak == 0 {
		t.Error("Expected audible default hit")
	}
	if peak > 1.0001 {
		t.Errorf("Expected peak within [-1, 1], got %v", peak)
	}
}
