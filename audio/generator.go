package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/clatter/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveNoise
)

// oscillator generates a fixed-frequency wave for a bounded duration
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so 0 volume is made silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// sweep is a sine whose frequency glides exponentially from start to end
type sweep struct {
	start, end float64
	duration   int
	position   int
	phase      float64
	rate       beep.SampleRate
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.duration)
		freq := s.start * math.Pow(s.end/s.start, t)
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// DefaultHitSample synthesises the built-in percussive hit used when no
// sample file is configured. The hit is pitched at SampleRootNote.
func DefaultHitSample(sampleRate int) *beep.Buffer {
	rate := beep.SampleRate(sampleRate)
	d := parameter.HitSoundDuration

	body := &sweep{
		start:    parameter.HitBodyStartFreq,
		end:      parameter.HitBodyEndFreq,
		duration: rate.N(d),
		rate:     rate,
	}
	noise := NewOscillator(0, parameter.HitSoundAttack+parameter.HitSoundRelease/4, WaveNoise, rate)

	mixed := beep.Mix(
		newVolume(NewEnvelope(body, d, parameter.HitSoundAttack, parameter.HitSoundRelease, rate), 1-parameter.HitNoiseMix),
		newVolume(NewEnvelope(noise, parameter.HitSoundAttack+parameter.HitSoundRelease/4, parameter.HitSoundAttack, parameter.HitSoundRelease/4, rate), parameter.HitNoiseMix),
	)

	buf := beep.NewBuffer(sampleFormat(sampleRate))
	buf.Append(beep.Take(rate.N(d), mixed))
	return buf
}

// sampleFormat is the storage format of sample buffers
func sampleFormat(sampleRate int) beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: parameter.AudioChannels,
		Precision:   parameter.AudioBitDepth / 8,
	}
}
