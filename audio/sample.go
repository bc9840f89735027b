package audio

import (
	"fmt"
	"log"
	"os"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/gopxl/beep"
)

// LoadSample reads a WAV hit sample, downmixes to mono and resamples to sampleRate
func LoadSample(path string, sampleRate int) (*beep.Buffer, error) {
	data, srcRate, err := readWAVMono(path)
	if err != nil {
		return nil, err
	}
	data, err = resampleIfNeeded(data, srcRate, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: resample %s: %v", ErrInvalidSample, path, err)
	}
	return NewSampleBuffer(data, sampleRate), nil
}

// HitSample loads cfg.HitSamplePath, returning nil for the built-in hit
// A bad file is logged and falls back to the built-in hit
func HitSample(cfg *AudioConfig) *beep.Buffer {
	if cfg == nil || cfg.HitSamplePath == "" {
		return nil
	}
	buf, err := LoadSample(cfg.HitSamplePath, cfg.SampleRate)
	if err != nil {
		log.Printf("[audio] hit sample %s unusable, using built-in hit: %v", cfg.HitSamplePath, err)
		return nil
	}
	return buf
}

// NewSampleBuffer stores mono samples in a beep buffer
func NewSampleBuffer(data []float64, sampleRate int) *beep.Buffer {
	buf := beep.NewBuffer(sampleFormat(sampleRate))
	buf.Append(&monoStreamer{data: data})
	return buf
}

func readWAVMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: invalid wav file: %s", ErrInvalidSample, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrInvalidSample, path, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 || buf.Format.SampleRate <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid wav buffer: %s", ErrInvalidSample, path)
	}

	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	if frames == 0 {
		return nil, 0, fmt.Errorf("%w: empty wav data: %s", ErrInvalidSample, path)
	}
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = sum / float64(ch)
	}
	return out, buf.Format.SampleRate, nil
}

func resampleIfNeeded(in []float64, fromRate, toRate int) ([]float64, error) {
	if fromRate == toRate {
		return in, nil
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(in), nil
}

// monoStreamer streams a mono slice to both channels
type monoStreamer struct {
	data []float64
	pos  int
}

func (m *monoStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if m.pos >= len(m.data) {
		return 0, false
	}
	for i := range samples {
		if m.pos >= len(m.data) {
			return i, true
		}
		samples[i][0] = m.data[m.pos]
		samples[i][1] = m.data[m.pos]
		m.pos++
	}
	return len(samples), true
}

func (m *monoStreamer) Err() error { return nil }
