package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/clatter/parameter"
)

// AudioConfig holds output settings
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
	// HitSamplePath is a WAV file used by the sampled voice; empty uses the built-in hit
	HitSamplePath string
	// StartSuspended opens the device paused; the first audible collision resumes it
	StartSuspended bool
}

// DefaultAudioConfig returns the default configuration
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:        true,
		MasterVolume:   0.8,
		SampleRate:     parameter.AudioSampleRate,
		StartSuspended: true,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("CLATTER_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume (0-100 converted to 0.0-1.0)
	if volume := os.Getenv("CLATTER_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = float64(val) / 100.0
			if cfg.MasterVolume < 0 {
				cfg.MasterVolume = 0
			}
			if cfg.MasterVolume > 1 {
				cfg.MasterVolume = 1
			}
		}
	}

	if sampleRate := os.Getenv("CLATTER_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if path := os.Getenv("CLATTER_HIT_SAMPLE"); path != "" {
		cfg.HitSamplePath = path
	}

	if suspended := os.Getenv("CLATTER_START_SUSPENDED"); suspended != "" {
		if val, err := strconv.ParseBool(suspended); err == nil {
			cfg.StartSuspended = val
		}
	}

	return cfg
}
