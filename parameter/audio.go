package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
	AudioBitDepth   = 16
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// ResampleQuality is the beep interpolation quality used for pitching samples (1-64)
	ResampleQuality = 4

	// MaxActiveVoices caps concurrently sounding hits; oldest are dropped first
	MaxActiveVoices = 48
)

// Trigger Guard
const (
	// SilenceThreshold is the intensity at or below which a collision stays silent
	SilenceThreshold = 0.05

	// MinEffectTime floors reverb decay and synth pitch decay (seconds)
	MinEffectTime = 0.001
)

// Bit Crusher
const (
	// BitCrushPixelOffset and BitCrushPixelDivisor map pixel size to bits: (34 - px) / 2
	BitCrushPixelOffset  = 34.0
	BitCrushPixelDivisor = 2.0
)

// Feedback Delay
const (
	// MaxDelaySeconds sizes the delay line
	MaxDelaySeconds = 1.0
)

// Reverb (Schroeder network, lengths in samples at 44.1kHz)
const (
	ReverbComb1   = 1687
	ReverbComb2   = 1601
	ReverbComb3   = 2053
	ReverbComb4   = 2251
	ReverbAllpass = 389
	// ReverbAllpassGain is the allpass feedback coefficient
	ReverbAllpassGain = 0.5
	// ReverbOutputGain scales the summed comb output
	ReverbOutputGain = 0.25
	// RT60 decibel drop used to derive comb feedback from decay time
	ReverbDecayDB = -60.0
)

// Membrane Synth Voice
const (
	MembraneOctaves = 10.0
	MembraneAttack  = 1 * time.Millisecond
	MembraneDecay   = 400 * time.Millisecond
	MembraneSustain = 0.01
	MembraneRelease = 1400 * time.Millisecond
)

// Hit Notes
const (
	// NoteDuration is the note-on length before release
	NoteDuration = 125 * time.Millisecond

	// SampleRootNote is the pitch the hit sample was recorded at (C3)
	SampleRootNote = 48

	// MinNoteFrequency and MaxNoteFrequency bound pitch conversion so far transposes stay finite (Hz)
	MinNoteFrequency = 0.01
	MaxNoteFrequency = 100000.0
)

// Default Hit Sample (synthesised when no WAV is supplied)
const (
	HitSoundDuration = 180 * time.Millisecond
	HitSoundAttack   = 1 * time.Millisecond
	HitSoundRelease  = 170 * time.Millisecond
	HitBodyStartFreq = 260.0 // Hz
	HitBodyEndFreq   = 130.0 // Hz
	HitNoiseMix      = 0.35
)
