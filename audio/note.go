package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lixenwraith/clatter/parameter"
)

// Pitch is a MIDI note number in scientific pitch notation (C4 = 60, A4 = 69)
// Values outside 0-127 are valid; unbounded transposition can reach them
type Pitch int

// NoteFrequencies contains precomputed frequencies for MIDI notes 0-127
// A4 (note 69) = 440Hz, equal temperament
var NoteFrequencies [128]float64

func init() {
	for i := range NoteFrequencies {
		NoteFrequencies[i] = pitchFreq(i)
	}
}

func pitchFreq(midi int) float64 {
	return 440.0 * math.Pow(2, (float64(midi)-69.0)/12.0)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteSteps = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParsePitch resolves a note name such as "C3", "F#4", "Bb2" or "A-1"
func ParsePitch(name string) (Pitch, error) {
	s := strings.TrimSpace(name)
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPitch, name)
	}

	step, ok := noteSteps[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPitch, name)
	}
	rest := s[1:]

	// Accidentals
	for len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		if rest[0] == '#' {
			step++
		} else {
			step--
		}
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPitch, name)
	}

	return Pitch((octave+1)*12 + step), nil
}

// MustPitch is ParsePitch for compile-time constants; panics on invalid names
func MustPitch(name string) Pitch {
	p, err := ParsePitch(name)
	if err != nil {
		panic(err)
	}
	return p
}

// Transpose shifts the pitch by semitones
func (p Pitch) Transpose(semitones int) Pitch {
	return p + Pitch(semitones)
}

// Frequency returns the pitch in Hz, clamped to [MinNoteFrequency, MaxNoteFrequency]
func (p Pitch) Frequency() float64 {
	if p >= 0 && int(p) < len(NoteFrequencies) {
		return NoteFrequencies[p]
	}
	f := pitchFreq(int(p))
	switch {
	case math.IsNaN(f), f <= parameter.MinNoteFrequency:
		return parameter.MinNoteFrequency
	case f >= parameter.MaxNoteFrequency:
		return parameter.MaxNoteFrequency
	}
	return f
}

// String formats the pitch as note name and octave
func (p Pitch) String() string {
	n := int(p)
	octave := floorDiv(n, 12) - 1
	step := n - floorDiv(n, 12)*12
	return noteNames[step] + strconv.Itoa(octave)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
