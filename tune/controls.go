package tune

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/lixenwraith/clatter/audio"
	"github.com/lixenwraith/clatter/vmath"
)

// Sentinel errors
var (
	ErrUnknownControl = errors.New("unknown control")
	ErrNotToggle      = errors.New("control is not a toggle")
)

func unknown(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownControl, name)
}

func notToggle(name string) error {
	return fmt.Errorf("%w: %q", ErrNotToggle, name)
}

// Kind determines how a control is snapped and displayed
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindBool
	KindNote
)

// Control is one adjustable tunable with its range
type Control struct {
	Name  string
	Label string
	Group string
	Kind  Kind
	Min   float64
	Max   float64
	Step  float64

	get func(*Snapshot) float64
	set func(*Snapshot, float64)
}

// normalize clamps v to range; integer kinds snap to the step grid from Min
func (c Control) normalize(v float64) float64 {
	v = vmath.Clamp(v, c.Min, c.Max)
	switch c.Kind {
	case KindInt, KindNote:
		v = c.Min + math.Round((v-c.Min)/c.Step)*c.Step
		v = vmath.Clamp(v, c.Min, c.Max)
	case KindBool:
		if v >= 0.5 {
			v = 1
		} else {
			v = 0
		}
	}
	return v
}

// Format renders the control value for display
func (c Control) Format(snap Snapshot) string {
	v := c.get(&snap)
	switch c.Kind {
	case KindBool:
		if v != 0 {
			return "on"
		}
		return "off"
	case KindNote:
		return audio.Pitch(v).String()
	case KindInt:
		if c.Name == "transposeLimit" && v == 0 {
			return "none"
		}
		return strconv.Itoa(int(v))
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// controls is the ordered control surface
var controls = []Control{
	{
		Name: "gravity", Label: "Gravity Y", Group: "global", Kind: KindFloat,
		Min: -30, Max: 0, Step: 0.1,
		get: func(s *Snapshot) float64 { return s.Global.GravityY },
		set: func(s *Snapshot, v float64) { s.Global.GravityY = v },
	},
	{
		Name: "friction", Label: "Friction", Group: "global", Kind: KindFloat,
		Min: 0, Max: 1, Step: 0.05,
		get: func(s *Snapshot) float64 { return s.Global.FloorFriction },
		set: func(s *Snapshot, v float64) { s.Global.FloorFriction = v },
	},
	{
		Name: "restitution", Label: "Restitution", Group: "global", Kind: KindFloat,
		Min: 0, Max: 1, Step: 0.05,
		get: func(s *Snapshot) float64 { return s.Global.FloorRestitution },
		set: func(s *Snapshot, v float64) { s.Global.FloorRestitution = v },
	},
	{
		Name: "ceiling", Label: "Impact Ceiling", Group: "global", Kind: KindFloat,
		Min: 0.1, Max: 50, Step: 0.5,
		get: func(s *Snapshot) float64 { return s.Global.ImpactVelocityCeiling },
		set: func(s *Snapshot, v float64) { s.Global.ImpactVelocityCeiling = v },
	},
	{
		Name: "synthesize", Label: "Synthesize", Group: "global", Kind: KindBool,
		Min: 0, Max: 1, Step: 1,
		get: func(s *Snapshot) float64 { return boolValue(s.Global.Synthesize) },
		set: func(s *Snapshot, v float64) { s.Global.Synthesize = v != 0 },
	},
	{
		Name: "baseNote", Label: "Base Note", Group: "performance", Kind: KindNote,
		Min: 0, Max: 127, Step: 1,
		get: func(s *Snapshot) float64 { return float64(s.Performance.BaseNote) },
		set: func(s *Snapshot, v float64) { s.Performance.BaseNote = audio.Pitch(v) },
	},
	{
		Name: "noteIncrement", Label: "Note Increment", Group: "performance", Kind: KindInt,
		Min: -12, Max: 12, Step: 1,
		get: func(s *Snapshot) float64 { return float64(s.Performance.NoteIncrementPerBounce) },
		set: func(s *Snapshot, v float64) { s.Performance.NoteIncrementPerBounce = int(v) },
	},
	{
		Name: "delayTime", Label: "Delay Time", Group: "performance", Kind: KindFloat,
		Min: 0, Max: 1, Step: 0.01,
		get: func(s *Snapshot) float64 { return s.Performance.DelayTime },
		set: func(s *Snapshot, v float64) { s.Performance.DelayTime = v },
	},
	{
		Name: "delayFeedback", Label: "Delay Feedback", Group: "performance", Kind: KindFloat,
		Min: 0, Max: 0.99, Step: 0.01,
		get: func(s *Snapshot) float64 { return s.Performance.DelayFeedback },
		set: func(s *Snapshot, v float64) { s.Performance.DelayFeedback = v },
	},
	{
		Name: "reverbDecayBase", Label: "Reverb Decay", Group: "performance", Kind: KindFloat,
		Min: 0.1, Max: 10, Step: 0.1,
		get: func(s *Snapshot) float64 { return s.Performance.ReverbDecayBase },
		set: func(s *Snapshot, v float64) { s.Performance.ReverbDecayBase = v },
	},
	{
		Name: "transposeLimit", Label: "Transpose Limit", Group: "performance", Kind: KindInt,
		Min: 0, Max: 96, Step: 1,
		get: func(s *Snapshot) float64 { return float64(s.Performance.TransposeLimit) },
		set: func(s *Snapshot, v float64) { s.Performance.TransposeLimit = int(v) },
	},
	{
		Name: "pixelSize", Label: "Pixel Size", Group: "visual", Kind: KindInt,
		Min: 2, Max: 28, Step: 2,
		get: func(s *Snapshot) float64 { return float64(s.Visual.PixelSize) },
		set: func(s *Snapshot, v float64) { s.Visual.PixelSize = int(v) },
	},
}

var controlIndex = func() map[string]int {
	m := make(map[string]int, len(controls))
	for i, c := range controls {
		m[c.Name] = i
	}
	return m
}()

// Controls returns the control surface in display order
func Controls() []Control {
	out := make([]Control, len(controls))
	copy(out, controls)
	return out
}

// Lookup finds a control by name
func Lookup(name string) (Control, bool) {
	i, ok := controlIndex[name]
	if !ok {
		return Control{}, false
	}
	return controls[i], true
}
