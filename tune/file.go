package tune

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/clatter/audio"
)

// File is the on-disk tunables layout; absent keys keep their current value
//
//	[global]
//	gravity_y = -9.82
//	floor_friction = 0.1
//	floor_restitution = 0.7
//	impact_velocity_ceiling = 10.0
//	synthesize = false
//
//	[performance]
//	base_note = "C3"
//	note_increment = 1
//	delay_time = 0.01
//	delay_feedback = 0.1
//	reverb_decay_base = 2.0
//	transpose_limit = 0
//
//	[visual]
//	pixel_size = 2
type File struct {
	Global      GlobalFile      `toml:"global"`
	Performance PerformanceFile `toml:"performance"`
	Visual      VisualFile      `toml:"visual"`
}

type GlobalFile struct {
	GravityY              *float64 `toml:"gravity_y"`
	FloorFriction         *float64 `toml:"floor_friction"`
	FloorRestitution      *float64 `toml:"floor_restitution"`
	ImpactVelocityCeiling *float64 `toml:"impact_velocity_ceiling"`
	Synthesize            *bool    `toml:"synthesize"`
}

type PerformanceFile struct {
	BaseNote        *string  `toml:"base_note"`
	NoteIncrement   *int     `toml:"note_increment"`
	DelayTime       *float64 `toml:"delay_time"`
	DelayFeedback   *float64 `toml:"delay_feedback"`
	ReverbDecayBase *float64 `toml:"reverb_decay_base"`
	TransposeLimit  *int     `toml:"transpose_limit"`
}

type VisualFile struct {
	PixelSize *int `toml:"pixel_size"`
}

// LoadFile decodes path and applies it to store through the control ranges
func LoadFile(path string, store *Store) error {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return fmt.Errorf("decode tunables %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("tunables %s: %w: %s", path, ErrUnknownControl, strings.Join(keys, ", "))
	}
	return f.Apply(store)
}

// Apply writes every present key into store
// Validation happens before any write, so a bad file leaves store untouched
func (f *File) Apply(store *Store) error {
	var base *audio.Pitch
	if f.Performance.BaseNote != nil {
		p, err := audio.ParsePitch(*f.Performance.BaseNote)
		if err != nil {
			return fmt.Errorf("tunables base_note: %w", err)
		}
		base = &p
	}

	setF := func(name string, v *float64) {
		if v != nil {
			store.Set(name, *v)
		}
	}
	setI := func(name string, v *int) {
		if v != nil {
			store.Set(name, float64(*v))
		}
	}

	setF("gravity", f.Global.GravityY)
	setF("friction", f.Global.FloorFriction)
	setF("restitution", f.Global.FloorRestitution)
	setF("ceiling", f.Global.ImpactVelocityCeiling)
	if f.Global.Synthesize != nil {
		store.Set("synthesize", boolValue(*f.Global.Synthesize))
	}

	if base != nil {
		store.Set("baseNote", float64(*base))
	}
	setI("noteIncrement", f.Performance.NoteIncrement)
	setF("delayTime", f.Performance.DelayTime)
	setF("delayFeedback", f.Performance.DelayFeedback)
	setF("reverbDecayBase", f.Performance.ReverbDecayBase)
	setI("transposeLimit", f.Performance.TransposeLimit)

	setI("pixelSize", f.Visual.PixelSize)
	return nil
}
