// Package sonify maps collision events to sound
package sonify

import (
	"github.com/lixenwraith/clatter/audio"
	"github.com/lixenwraith/clatter/event"
	"github.com/lixenwraith/clatter/impact"
	"github.com/lixenwraith/clatter/parameter"
	"github.com/lixenwraith/clatter/tune"
	"github.com/lixenwraith/clatter/vmath"
)

// ChainParamsFor derives the effect chain configuration for one collision
func ChainParamsFor(snap tune.Snapshot, intensity float64) audio.ChainParams {
	perf := snap.Performance
	return audio.ChainParams{
		Bits:          snap.BitDepth(),
		DelayTime:     perf.DelayTime,
		DelayFeedback: perf.DelayFeedback,
		ReverbDecay:   vmath.MaxF(intensity*perf.ReverbDecayBase, parameter.MinEffectTime),
	}
}

// NextTranspose advances offset by one bounce
// Unbounded unless TransposeLimit > 0, then clamped to +-limit
func NextTranspose(offset int, perf tune.Performance) int {
	next := offset + perf.NoteIncrementPerBounce
	if perf.TransposeLimit > 0 {
		next = vmath.ClampInt(next, -perf.TransposeLimit, perf.TransposeLimit)
	}
	return next
}

// Handle turns one collision into the ordered side effects it requires
// Sub-threshold collisions return nil
func Handle(ev event.Collision, offset int, snap tune.Snapshot) []event.Intent {
	intensity := impact.Normalize(ev.ImpactSpeed, snap.Global.ImpactVelocityCeiling)
	if !impact.Audible(intensity, parameter.SilenceThreshold) {
		return nil
	}

	hit := audio.Hit{
		Voice:    audio.VoiceSampled,
		Pitch:    snap.Performance.BaseNote.Transpose(offset),
		Velocity: intensity,
		Duration: parameter.NoteDuration,
	}
	if snap.Global.Synthesize {
		hit.Voice = audio.VoiceSynth
		hit.PitchDecay = vmath.MaxF(ev.Restitution*ev.ImpactSpeed, parameter.MinEffectTime)
	}

	return []event.Intent{
		event.ConfigureEffects{Params: ChainParamsFor(snap, intensity)},
		event.EnsureRunning{},
		event.TriggerVoice{Hit: hit},
		event.UpdateTranspose{Offset: NextTranspose(offset, snap.Performance)},
	}
}
