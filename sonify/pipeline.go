package sonify

import (
	"log"

	"github.com/lixenwraith/clatter/audio"
	"github.com/lixenwraith/clatter/event"
	"github.com/lixenwraith/clatter/impact"
	"github.com/lixenwraith/clatter/tune"
)

// Output is the audio surface the pipeline drives
// Implemented by audio.AudioEngine and audio.OfflineRenderer
type Output interface {
	State() audio.State
	Resume() error
	SetChain(p audio.ChainParams)
	Play(h audio.Hit) bool
}

// Transposable holds per-object musical state
type Transposable interface {
	Transpose() int
	SetTranspose(offset int)
}

// SnapshotSource supplies fresh tunables
type SnapshotSource interface {
	Snapshot() tune.Snapshot
}

// Pipeline applies handler intents to an output and an object
type Pipeline struct {
	out  Output
	src  SnapshotSource
	hist *event.Log // Optional
}

// NewPipeline creates a pipeline; hist may be nil
func NewPipeline(out Output, src SnapshotSource, hist *event.Log) *Pipeline {
	return &Pipeline{out: out, src: src, hist: hist}
}

// Process handles one collision against obj, returns true if the output accepted a note
// Tunables are read at event time, never cached
func (p *Pipeline) Process(ev event.Collision, obj Transposable) bool {
	snap := p.src.Snapshot()
	intents := Handle(ev, obj.Transpose(), snap)

	rec := event.Record{
		Collision: ev,
		Intensity: impact.Normalize(ev.ImpactSpeed, snap.Global.ImpactVelocityCeiling),
		Offset:    obj.Transpose(),
	}

	for _, in := range intents {
		switch v := in.(type) {
		case event.ConfigureEffects:
			p.out.SetChain(v.Params)
		case event.EnsureRunning:
			if p.out.State() != audio.StateRunning {
				if err := p.out.Resume(); err != nil {
					log.Printf("[audio] resume failed: %v", err)
				}
			}
		case event.TriggerVoice:
			rec.Audible = p.out.Play(v.Hit)
			rec.Voice = v.Hit.Voice
			rec.Pitch = v.Hit.Pitch
		case event.UpdateTranspose:
			obj.SetTranspose(v.Offset)
			rec.Offset = v.Offset
		}
	}

	if p.hist != nil {
		p.hist.Push(rec)
	}
	return rec.Audible
}
