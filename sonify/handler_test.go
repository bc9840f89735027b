package sonify

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/clatter/audio"
	"github.com/lixenwraith/clatter/event"
	"github.com/lixenwraith/clatter/parameter"
	"github.com/lixenwraith/clatter/tune"
)

// recorder is a fake Output capturing calls in order
type recorder struct {
	state     audio.State
	resumeErr error
	drop      bool // Play reports the hit as not sounded
	calls     []string
	chains    []audio.ChainParams
	hits      []audio.Hit
}

func (r *recorder) State() audio.State { return r.state }

func (r *recorder) Resume() error {
	r.calls = append(r.calls, "resume")
	if r.resumeErr != nil {
		return r.resumeErr
	}
	r.state = audio.StateRunning
	return nil
}

func (r *recorder) SetChain(p audio.ChainParams) {
	r.calls = append(r.calls, "chain")
	r.chains = append(r.chains, p)
}

func (r *recorder) Play(h audio.Hit) bool {
	r.calls = append(r.calls, "play")
	r.hits = append(r.hits, h)
	return !r.drop
}

// object is a minimal Transposable
type object struct{ offset int }

func (o *object) Transpose() int          { return o.offset }
func (o *object) SetTranspose(offset int) { o.offset = offset }

// store is a fixed SnapshotSource
type store struct{ snap tune.Snapshot }

func (s *store) Snapshot() tune.Snapshot { return s.snap }

// TestHandleSubThreshold verifies quiet collisions produce no intents
func TestHandleSubThreshold(t *testing.T) {
	snap := tune.Defaults()
	tests := []struct {
		name  string
		speed float64
	}{
		{"zero", 0},
		{"intensity 0.03", 0.3},
		{"exactly threshold", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Handle(event.Collision{ImpactSpeed: tt.speed, Restitution: 0.7}, 4, snap); got != nil {
				t.Errorf("Expected no intents, got %v", got)
			}
		})
	}
}

// TestHandleIntentOrder verifies effects are configured before the voice fires
func TestHandleIntentOrder(t *testing.T) {
	intents := Handle(event.Collision{ImpactSpeed: 5, Restitution: 0.7}, 0, tune.Defaults())
	if len(intents) != 4 {
		t.Fatalf("Expected 4 intents, got %d", len(intents))
	}
	if _, ok := intents[0].(event.ConfigureEffects); !ok {
		t.Errorf("Expected ConfigureEffects first, got %T", intents[0])
	}
	if _, ok := intents[1].(event.EnsureRunning); !ok {
		t.Errorf("Expected EnsureRunning second, got %T", intents[1])
	}
	if _, ok := intents[2].(event.TriggerVoice); !ok {
		t.Errorf("Expected TriggerVoice third, got %T", intents[2])
	}
	if _, ok := intents[3].(event.UpdateTranspose); !ok {
		t.Errorf("Expected UpdateTranspose last, got %T", intents[3])
	}
}

// TestHandleHit verifies voice, pitch and velocity selection
func TestHandleHit(t *testing.T) {
	snap := tune.Defaults()
	intents := Handle(event.Collision{ImpactSpeed: 5, Restitution: 0.7}, 3, snap)
	hit := intents[2].(event.TriggerVoice).Hit

	if hit.Voice != audio.VoiceSampled {
		t.Errorf("Expected sampled voice, got %v", hit.Voice)
	}
	if hit.Pitch != 51 {
		t.Errorf("Expected C3+3 (51), got %d", hit.Pitch)
	}
	if hit.Velocity != 0.5 {
		t.Errorf("Expected velocity 0.5, got %v", hit.Velocity)
	}
	if hit.Duration != parameter.NoteDuration {
		t.Errorf("Expected note duration %v, got %v", parameter.NoteDuration, hit.Duration)
	}
	if hit.PitchDecay != 0 {
		t.Errorf("Expected no pitch decay for sampled voice, got %v", hit.PitchDecay)
	}
}

// TestHandleSynthPitchDecay verifies pitch decay and its floor
func TestHandleSynthPitchDecay(t *testing.T) {
	snap := tune.Defaults()
	snap.Global.Synthesize = true

	tests := []struct {
		name        string
		restitution float64
		speed       float64
		want        float64
	}{
		{"product", 0.7, 5, 3.5},
		{"floored", 0, 5, 0.001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intents := Handle(event.Collision{ImpactSpeed: tt.speed, Restitution: tt.restitution}, 0, snap)
			hit := intents[2].(event.TriggerVoice).Hit
			if hit.Voice != audio.VoiceSynth {
				t.Errorf("Expected synth voice, got %v", hit.Voice)
			}
			if math.Abs(hit.PitchDecay-tt.want) > 1e-12 {
				t.Errorf("Expected pitch decay %v, got %v", tt.want, hit.PitchDecay)
			}
		})
	}
}

// TestChainParamsFor verifies derivation and idempotence
func TestChainParamsFor(t *testing.T) {
	snap := tune.Defaults()
	snap.Visual.PixelSize = 10
	snap.Performance.DelayTime = 0.25
	snap.Performance.DelayFeedback = 0.4

	a := ChainParamsFor(snap, 0.5)
	b := ChainParamsFor(snap, 0.5)
	if a != b {
		t.Errorf("Expected identical params, got %+v and %+v", a, b)
	}
	if a.Bits != 12 {
		t.Errorf("Expected 12 bits, got %v", a.Bits)
	}
	if a.DelayTime != 0.25 || a.DelayFeedback != 0.4 {
		t.Errorf("Expected delay applied verbatim, got %+v", a)
	}
	if a.ReverbDecay != 1 {
		t.Errorf("Expected reverb decay 1, got %v", a.ReverbDecay)
	}

	snap.Performance.ReverbDecayBase = 0
	if got := ChainParamsFor(snap, 0.5).ReverbDecay; got != parameter.MinEffectTime {
		t.Errorf("Expected floored reverb decay, got %v", got)
	}
}

// TestNextTranspose verifies unbounded and clamped transposition
func TestNextTranspose(t *testing.T) {
	perf := tune.Defaults().Performance

	tests := []struct {
		name   string
		offset int
		inc    int
		limit  int
		want   int
	}{
		{"unbounded", 200, 1, 0, 201},
		{"negative unbounded", -50, -2, 0, -52},
		{"clamped high", 12, 1, 12, 12},
		{"clamped low", -12, -3, 12, -12},
		{"inside limit", 3, 1, 12, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := perf
			p.NoteIncrementPerBounce = tt.inc
			p.TransposeLimit = tt.limit
			if got := NextTranspose(tt.offset, p); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

// TestPipelineAccumulatesTranspose verifies n audible hits move the offset n*k
func TestPipelineAccumulatesTranspose(t *testing.T) {
	snap := tune.Defaults()
	snap.Performance.NoteIncrementPerBounce = 2
	out := &recorder{state: audio.StateRunning}
	p := NewPipeline(out, &store{snap: snap}, nil)
	obj := &object{}

	const n = 7
	for i := 0; i < n; i++ {
		if !p.Process(event.Collision{ObjectID: 1, ImpactSpeed: 4, Restitution: 0.7}, obj) {
			t.Fatalf("Collision %d expected audible", i)
		}
	}
	if obj.offset != n*2 {
		t.Errorf("Expected offset %d, got %d", n*2, obj.offset)
	}
	if len(out.hits) != n {
		t.Fatalf("Expected %d hits, got %d", n, len(out.hits))
	}
	for i, h := range out.hits {
		if h.Pitch != audio.Pitch(48+2*i) {
			t.Errorf("Hit %d: expected pitch %d, got %d", i, 48+2*i, h.Pitch)
		}
	}
}

// TestPipelineSubThreshold verifies a quiet collision leaves everything untouched
func TestPipelineSubThreshold(t *testing.T) {
	out := &recorder{state: audio.StateSuspended}
	hist := event.NewLog(4)
	p := NewPipeline(out, &store{snap: tune.Defaults()}, hist)
	obj := &object{offset: 5}

	if p.Process(event.Collision{ImpactSpeed: 0.3, Restitution: 0.7}, obj) {
		t.Error("Expected silent collision")
	}
	if obj.offset != 5 {
		t.Errorf("Expected offset unchanged, got %d", obj.offset)
	}
	if len(out.calls) != 0 {
		t.Errorf("Expected no output calls, got %v", out.calls)
	}
	if hist.Len() != 1 || hist.Recent()[0].Audible {
		t.Error("Expected one silent record")
	}
	if got := hist.Recent()[0].Intensity; math.Abs(got-0.03) > 1e-12 {
		t.Errorf("Expected recorded intensity 0.03, got %v", got)
	}
}

// TestPipelineResumesSuspended verifies resume happens before play, once
func TestPipelineResumesSuspended(t *testing.T) {
	out := &recorder{state: audio.StateSuspended}
	p := NewPipeline(out, &store{snap: tune.Defaults()}, nil)
	obj := &object{}

	p.Process(event.Collision{ImpactSpeed: 8}, obj)
	p.Process(event.Collision{ImpactSpeed: 8}, obj)

	want := []string{"chain", "resume", "play", "chain", "play"}
	if len(out.calls) != len(want) {
		t.Fatalf("Expected calls %v, got %v", want, out.calls)
	}
	for i := range want {
		if out.calls[i] != want[i] {
			t.Errorf("Call %d: expected %s, got %s", i, want[i], out.calls[i])
		}
	}
}

// TestPipelineResumeFailure verifies a failed resume still triggers the voice
func TestPipelineResumeFailure(t *testing.T) {
	out := &recorder{state: audio.StateSuspended, resumeErr: errors.New("device busy")}
	p := NewPipeline(out, &store{snap: tune.Defaults()}, nil)
	obj := &object{}

	if !p.Process(event.Collision{ImpactSpeed: 8}, obj) {
		t.Error("Expected note triggered despite resume failure")
	}
	if len(out.hits) != 1 {
		t.Errorf("Expected 1 hit, got %d", len(out.hits))
	}
	if obj.offset != 1 {
		t.Errorf("Expected offset advanced, got %d", obj.offset)
	}
}

// TestPipelineDroppedPlay verifies a hit the output refuses is recorded silent
func TestPipelineDroppedPlay(t *testing.T) {
	out := &recorder{state: audio.StateRunning, drop: true}
	hist := event.NewLog(4)
	p := NewPipeline(out, &store{snap: tune.Defaults()}, hist)
	obj := &object{}

	if p.Process(event.Collision{ImpactSpeed: 8, Restitution: 0.7}, obj) {
		t.Error("Expected dropped hit to report silent")
	}
	if len(out.hits) != 1 {
		t.Errorf("Expected play attempted once, got %d", len(out.hits))
	}
	if obj.offset != 1 {
		t.Errorf("Expected offset advanced, got %d", obj.offset)
	}
	r := hist.Recent()[0]
	if r.Audible {
		t.Error("Expected record not audible")
	}
	if r.Pitch != tune.Defaults().Performance.BaseNote || r.Offset != 1 {
		t.Errorf("Unexpected record: %+v", r)
	}
}

// TestPipelineReadsFreshSnapshot verifies tunable changes apply to the next event
func TestPipelineReadsFreshSnapshot(t *testing.T) {
	src := &store{snap: tune.Defaults()}
	out := &recorder{state: audio.StateRunning}
	hist := event.NewLog(4)
	p := NewPipeline(out, src, hist)
	obj := &object{}

	p.Process(event.Collision{ImpactSpeed: 5, Restitution: 0.7}, obj)
	src.snap.Global.Synthesize = true
	src.snap.Visual.PixelSize = 28
	p.Process(event.Collision{ImpactSpeed: 5, Restitution: 0.7}, obj)

	if out.hits[0].Voice != audio.VoiceSampled || out.hits[1].Voice != audio.VoiceSynth {
		t.Errorf("Expected voice switch, got %v then %v", out.hits[0].Voice, out.hits[1].Voice)
	}
	if out.chains[1].Bits != 3 {
		t.Errorf("Expected 3 bits after pixel change, got %v", out.chains[1].Bits)
	}
	if r := hist.Recent()[0]; !r.Audible || r.Voice != audio.VoiceSynth || r.Offset != 2 {
		t.Errorf("Unexpected record: %+v", r)
	}
}
