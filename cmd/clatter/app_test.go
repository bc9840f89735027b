package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clatter/audio"
	"github.com/lixenwraith/clatter/tune"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(100, 30)
	t.Cleanup(screen.Fini)

	cfg := audio.DefaultAudioConfig()
	cfg.Enabled = false // Silent engine, no device
	engine := audio.NewAudioEngine(cfg, nil)
	if err := engine.Start(); err != nil {
		t.Fatalf("engine start: %v", err)
	}
	t.Cleanup(engine.Stop)

	return newApp(screen, tune.NewStore(tune.Defaults()), engine, 7)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestSpawnAndReset(t *testing.T) {
	a := newTestApp(t)

	a.handleEvent(runeKey('s'))
	a.handleEvent(runeKey('b'))
	a.handleEvent(runeKey('s'))
	if n := len(a.sandbox.Objects()); n != 3 {
		t.Fatalf("Expected 3 objects, got %d", n)
	}

	a.handleEvent(runeKey('r'))
	if n := len(a.sandbox.Objects()); n != 0 {
		t.Errorf("Expected 0 objects after reset, got %d", n)
	}
	if n := a.sandbox.Scene().Len(); n != 0 {
		t.Errorf("Expected empty scene after reset, got %d", n)
	}
}

func TestControlSelectionAndAdjust(t *testing.T) {
	a := newTestApp(t)

	a.handleEvent(key(tcell.KeyTab))
	if got := a.controls[a.selected].Name; got != "friction" {
		t.Fatalf("Expected friction selected, got %s", got)
	}

	before := a.store.Snapshot().Global.FloorFriction
	a.handleEvent(key(tcell.KeyRight))
	after := a.store.Snapshot().Global.FloorFriction
	if diff := after - before - a.controls[a.selected].Step; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected friction +%.2f, got %.4f -> %.4f", a.controls[a.selected].Step, before, after)
	}

	a.handleEvent(key(tcell.KeyBacktab))
	a.handleEvent(key(tcell.KeyBacktab))
	if want := len(a.controls) - 1; a.selected != want {
		t.Errorf("Expected selection to wrap to %d, got %d", want, a.selected)
	}
}

func TestToggles(t *testing.T) {
	a := newTestApp(t)

	a.handleEvent(runeKey('v'))
	if !a.store.Snapshot().Global.Synthesize {
		t.Error("Expected synth voice after toggle")
	}

	a.handleEvent(runeKey('m'))
	if a.engine.IsMuted() {
		t.Error("Expected mute toggle to enable a disabled engine")
	}

	a.handleEvent(runeKey(' '))
	if !a.paused {
		t.Error("Expected pause")
	}
}

func TestPauseDoesNotCatchUp(t *testing.T) {
	a := newTestApp(t)
	a.handleEvent(runeKey('s'))
	obj := a.sandbox.Objects()[0]

	start := time.Unix(0, 0)
	a.tick(start)
	a.tick(start.Add(16 * time.Millisecond))

	a.handleEvent(runeKey(' '))
	a.tick(start.Add(time.Second))
	a.handleEvent(runeKey(' '))

	before := obj.Body.Position
	a.tick(start.Add(5 * time.Second))
	if after := obj.Body.Position; after != before {
		t.Errorf("Expected no movement on the first frame after resume, got %v -> %v", before, after)
	}

	a.tick(start.Add(5*time.Second + 20*time.Millisecond))
	if obj.Body.Position == before {
		t.Error("Expected simulation to continue after resume")
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", runeKey('q')},
		{"escape", key(tcell.KeyEscape)},
		{"ctrl-c", key(tcell.KeyCtrlC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t)
			if a.handleEvent(tt.ev) {
				t.Error("Expected quit")
			}
		})
	}
}

func TestTickDraws(t *testing.T) {
	a := newTestApp(t)
	a.handleEvent(runeKey('s'))

	start := time.Unix(0, 0)
	for i := 0; i < 5; i++ {
		a.tick(start.Add(time.Duration(i) * 16 * time.Millisecond))
	}

	w, h := a.screen.Size()
	mainc, _, _, _ := a.screen.GetContent(1, h-1)
	if mainc != 't' {
		t.Errorf("Expected help row on a %dx%d screen, got %q", w, h, mainc)
	}
}
