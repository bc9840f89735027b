package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clatter/audio"
	"github.com/lixenwraith/clatter/event"
	"github.com/lixenwraith/clatter/parameter"
	"github.com/lixenwraith/clatter/render"
	"github.com/lixenwraith/clatter/sandbox"
	"github.com/lixenwraith/clatter/sonify"
	"github.com/lixenwraith/clatter/tune"
)

// app owns every piece of sandbox state; only the frame loop goroutine touches it
type app struct {
	screen   tcell.Screen
	store    *tune.Store
	engine   *audio.AudioEngine
	hist     *event.Log
	sandbox  *sandbox.Sandbox
	renderer *render.Renderer

	controls []tune.Control
	selected int
	paused   bool
}

func newApp(screen tcell.Screen, store *tune.Store, engine *audio.AudioEngine, seed int64) *app {
	hist := event.NewLog(parameter.CollisionLogSize)
	pipeline := sonify.NewPipeline(engine, store, hist)
	w, h := screen.Size()
	return &app{
		screen:   screen,
		store:    store,
		engine:   engine,
		hist:     hist,
		sandbox:  sandbox.New(store, pipeline, seed),
		renderer: render.NewRenderer(w, h),
		controls: tune.Controls(),
	}
}

// run is the frame loop; returns on quit or when the screen closes
func (a *app) run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, parameter.InputQueueSize)
	go a.pollEvents(events)

	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			a.tick(now)
		}
	}
}

// pollEvents forwards terminal events until the screen is finalised
func (a *app) pollEvents(out chan<- tcell.Event) {
	defer func() {
		if r := recover(); r != nil {
			a.screen.Fini()
			fmt.Fprintf(os.Stderr, "\nCLATTER INPUT CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer close(out)

	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		out <- ev
	}
}

// handleEvent applies one input event, returns false to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := a.screen.Size()
		a.renderer.Resize(w, h)
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab, tcell.KeyDown:
		a.selected = (a.selected + 1) % len(a.controls)
	case tcell.KeyBacktab, tcell.KeyUp:
		a.selected = (a.selected - 1 + len(a.controls)) % len(a.controls)
	case tcell.KeyRight:
		a.adjust(1)
	case tcell.KeyLeft:
		a.adjust(-1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 's':
			obj := a.sandbox.SpawnRandomSphere()
			log.Printf("[sandbox] sphere %d at %.2f", obj.ID, obj.Body.Position)
		case 'b':
			obj := a.sandbox.SpawnRandomBox()
			log.Printf("[sandbox] box %d at %.2f", obj.ID, obj.Body.Position)
		case 'r':
			a.sandbox.Reset()
			a.hist.Clear()
		case 'v':
			if err := a.store.Toggle("synthesize"); err != nil {
				log.Printf("[tune] %v", err)
			}
		case 'm':
			a.engine.ToggleMute()
		case ' ':
			a.paused = !a.paused
			// Time spent paused must not reach the accumulator
			a.sandbox.ResetClock()
		}
	}
	return true
}

func (a *app) adjust(steps int) {
	c := a.controls[a.selected]
	if err := a.store.Adjust(c.Name, steps); err != nil {
		log.Printf("[tune] %v", err)
	}
}

// tick advances the simulation and redraws
func (a *app) tick(now time.Time) {
	if !a.paused {
		a.sandbox.Frame(now)
	}
	a.draw()
}

func (a *app) draw() {
	total, audible := a.hist.Totals()
	state := a.engine.State().String()
	if a.engine.IsSilent() {
		state = "silent"
	}
	a.renderer.Draw(a.sandbox.Scene().Meshes(), render.HUD{
		Snapshot: a.store.Snapshot(),
		Selected: a.selected,
		Objects:  len(a.sandbox.Objects()),
		Audio:    state,
		Muted:    a.engine.IsMuted(),
		Rebuilds: a.sandbox.Rebuilds(),
		Contacts: a.sandbox.World().ContactCount(),
		Total:    total,
		Audible:  audible,
		Recent:   a.hist.Recent(),
		Paused:   a.paused,
	})
	a.renderer.Flush(a.screen)
}
