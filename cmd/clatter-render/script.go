package main

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/lixenwraith/clatter/audio"
	"github.com/lixenwraith/clatter/event"
	"github.com/lixenwraith/clatter/parameter"
	"github.com/lixenwraith/clatter/sandbox"
	"github.com/lixenwraith/clatter/sonify"
	"github.com/lixenwraith/clatter/tune"
)

// spawnInterval separates scripted drops so each object lands on its own
const spawnInterval = 0.25

// script describes one headless drop
type script struct {
	Seconds float64
	Spheres int
	Boxes   int
	Seed    int64
}

// result summarises a rendered script
type result struct {
	Frames  int
	Steps   int
	SimTime float64 // Simulated seconds
	Hits    uint64
	Audible uint64
}

// run drops the scripted objects one by one, alternating spheres and boxes,
// and advances audio in lockstep with each simulation frame
func (s script) run(store *tune.Store, out *audio.OfflineRenderer) (result, error) {
	if s.Seconds <= 0 {
		return result{}, fmt.Errorf("duration must be positive, got %.2fs", s.Seconds)
	}
	if s.Spheres < 0 || s.Boxes < 0 {
		return result{}, fmt.Errorf("object counts must not be negative")
	}

	hist := event.NewLog(parameter.CollisionLogSize)
	sb := sandbox.New(store, sonify.NewPipeline(out, store, hist), s.Seed)

	frameDt := parameter.FixedTimeStep
	frameDur := time.Duration(frameDt * float64(time.Second))
	frames := int(math.Round(s.Seconds / frameDt))
	spheres, boxes := s.Spheres, s.Boxes
	nextSpawn := 0.0
	spawned := 0

	var res result
	for i := 0; i < frames; i++ {
		now := float64(i) * frameDt
		if now >= nextSpawn && spheres+boxes > 0 {
			// Alternate while both kinds remain
			if spheres > 0 && (boxes == 0 || spawned%2 == 0) {
				obj := sb.SpawnRandomSphere()
				log.Printf("[render] t=%.2fs sphere %d", now, obj.ID)
				spheres--
			} else {
				obj := sb.SpawnRandomBox()
				log.Printf("[render] t=%.2fs box %d", now, obj.ID)
				boxes--
			}
			spawned++
			nextSpawn = now + spawnInterval
		}
		res.Steps += sb.Step(frameDt)
		out.Advance(frameDur)
		res.Frames++
	}

	res.SimTime = sb.World().Time()
	res.Hits, res.Audible = hist.Totals()
	return res, nil
}
