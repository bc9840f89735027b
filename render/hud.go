package render

import (
	"fmt"
	"math"

	"github.com/lixenwraith/clatter/event"
	"github.com/lixenwraith/clatter/tune"
)

// HUD is the status shown under the scene
type HUD struct {
	Snapshot tune.Snapshot
	Selected int // Index into tune.Controls
	Objects  int
	Audio    string // Output state label
	Muted    bool
	Rebuilds int
	Contacts int // Contact points in the last step
	Total    uint64
	Audible  uint64
	Recent   []event.Record // Newest first
	Paused   bool
}

const hudHelp = "tab/S-tab:select  left/right:adjust  s:sphere  b:box  r:reset  v:voice  m:mute  space:pause  q:quit"

// drawHUD writes the four status rows starting at top
func (r *Renderer) drawHUD(hud HUD, top int) {
	controls := tune.Controls()
	w, _ := r.buf.Size()

	// Row 0: control strip scrolled to keep the selection visible
	x := 1
	start := 0
	if hud.Selected >= 0 && hud.Selected < len(controls) {
		start = max(hud.Selected-2, 0)
	}
	for i := start; i < len(controls) && x < w; i++ {
		c := controls[i]
		fg := RgbHUDText
		label := fmt.Sprintf(" %s=%s ", c.Label, c.Format(hud.Snapshot))
		if i == hud.Selected {
			fg = RgbHUDSelected
			label = "[" + label[1:len(label)-1] + "]"
		}
		x = r.buf.WriteString(x, top, label, fg) + 1
	}

	// Row 1: counters
	voice := "sample"
	if hud.Snapshot.Global.Synthesize {
		voice = "synth"
	}
	status := fmt.Sprintf("objects:%d  contacts:%d  voice:%s  audio:%s  hits:%d/%d  rebuilds:%d",
		hud.Objects, hud.Contacts, voice, hud.Audio, hud.Audible, hud.Total, hud.Rebuilds)
	x = r.buf.WriteString(1, top+1, status, RgbHUDText)
	if hud.Muted {
		x = r.buf.WriteString(x+2, top+1, "[MUTED]", RgbHUDMuted)
	}
	if hud.Paused {
		r.buf.WriteString(x+2, top+1, "[PAUSED]", RgbHUDSelected)
	}

	// Row 2: recent collisions
	x = r.buf.WriteString(1, top+2, "recent:", RgbHUDDim)
	for _, rec := range hud.Recent {
		if x >= w {
			break
		}
		fg := RgbHUDDim
		s := fmt.Sprintf(" #%d %.1fm/s", rec.Collision.ObjectID, rec.Collision.ImpactSpeed)
		if rec.Audible {
			fg = RgbHUDAudible
			s = fmt.Sprintf(" #%d %s %d%%", rec.Collision.ObjectID, rec.Pitch, int(math.Round(rec.Intensity*100)))
		}
		x = r.buf.WriteString(x, top+2, s, fg)
	}

	// Row 3: key help
	r.buf.WriteString(1, top+3, hudHelp, RgbHUDDim)
}
