package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the overlay text every N frames to reduce allocations.
	updateInterval = 30
)

var textColor = rl.DarkGreen

// Stats is the simulation state shown by the stats overlay.
type Stats struct {
	Mobile    int
	Fixed     int
	Energy    float64
	Paused    bool
	TimeScale float64
}

// Debug draws the FPS counter and simulation stats in the top-right corner.
// All overlays are off by default.
type Debug struct {
	ShowFPS    bool
	ShowStats  bool
	frameCount uint32
	lines      []string
}

// New returns a Debug overlay with everything hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
	d.lines = nil
}

// SetShowStats sets whether marble counts and kinetic energy are drawn.
func (d *Debug) SetShowStats(show bool) {
	d.ShowStats = show
	d.lines = nil
}

// Lines formats the overlay text for the enabled overlays.
func (d *Debug) Lines(fps int32, s Stats) []string {
	var lines []string
	if d.ShowFPS {
		lines = append(lines, fmt.Sprintf("FPS: %d", fps))
	}
	if d.ShowStats {
		lines = append(lines,
			fmt.Sprintf("Marbles: %d + %d fixed", s.Mobile, s.Fixed),
			fmt.Sprintf("Energy: %.5f", s.Energy),
		)
		if s.Paused {
			lines = append(lines, "Paused")
		} else if s.TimeScale != 1 {
			lines = append(lines, fmt.Sprintf("Speed: x%.2g", s.TimeScale))
		}
	}
	return lines
}

// Draw renders the enabled overlays. The text is recomputed every updateInterval frames.
func (d *Debug) Draw(s Stats) {
	if !d.ShowFPS && !d.ShowStats {
		return
	}
	if d.frameCount%updateInterval == 0 || d.lines == nil {
		d.lines = d.Lines(rl.GetFPS(), s)
	}
	d.frameCount++

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range d.lines {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, textColor)
		y += lineHeight
	}
}
