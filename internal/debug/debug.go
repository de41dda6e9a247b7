package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// Counter reports live bodies for the overlay.
type Counter interface {
	BodyCount() int
}

// Debug draws runtime overlays at the top-right. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowBodies   bool

	bodies     Counter
	frameCount uint32
	fpsText    string
	memText    string
	bodyText   string
	memStats   runtime.MemStats
}

// New returns an overlay that reads the body count from bodies (may be nil).
func New(bodies Counter) *Debug {
	return &Debug{bodies: bodies}
}

// Draw renders enabled overlays. Call last in the frame.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 1

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	line := func(text string) {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if d.ShowFPS {
		if update || d.fpsText == "" {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		line(d.fpsText)
	}
	if d.ShowMemAlloc {
		if update || d.memText == "" {
			runtime.ReadMemStats(&d.memStats)
			d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		line(d.memText)
	}
	if d.ShowBodies && d.bodies != nil {
		if update || d.bodyText == "" {
			d.bodyText = fmt.Sprintf("Bodies: %d", d.bodies.BodyCount())
		}
		line(d.bodyText)
	}
}
