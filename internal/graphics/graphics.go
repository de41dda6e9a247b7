// Package graphics owns the raylib window and adapts raylib to the engine's render and input contracts.
package graphics

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physbody-engine/internal/engine"
	"physbody-engine/internal/engineconfig"
)

// Hooks are called once per frame, in field order. Frame runs between BeginDrawing and
// EndDrawing so 2D draws made by modules land on screen immediately.
type Hooks struct {
	Before  func()                 // input that must not be seen by modules, e.g. the console
	Frame   func(dt float64) error // engine.Frame
	View    *View3D                // optional 3D pass after Frame
	Overlay func()                 // console and debug text, drawn last
}

// Open creates the window described by win. Width or height 0 uses the monitor size.
// It must be called before any texture is loaded.
func Open(win engineconfig.Window) {
	if win.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
	}
	w, h := int32(win.Width), int32(win.Height)
	if w <= 0 || h <= 0 {
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(w, h, win.Title)
	rl.SetExitKey(rl.KeyNull) // ESC toggles the console; close via window button or "cmd quit"
	if win.TargetFPS > 0 {
		rl.SetTargetFPS(int32(win.TargetFPS))
	}
}

// ScreenSize returns the current render size in pixels.
func ScreenSize() (w, h int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Close closes the window. Unload textures and meshes first.
func Close() {
	rl.CloseWindow()
}

// Run drives the main loop until the window closes or Frame returns an error.
// engine.ErrQuit ends the loop without an error.
func Run(h Hooks) error {
	for !rl.WindowShouldClose() {
		if h.Before != nil {
			h.Before()
		}
		dt := float64(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		var err error
		if h.Frame != nil {
			err = h.Frame(dt)
		}
		if h.View != nil {
			h.View.Draw()
		}
		if h.Overlay != nil {
			h.Overlay()
		}
		rl.EndDrawing()

		if errors.Is(err, engine.ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
