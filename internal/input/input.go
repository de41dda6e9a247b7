package input

import "physbody-engine/internal/units"

// Key is a keyboard key code. Values match raylib's KeyboardKey codes so the raylib
// adapter can pass them straight through.
type Key int32

const (
	KeyOne    Key = 49
	KeyTwo    Key = 50
	KeyThree  Key = 51
	KeySpace  Key = 32
	KeyEscape Key = 256
	KeyF1     Key = 290
	KeyF2     Key = 291
)

// Source is what the engine reads from input each frame: discrete "went down this frame"
// events and the mouse position in pixels.
type Source interface {
	KeyPressed(k Key) bool
	MousePosition() units.Vec2
}

// State is an in-memory Source. Press marks keys as pressed until the next EndFrame.
// Used by tests and by console commands that spawn at a given position.
type State struct {
	pressed map[Key]bool
	mouse   units.Vec2
}

// NewState returns a State with no keys pressed and the mouse at the origin.
func NewState() *State {
	return &State{pressed: make(map[Key]bool)}
}

// Press marks k as pressed for the current frame.
func (s *State) Press(k Key) {
	s.pressed[k] = true
}

// MoveMouse sets the mouse position in pixels.
func (s *State) MoveMouse(p units.Vec2) {
	s.mouse = p
}

// EndFrame clears pressed keys.
func (s *State) EndFrame() {
	for k := range s.pressed {
		delete(s.pressed, k)
	}
}

func (s *State) KeyPressed(k Key) bool {
	return s.pressed[k]
}

func (s *State) MousePosition() units.Vec2 {
	return s.mouse
}
