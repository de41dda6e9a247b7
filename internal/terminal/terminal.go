package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physbody-engine/internal/commands"
	"physbody-engine/internal/logger"
)

const prompt = "> "

// layout of the console in pixels.
const (
	barHeight  = 36
	textSize   = 18
	inset      = 8
	rowHeight  = textSize + 4
	logRows    = 12
	maxHistory = 32
)

var (
	barColor = rl.NewColor(30, 34, 40, 255)
	logColor = rl.NewColor(18, 20, 24, 230)
)

// Terminal is the console toggled with ESC. "cmd ..." lines go to the command registry;
// anything else is echoed to the log. Up and Down walk through submitted lines.
type Terminal struct {
	log     *logger.Logger
	reg     *commands.Registry
	line    string
	open    bool
	history []string
	recall  int
}

func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen reports whether the console owns the keyboard.
func (t *Terminal) IsOpen() bool { return t.open }

// Submit runs one entered line.
func (t *Terminal) Submit(line string) {
	if line == "" {
		return
	}
	t.log.Log(prompt + line)
	t.remember(line)
	args, ok := commands.Parse(line)
	if !ok {
		return
	}
	if err := t.reg.Execute(args); err != nil {
		t.log.Log(err.Error())
	}
}

func (t *Terminal) remember(line string) {
	if n := len(t.history); n == 0 || t.history[n-1] != line {
		t.history = append(t.history, line)
		if len(t.history) > maxHistory {
			t.history = t.history[1:]
		}
	}
	t.recall = len(t.history)
}

// Update reads the keyboard. It runs before the scenes so an open console can block their input.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
		for rl.GetCharPressed() != 0 {
		}
	}
	if !t.open {
		return
	}
	for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
		t.line += string(rune(c))
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace) && t.line != "":
		_, n := utf8.DecodeLastRuneInString(t.line)
		t.line = t.line[:len(t.line)-n]
	case rl.IsKeyPressed(rl.KeyUp) && t.recall > 0:
		t.recall--
		t.line = t.history[t.recall]
	case rl.IsKeyPressed(rl.KeyDown) && t.recall < len(t.history):
		t.recall++
		t.line = ""
		if t.recall < len(t.history) {
			t.line = t.history[t.recall]
		}
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		line := t.line
		t.line = ""
		t.Submit(line)
	}
}

// Draw shows the last log rows above the input bar while open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	w := int32(rl.GetScreenWidth())
	barY := int32(rl.GetScreenHeight()) - barHeight
	logY := max(barY-logRows*rowHeight, 0)

	rl.DrawRectangle(0, logY, w, barY-logY, logColor)
	lines := t.log.Lines()
	if len(lines) > logRows {
		lines = lines[len(lines)-logRows:]
	}
	for i, l := range lines {
		rl.DrawText(l, inset, logY+int32(i*rowHeight)+inset/2, textSize, rl.LightGray)
	}
	rl.DrawRectangle(0, barY, w, barHeight, barColor)
	rl.DrawText(prompt+t.line+"_", inset, barY+inset, textSize, rl.White)
}
