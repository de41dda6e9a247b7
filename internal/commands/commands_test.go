package commands

import (
	"errors"
	"flag"
	"strings"
	"testing"

	"physbody-engine/internal/input"
	"physbody-engine/internal/logger"
	"physbody-engine/internal/physics"
	"physbody-engine/internal/physics3d"
	"physbody-engine/internal/units"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line  string
		args  []string
		isCmd bool
	}{
		{"cmd spawn wheel", []string{"spawn", "wheel"}, true},
		{"cmd   gravity  -y -20 ", []string{"gravity", "-y", "-20"}, true},
		{"cmd ", nil, true},
		{"hello there", nil, false},
		{"CMD spawn", nil, false},
	}
	for _, tt := range tests {
		args, ok := Parse(tt.line)
		if ok != tt.isCmd || strings.Join(args, "|") != strings.Join(tt.args, "|") {
			t.Errorf("Parse(%q) = %v, %v; want %v, %v", tt.line, args, ok, tt.args, tt.isCmd)
		}
	}
}

func TestExecuteErrors(t *testing.T) {
	reg := NewRegistry()
	fs := NewFlagSet("x")
	fs.Int("n", 0, "")
	reg.Register("x", "", fs, func(*flag.FlagSet) error { return errors.New("boom") })
	if err := reg.Execute(nil); err == nil {
		t.Error("empty args accepted")
	}
	if err := reg.Execute([]string{"nope"}); err == nil {
		t.Error("unknown command accepted")
	}
	if err := reg.Execute([]string{"x", "-n", "abc"}); err == nil {
		t.Error("bad flag accepted")
	}
	if err := reg.Execute([]string{"x"}); err == nil || err.Error() != "boom" {
		t.Errorf("Run error = %v", err)
	}
}

func TestFlagsResetBetweenCalls(t *testing.T) {
	reg := NewRegistry()
	fs := NewFlagSet("n")
	n := fs.Int("n", 7, "")
	var seen []int
	reg.Register("n", "", fs, func(*flag.FlagSet) error { seen = append(seen, *n); return nil })
	_ = reg.Execute([]string{"n", "-n", "3"})
	_ = reg.Execute([]string{"n"})
	if len(seen) != 2 || seen[0] != 3 || seen[1] != 7 {
		t.Errorf("seen = %v, want [3 7]", seen)
	}
}

func TestSetFlagsForgottenBetweenCalls(t *testing.T) {
	reg := NewRegistry()
	fs := NewFlagSet("n")
	fs.Int("n", 7, "")
	var given []bool
	reg.Register("n", "", fs, func(fs *flag.FlagSet) error {
		given = append(given, isSet(fs, "n"))
		return nil
	})
	for _, args := range [][]string{{"n", "-n", "3"}, {"n"}, {"n", "-n", "3"}} {
		if err := reg.Execute(args); err != nil {
			t.Fatal(err)
		}
	}
	if len(given) != 3 || !given[0] || given[1] || !given[2] {
		t.Errorf("isSet per call = %v, want [true false true]", given)
	}
}

type fakeWorld struct {
	count  int
	gx, gy float64
	debug  bool
}

func (w *fakeWorld) BodyCount() int              { return w.count }
func (w *fakeWorld) Gravity() (float64, float64) { return w.gx, w.gy }
func (w *fakeWorld) SetDebug(on bool)            { w.debug = on }
func (w *fakeWorld) Debug() bool                 { return w.debug }
func (w *fakeWorld) SetGravity(x, y float64) error {
	w.gx, w.gy = x, y
	return nil
}

type spawnCall struct {
	name string
	at   units.Vec2
}

type fakeSpawner struct {
	calls   []spawnCall
	cleared int
}

func (s *fakeSpawner) Spawn(name string, at units.Vec2) (*physics.PhysBody, error) {
	if name != "wheel" {
		return nil, physics.ErrInvalidShapeParameter
	}
	s.calls = append(s.calls, spawnCall{name, at})
	return nil, nil
}

func (s *fakeSpawner) Clear() (int, error) {
	s.cleared++
	return len(s.calls), nil
}

func (s *fakeSpawner) Shapes() []string { return []string{"wheel"} }

func newPhysicsRegistry() (*Registry, *fakeWorld, *fakeSpawner, *input.State, *logger.Logger) {
	reg := NewRegistry()
	w := &fakeWorld{count: 4, gy: -10}
	s := &fakeSpawner{}
	in := input.NewState()
	log := logger.NewAt("")
	RegisterPhysics(reg, w, s, in, log)
	RegisterHelp(reg, log)
	return reg, w, s, in, log
}

func run(t *testing.T, reg *Registry, line string) error {
	t.Helper()
	args, ok := Parse(line)
	if !ok {
		t.Fatalf("%q is not a command", line)
	}
	return reg.Execute(args)
}

func lastLine(log *logger.Logger) string {
	lines := log.Lines()
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

func TestGravityCommand(t *testing.T) {
	reg, w, _, _, log := newPhysicsRegistry()
	if err := run(t, reg, "cmd gravity"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(lastLine(log), "gravity: (0, -10)") {
		t.Errorf("log = %q", lastLine(log))
	}
	if err := run(t, reg, "cmd gravity -y -20"); err != nil {
		t.Fatal(err)
	}
	if w.gx != 0 || w.gy != -20 {
		t.Errorf("gravity = (%v, %v), want (0, -20)", w.gx, w.gy)
	}
	if err := run(t, reg, "cmd gravity -x 3"); err != nil {
		t.Fatal(err)
	}
	if w.gx != 3 || w.gy != -20 {
		t.Errorf("gravity = (%v, %v), want (3, -20)", w.gx, w.gy)
	}
	if err := run(t, reg, "cmd gravity"); err != nil {
		t.Fatal(err)
	}
	if w.gx != 3 || w.gy != -20 {
		t.Errorf("bare gravity changed it to (%v, %v)", w.gx, w.gy)
	}
	if !strings.HasSuffix(lastLine(log), "gravity: (3, -20)") {
		t.Errorf("log = %q", lastLine(log))
	}
}

func TestDebugCommand(t *testing.T) {
	reg, w, _, _, _ := newPhysicsRegistry()
	for _, step := range []struct {
		line string
		want bool
	}{
		{"cmd debug", true},
		{"cmd debug", false},
		{"cmd debug on", true},
		{"cmd debug ON", true},
		{"cmd debug off", false},
	} {
		if err := run(t, reg, step.line); err != nil {
			t.Fatal(err)
		}
		if w.debug != step.want {
			t.Errorf("after %q debug = %v", step.line, w.debug)
		}
	}
	if err := run(t, reg, "cmd debug maybe"); err == nil {
		t.Error("bad argument accepted")
	}
}

func TestSpawnCommand(t *testing.T) {
	reg, _, s, in, _ := newPhysicsRegistry()
	in.MoveMouse(units.V(120, 80))
	if err := run(t, reg, "cmd spawn wheel"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, reg, "cmd spawn -y 10 wheel"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, reg, "cmd spawn -x 1 -y 2 wheel"); err != nil {
		t.Fatal(err)
	}
	in.MoveMouse(units.V(300, 200))
	if err := run(t, reg, "cmd spawn wheel"); err != nil {
		t.Fatal(err)
	}
	want := []units.Vec2{units.V(120, 80), units.V(120, 10), units.V(1, 2), units.V(300, 200)}
	if len(s.calls) != len(want) {
		t.Fatalf("calls = %v", s.calls)
	}
	for i, c := range s.calls {
		if c.at != want[i] {
			t.Errorf("call %d at %v, want %v", i, c.at, want[i])
		}
	}
	if err := run(t, reg, "cmd spawn"); err == nil {
		t.Error("missing shape accepted")
	}
	if err := run(t, reg, "cmd spawn anvil"); !errors.Is(err, physics.ErrInvalidShapeParameter) {
		t.Errorf("spawn anvil = %v", err)
	}
}

func TestClearCountAndHelp(t *testing.T) {
	reg, _, s, _, log := newPhysicsRegistry()
	if err := run(t, reg, "cmd clear"); err != nil || s.cleared != 1 {
		t.Fatalf("clear: err=%v cleared=%d", err, s.cleared)
	}
	if err := run(t, reg, "cmd count"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(lastLine(log), "bodies: 4") {
		t.Errorf("count logged %q", lastLine(log))
	}
	before := len(log.Lines())
	if err := run(t, reg, "cmd help"); err != nil {
		t.Fatal(err)
	}
	if got := len(log.Lines()) - before; got != len(reg.Names()) {
		t.Errorf("help logged %d lines, want %d", got, len(reg.Names()))
	}
}

func TestRegisterPhysicsWithoutSpawner(t *testing.T) {
	reg := NewRegistry()
	RegisterPhysics(reg, &fakeWorld{}, nil, nil, nil)
	for _, name := range reg.Names() {
		if name == "spawn" || name == "clear" {
			t.Errorf("%s registered without a spawner", name)
		}
	}
}

type fakeDropper struct{ n int }

func (d *fakeDropper) DropBox() (*physics3d.PhysBody3D, error) {
	d.n++
	return nil, nil
}

func TestRegisterPhysics3D(t *testing.T) {
	reg := NewRegistry()
	d := &fakeDropper{}
	RegisterPhysics3D(reg, &fakeWorld{count: 2}, d, logger.NewAt(""))
	if err := reg.Execute([]string{"drop"}); err != nil || d.n != 1 {
		t.Errorf("drop: err=%v n=%d", err, d.n)
	}
	if err := reg.Execute([]string{"count"}); err != nil {
		t.Error(err)
	}
}
