package commands

import (
	"flag"
	"fmt"
	"strings"

	"physbody-engine/internal/input"
	"physbody-engine/internal/logger"
	"physbody-engine/internal/physics"
	"physbody-engine/internal/physics3d"
	"physbody-engine/internal/units"
)

// World is the part of the 2D physics module the console drives.
type World interface {
	BodyCount() int
	SetGravity(x, y float64) error
	Gravity() (x, y float64)
	SetDebug(on bool)
	Debug() bool
}

// Spawner is a scene that can create named shapes and remove what it created.
type Spawner interface {
	Spawn(name string, at units.Vec2) (*physics.PhysBody, error)
	Clear() (int, error)
	Shapes() []string
}

// Dropper is a 3D scene that drops boxes on demand.
type Dropper interface {
	DropBox() (*physics3d.PhysBody3D, error)
}

// Counter is anything that reports a live body count.
type Counter interface {
	BodyCount() int
}

// RegisterHelp adds "help", listing every command registered on reg.
func RegisterHelp(reg *Registry, log *logger.Logger) {
	reg.Register("help", "list commands", nil, func(*flag.FlagSet) error {
		for _, line := range reg.Help() {
			log.Log(line)
		}
		return nil
	})
}

// RegisterCount adds "count", logging the live body count of c.
func RegisterCount(reg *Registry, c Counter, log *logger.Logger) {
	reg.Register("count", "log the number of live bodies", nil, func(*flag.FlagSet) error {
		log.Logf("bodies: %d", c.BodyCount())
		return nil
	})
}

// RegisterPhysics adds the 2D commands: count, gravity and debug, plus spawn, clear and shapes
// when s is not nil. Spawns without -x/-y go to the mouse position from in.
func RegisterPhysics(reg *Registry, w World, s Spawner, in input.Source, log *logger.Logger) {
	RegisterCount(reg, w, log)

	gravity := NewFlagSet("gravity")
	gx := gravity.Float64("x", 0, "horizontal gravity (m/s^2)")
	gy := gravity.Float64("y", 0, "vertical gravity, y-up (m/s^2)")
	reg.Register("gravity", "gravity [-x X] [-y Y]; no flags logs the current value", gravity, func(fs *flag.FlagSet) error {
		x, y := w.Gravity()
		if !isSet(fs, "x") && !isSet(fs, "y") {
			log.Logf("gravity: (%g, %g)", x, y)
			return nil
		}
		if isSet(fs, "x") {
			x = *gx
		}
		if isSet(fs, "y") {
			y = *gy
		}
		if err := w.SetGravity(x, y); err != nil {
			return err
		}
		log.Logf("gravity set to (%g, %g)", x, y)
		return nil
	})

	debugFS := NewFlagSet("debug")
	reg.Register("debug", "debug [on|off]; no argument toggles the physics debug draw", debugFS, func(fs *flag.FlagSet) error {
		on := !w.Debug()
		switch arg := strings.ToLower(fs.Arg(0)); arg {
		case "":
		case "on":
			on = true
		case "off":
			on = false
		default:
			return fmt.Errorf("commands: debug: want on or off, got %q", arg)
		}
		w.SetDebug(on)
		log.Logf("debug draw %s", onOff(on))
		return nil
	})

	if s == nil {
		return
	}

	spawn := NewFlagSet("spawn")
	sx := spawn.Float64("x", 0, "x in pixels")
	sy := spawn.Float64("y", 0, "y in pixels")
	reg.Register("spawn", "spawn [-x X] [-y Y] <shape>; defaults to the mouse position", spawn, func(fs *flag.FlagSet) error {
		name := fs.Arg(0)
		if name == "" {
			return fmt.Errorf("commands: spawn: missing shape (one of %s)", strings.Join(s.Shapes(), ", "))
		}
		var at units.Vec2
		if in != nil {
			at = in.MousePosition()
		}
		if isSet(fs, "x") {
			at.X = *sx
		}
		if isSet(fs, "y") {
			at.Y = *sy
		}
		b, err := s.Spawn(name, at)
		if err != nil {
			return err
		}
		log.Logf("spawned %s %v at (%g, %g)", name, b, at.X, at.Y)
		return nil
	})

	reg.Register("clear", "destroy every spawned body", nil, func(*flag.FlagSet) error {
		n, err := s.Clear()
		if err != nil {
			return err
		}
		log.Logf("cleared %d bodies", n)
		return nil
	})

	reg.Register("shapes", "list spawnable shapes", nil, func(*flag.FlagSet) error {
		log.Log(strings.Join(s.Shapes(), " "))
		return nil
	})
}

// RegisterPhysics3D adds count, plus drop when d is not nil.
func RegisterPhysics3D(reg *Registry, c Counter, d Dropper, log *logger.Logger) {
	RegisterCount(reg, c, log)
	if d == nil {
		return
	}
	reg.Register("drop", "drop a box into the 3D scene", nil, func(*flag.FlagSet) error {
		b, err := d.DropBox()
		if err != nil {
			return err
		}
		log.Logf("dropped %v", b)
		return nil
	})
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
