package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"physbody-engine/internal/commands"
	"physbody-engine/internal/debug"
	"physbody-engine/internal/engine"
	"physbody-engine/internal/engineconfig"
	"physbody-engine/internal/env"
	"physbody-engine/internal/graphics"
	"physbody-engine/internal/logger"
	"physbody-engine/internal/netview"
	"physbody-engine/internal/physics"
	"physbody-engine/internal/physics3d"
	"physbody-engine/internal/primitives"
	"physbody-engine/internal/scene"
	"physbody-engine/internal/shapes"
	"physbody-engine/internal/terminal"
	"physbody-engine/internal/units"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.New()
	if err := env.Load(".env"); err != nil {
		log.Log(err.Error())
	}
	cfg, err := engineconfig.Load()
	if err != nil {
		log.Logf("%v (using defaults)", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	kind, err := scene.ParseKind(cfg.Scene)
	if err != nil {
		return err
	}
	defs, err := shapes.LoadDir(shapes.Dir)
	if err != nil {
		return err
	}

	graphics.Open(cfg.Window)
	defer graphics.Close()
	w, h := graphics.ScreenSize()

	reg := commands.NewRegistry()
	term := terminal.New(log, reg)
	in := &graphics.Input{Blocked: term.IsOpen}
	sink := graphics.NewSink(0)
	defer sink.Unload()

	eng := engine.New(log)
	deps := scene.Deps{Shapes: defs, Screen: units.V(float64(w), float64(h)), Input: in, Sink: sink, Log: log}
	var (
		counter debug.Counter
		view    *graphics.View3D
	)
	if kind.Is3D() {
		p3, err := physics3d.New(cfg.Physics3DConfig(), log)
		if err != nil {
			return err
		}
		meshes := primitives.NewRegistry()
		defer meshes.Unload()
		view = graphics.NewView3D(meshes)
		view.GridVisible = cfg.GridVisible
		view.SetFreeLook(true)
		deps.Physics3D, deps.Meshes = p3, meshes
		eng.Add(p3)
		counter = p3
	} else {
		p, err := physics.New(cfg.PhysicsConfig(), log, in, sink)
		if err != nil {
			return err
		}
		deps.Physics = p
		eng.Add(p)
		counter = p
	}

	scn, err := scene.New(kind, deps)
	if err != nil {
		return err
	}
	eng.Add(scn)
	switch s := scn.(type) {
	case *scene.Intro2D:
		commands.RegisterPhysics(reg, deps.Physics, s, in, log)
	case *scene.Intro3D:
		commands.RegisterPhysics3D(reg, deps.Physics3D, s, log)
	}
	quit := false
	reg.Register("quit", "close the engine", nil, func(*flag.FlagSet) error {
		quit = true
		return nil
	})
	commands.RegisterHelp(reg, log)

	if cfg.StreamAddr != "" && deps.Physics != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		hub := netview.NewHub(log)
		go func() {
			if err := hub.ListenAndServe(ctx, cfg.StreamAddr); err != nil {
				log.Log(err.Error())
			}
		}()
		eng.Add(netview.NewStreamer(hub, deps.Physics))
	}

	if err := eng.Start(); err != nil {
		return err
	}
	defer eng.CleanUp()

	overlay := debug.New(counter)
	overlay.ShowFPS = cfg.ShowFPS
	overlay.ShowMemAlloc = cfg.ShowMemAlloc
	overlay.ShowBodies = true

	return graphics.Run(graphics.Hooks{
		Before: func() {
			term.Update()
			if view != nil {
				view.Update(!term.IsOpen())
			}
		},
		Frame: func(dt float64) error {
			if quit {
				return engine.ErrQuit
			}
			return eng.Frame(dt)
		},
		View: view,
		Overlay: func() {
			term.Draw()
			overlay.Draw()
		},
	})
}
