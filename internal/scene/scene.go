// Package scene holds the playable scenes. A scene is an engine module that owns the bodies it
// spawns and draws them through the render sinks every Update.
package scene

import (
	"fmt"
	"strings"

	"physbody-engine/internal/engine"
	"physbody-engine/internal/input"
	"physbody-engine/internal/logger"
	"physbody-engine/internal/physics"
	"physbody-engine/internal/physics3d"
	"physbody-engine/internal/render"
	"physbody-engine/internal/shapes"
	"physbody-engine/internal/units"
)

// Kind names a scene in the engine config.
type Kind string

const (
	KindIntro2D Kind = "intro2d"
	KindIntro3D Kind = "intro3d"
)

// ParseKind accepts a scene name from config or the console. Matching ignores case.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindIntro2D, KindIntro3D:
		return k, nil
	}
	return "", fmt.Errorf("scene: unknown scene %q", s)
}

// Is3D reports whether the scene needs the 3D physics module.
func (k Kind) Is3D() bool { return k == KindIntro3D }

// Deps are the collaborators a scene may need. Only the fields of the chosen kind are required.
type Deps struct {
	Physics   *physics.Module
	Physics3D *physics3d.Module
	Shapes    map[string]shapes.Def
	Screen    units.Vec2
	Input     input.Source
	Sink      render.Sink
	Meshes    render.MeshSink
	Log       *logger.Logger
}

// New builds the scene of the given kind.
func New(kind Kind, d Deps) (engine.Module, error) {
	switch kind {
	case KindIntro2D:
		if d.Physics == nil {
			return nil, fmt.Errorf("scene: %s needs the 2D physics module", kind)
		}
		return NewIntro2D(d.Physics, d.Shapes, d.Screen, d.Input, d.Sink, d.Log), nil
	case KindIntro3D:
		if d.Physics3D == nil {
			return nil, fmt.Errorf("scene: %s needs the 3D physics module", kind)
		}
		return NewIntro3D(d.Physics3D, d.Input, d.Meshes, d.Log), nil
	}
	return nil, fmt.Errorf("scene: unknown scene %q", kind)
}
