package scene

import (
	"fmt"
	"sort"

	"physbody-engine/internal/input"
	"physbody-engine/internal/logger"
	"physbody-engine/internal/physics"
	"physbody-engine/internal/render"
	"physbody-engine/internal/shapes"
	"physbody-engine/internal/units"
)

// binding maps a key to the shape it spawns under the mouse.
type binding struct {
	key   input.Key
	shape string
}

var intro2DBindings = []binding{
	{input.KeyOne, "wheel"},
	{input.KeyTwo, "crate"},
	{input.KeyThree, "rick_head"},
}

type sprite struct {
	body *physics.PhysBody
	tex  render.Texture
}

// Intro2D drops wheels, crates and heads onto a static ground circle. Keys 1, 2 and 3 spawn
// at the mouse position; every spawned body is drawn with its sprite at its current rotation.
type Intro2D struct {
	m      *physics.Module
	defs   map[string]shapes.Def
	screen units.Vec2
	in     input.Source
	out    render.Sink
	log    *logger.Logger

	textures map[string]render.Texture
	sprites  []sprite
	ground   *physics.PhysBody
}

func NewIntro2D(m *physics.Module, defs map[string]shapes.Def, screen units.Vec2, in input.Source, out render.Sink, log *logger.Logger) *Intro2D {
	return &Intro2D{
		m:        m,
		defs:     defs,
		screen:   screen,
		in:       in,
		out:      out,
		log:      log,
		textures: make(map[string]render.Texture),
	}
}

func (s *Intro2D) Name() string { return "scene_intro2d" }

// Start loads one texture per shape definition and creates the ground. A texture that fails to
// load is logged and the shape is then only visible through the physics debug draw.
func (s *Intro2D) Start() error {
	s.log.Log("Loading Intro assets")
	names := make([]string, 0, len(s.defs))
	for name := range s.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := s.defs[name]
		if def.Texture == "" || s.out == nil {
			continue
		}
		tex, err := s.out.LoadTexture(def.Texture)
		if err != nil {
			s.log.Logf("scene: %s: %v", name, err)
			continue
		}
		s.textures[name] = tex
	}

	ground, err := s.m.CreateCircle(units.V(s.screen.X/2, s.screen.Y/1.5), s.screen.X/4, physics.Static)
	if err != nil {
		return fmt.Errorf("scene: ground: %w", err)
	}
	s.ground = ground
	return nil
}

func (s *Intro2D) PreUpdate(dt float64) error { return nil }

// Update handles spawn keys, then blits every live sprite.
func (s *Intro2D) Update(dt float64) error {
	if s.in != nil {
		for _, b := range intro2DBindings {
			if !s.in.KeyPressed(b.key) {
				continue
			}
			if _, err := s.Spawn(b.shape, s.in.MousePosition()); err != nil {
				s.log.Logf("scene: spawn %s: %v", b.shape, err)
			}
		}
	}
	s.draw()
	return nil
}

func (s *Intro2D) PostUpdate(dt float64) error { return nil }

func (s *Intro2D) CleanUp() {
	s.log.Log("Unloading Intro scene")
	s.sprites = nil
	s.ground = nil
}

// Spawn creates the named shape at pixel position at and tracks it for drawing.
func (s *Intro2D) Spawn(name string, at units.Vec2) (*physics.PhysBody, error) {
	def, ok := s.defs[name]
	if !ok {
		return nil, fmt.Errorf("scene: no shape named %q", name)
	}
	b, err := def.Spawn(s.m, at)
	if err != nil {
		return nil, err
	}
	s.sprites = append(s.sprites, sprite{body: b, tex: s.textures[name]})
	return b, nil
}

// Clear destroys every spawned body and keeps the ground. It returns how many were removed.
func (s *Intro2D) Clear() (int, error) {
	n := 0
	for _, sp := range s.sprites {
		if !sp.body.Valid() {
			continue
		}
		if err := s.m.DestroyBody(sp.body); err != nil {
			return n, err
		}
		n++
	}
	s.sprites = nil
	return n, nil
}

// Spawned returns the number of live spawned bodies.
func (s *Intro2D) Spawned() int {
	n := 0
	for _, sp := range s.sprites {
		if sp.body.Valid() {
			n++
		}
	}
	return n
}

// Shapes lists the spawnable shape names in order.
func (s *Intro2D) Shapes() []string {
	names := make([]string, 0, len(s.defs))
	for name := range s.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Intro2D) draw() {
	live := s.sprites[:0]
	for _, sp := range s.sprites {
		if !sp.body.Valid() {
			continue
		}
		live = append(live, sp)
		if s.out == nil {
			continue
		}
		pos, err := sp.body.Position()
		if err != nil {
			continue
		}
		rot, _ := sp.body.Rotation()
		s.out.Blit(sp.tex, float32(pos.X), float32(pos.Y), rot)
	}
	s.sprites = live
}
