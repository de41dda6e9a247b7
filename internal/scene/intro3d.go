package scene

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"physbody-engine/internal/input"
	"physbody-engine/internal/logger"
	"physbody-engine/internal/physics3d"
	"physbody-engine/internal/render"
)

var (
	sphereIdle = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	sphereHit  = color.RGBA{R: 230, G: 41, B: 55, A: 255}
	crateColor = color.RGBA{R: 200, G: 160, B: 90, A: 255}
)

// dropHeight is where the sphere starts and where Space drops extra boxes.
const dropHeight = 20

// Intro3D drops a unit sphere from y=20 onto the ground. The sphere listens for its own
// collisions and turns red on the first hit. Space drops a box next to it.
type Intro3D struct {
	m   *physics3d.Module
	in  input.Source
	out render.MeshSink
	log *logger.Logger

	ground *physics3d.PhysBody3D
	sphere *physics3d.PhysBody3D
	boxes  []*physics3d.PhysBody3D
	color  color.RGBA
	hits   int
}

func NewIntro3D(m *physics3d.Module, in input.Source, out render.MeshSink, log *logger.Logger) *Intro3D {
	return &Intro3D{m: m, in: in, out: out, log: log, color: sphereIdle}
}

func (s *Intro3D) Name() string { return "scene_intro3d" }

// Start creates a static ground slab whose top face is the y=0 plane, and the falling sphere.
func (s *Intro3D) Start() error {
	s.log.Log("Loading Intro 3D scene")
	ground, err := s.m.AddBox(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{50, 0.5, 50}, 0)
	if err != nil {
		return fmt.Errorf("scene: ground: %w", err)
	}
	sphere, err := s.m.AddSphere(mgl32.Vec3{0, dropHeight, 0}, 1, 1)
	if err != nil {
		return fmt.Errorf("scene: sphere: %w", err)
	}
	if _, err := s.m.RegisterListener(sphere, s); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.ground, s.sphere = ground, sphere
	s.color = sphereIdle
	return nil
}

// OnCollision marks the sphere as hit.
func (s *Intro3D) OnCollision(self, other *physics3d.PhysBody3D) {
	s.hits++
	s.color = sphereHit
}

func (s *Intro3D) PreUpdate(dt float64) error { return nil }

func (s *Intro3D) Update(dt float64) error {
	if s.in != nil && s.in.KeyPressed(input.KeySpace) {
		if _, err := s.DropBox(); err != nil {
			s.log.Logf("scene: drop box: %v", err)
		}
	}
	if s.out == nil {
		return nil
	}
	s.drawBody(s.sphere, render.MeshSphere, s.color)
	live := s.boxes[:0]
	for _, b := range s.boxes {
		if b.Valid() {
			live = append(live, b)
			s.drawBody(b, render.MeshCube, crateColor)
		}
	}
	s.boxes = live
	return nil
}

func (s *Intro3D) PostUpdate(dt float64) error { return nil }

func (s *Intro3D) CleanUp() {
	s.log.Log("Unloading Intro 3D scene")
	s.ground, s.sphere, s.boxes = nil, nil, nil
}

// DropBox adds a unit box above the origin, offset so it lands beside earlier ones.
func (s *Intro3D) DropBox() (*physics3d.PhysBody3D, error) {
	x := float32(len(s.boxes)%5)*2.5 + 2.5
	b, err := s.m.AddBox(mgl32.Vec3{x, dropHeight / 2, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, 1)
	if err != nil {
		return nil, err
	}
	s.boxes = append(s.boxes, b)
	return b, nil
}

// Hits returns how many collisions the sphere has been notified about.
func (s *Intro3D) Hits() int { return s.hits }

// Color is the sphere's current draw color.
func (s *Intro3D) Color() color.RGBA { return s.color }

// Sphere returns the falling sphere, or nil before Start.
func (s *Intro3D) Sphere() *physics3d.PhysBody3D { return s.sphere }

func (s *Intro3D) drawBody(b *physics3d.PhysBody3D, mesh string, c color.RGBA) {
	if b == nil {
		return
	}
	tr, err := b.Transform()
	if err != nil {
		return
	}
	size, _ := b.Size()
	if mesh == render.MeshCube {
		size = size.Mul(2)
	}
	s.out.DrawMesh(mesh, tr, size, c)
}
