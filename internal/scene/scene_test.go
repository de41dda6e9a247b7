package scene

import (
	"math"
	"path/filepath"
	"testing"

	"physbody-engine/internal/input"
	"physbody-engine/internal/physics"
	"physbody-engine/internal/physics3d"
	"physbody-engine/internal/render"
	"physbody-engine/internal/shapes"
	"physbody-engine/internal/units"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"intro2d": KindIntro2D, " Intro3D ": KindIntro3D} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseKind("pinball"); err == nil {
		t.Error("unknown scene accepted")
	}
	if !KindIntro3D.Is3D() || KindIntro2D.Is3D() {
		t.Error("Is3D mismatch")
	}
}

func TestNewNeedsMatchingPhysics(t *testing.T) {
	if _, err := New(KindIntro2D, Deps{}); err == nil {
		t.Error("2D scene built without physics")
	}
	if _, err := New(KindIntro3D, Deps{}); err == nil {
		t.Error("3D scene built without physics")
	}
	if _, err := New(Kind("nope"), Deps{}); err == nil {
		t.Error("unknown kind built")
	}
}

type intro2DFixture struct {
	scene *Intro2D
	m     *physics.Module
	in    *input.State
	rec   *render.Recorder
	defs  map[string]shapes.Def
}

func newIntro2D(t *testing.T) intro2DFixture {
	t.Helper()
	defs, err := shapes.LoadDir(filepath.Join("..", "..", shapes.Dir))
	if err != nil {
		t.Fatal(err)
	}
	rec := render.NewRecorder()
	in := input.NewState()
	cfg := physics.DefaultConfig()
	cfg.Debug = false
	m, err := physics.New(cfg, nil, in, rec)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(m.CleanUp)

	mod, err := New(KindIntro2D, Deps{Physics: m, Shapes: defs, Screen: units.V(800, 600), Input: in, Sink: rec})
	if err != nil {
		t.Fatal(err)
	}
	s := mod.(*Intro2D)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	return intro2DFixture{scene: s, m: m, in: in, rec: rec, defs: defs}
}

func TestIntro2DStartCreatesGround(t *testing.T) {
	f := newIntro2D(t)
	if f.m.BodyCount() != 1 {
		t.Fatalf("BodyCount() = %d, want the ground only", f.m.BodyCount())
	}
	c, err := f.scene.ground.Center()
	if err != nil {
		t.Fatal(err)
	}
	if c.X != 400 || c.Y != 400 {
		t.Errorf("ground center = %v, want (400, 400)", c)
	}
	if f.scene.ground.Kind() != physics.Static {
		t.Errorf("ground kind = %v", f.scene.ground.Kind())
	}
	if len(f.scene.textures) != 3 {
		t.Errorf("loaded %d textures, want 3", len(f.scene.textures))
	}
}

func TestIntro2DKeySpawnsAtMouse(t *testing.T) {
	f := newIntro2D(t)
	f.in.MoveMouse(units.V(400, 100))
	f.in.Press(input.KeyOne)
	if err := f.scene.Update(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	f.in.EndFrame()

	if f.scene.Spawned() != 1 || f.m.BodyCount() != 2 {
		t.Fatalf("Spawned() = %d, BodyCount() = %d", f.scene.Spawned(), f.m.BodyCount())
	}
	if f.rec.Count("blit") != 1 {
		t.Fatalf("blits = %d, want 1", f.rec.Count("blit"))
	}
	wheelTex, _ := f.rec.LoadTexture(f.defs["wheel"].Texture)
	op := f.rec.Ops[0]
	if op.Texture != wheelTex || op.X != 375 || op.Y != 75 {
		t.Errorf("blit = %+v, want wheel at (375, 75)", op)
	}

	f.rec.Reset()
	f.in.Press(input.KeyTwo)
	f.in.Press(input.KeyThree)
	_ = f.scene.Update(1.0 / 60)
	if f.scene.Spawned() != 3 || f.rec.Count("blit") != 3 {
		t.Errorf("Spawned() = %d, blits = %d, want 3 and 3", f.scene.Spawned(), f.rec.Count("blit"))
	}
}

func TestIntro2DSkipsDestroyedBodies(t *testing.T) {
	f := newIntro2D(t)
	b, err := f.scene.Spawn("crate", units.V(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.m.DestroyBody(b); err != nil {
		t.Fatal(err)
	}
	_ = f.scene.Update(1.0 / 60)
	if f.rec.Count("blit") != 0 || f.scene.Spawned() != 0 {
		t.Errorf("destroyed body still drawn: blits=%d spawned=%d", f.rec.Count("blit"), f.scene.Spawned())
	}
}

func TestIntro2DSpawnAndClear(t *testing.T) {
	f := newIntro2D(t)
	if _, err := f.scene.Spawn("anvil", units.V(0, 0)); err == nil {
		t.Error("unknown shape spawned")
	}
	for i := 0; i < 3; i++ {
		if _, err := f.scene.Spawn("wheel", units.V(100+float64(i)*60, 100)); err != nil {
			t.Fatal(err)
		}
	}
	n, err := f.scene.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || f.m.BodyCount() != 1 {
		t.Errorf("Clear() = %d, BodyCount() = %d, want 3 and 1", n, f.m.BodyCount())
	}
	if got := f.scene.Shapes(); len(got) != 3 || got[0] != "crate" {
		t.Errorf("Shapes() = %v", got)
	}
}

func TestIntro2DFallsOntoGround(t *testing.T) {
	f := newIntro2D(t)
	b, err := f.scene.Spawn("wheel", units.V(400, 100))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 240; i++ {
		if err := f.m.StepSimulation(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}
	c, _ := b.Center()
	// ground circle top is at y=200; the wheel must rest on or beside it, never inside.
	if c.Y <= 100 {
		t.Errorf("wheel did not fall: %v", c)
	}
	if d := math.Sqrt(c.DistanceSquared(units.V(400, 400))); d < 200+25-2 {
		t.Errorf("wheel sank into the ground: distance %v", d)
	}
}

func newIntro3D(t *testing.T) (*Intro3D, *physics3d.Module, *input.State, *render.Recorder) {
	t.Helper()
	m, err := physics3d.New(physics3d.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(m.CleanUp)
	in := input.NewState()
	rec := render.NewRecorder()
	mod, err := New(KindIntro3D, Deps{Physics3D: m, Input: in, Meshes: rec})
	if err != nil {
		t.Fatal(err)
	}
	s := mod.(*Intro3D)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	return s, m, in, rec
}

func TestIntro3DSphereTurnsRedOnLanding(t *testing.T) {
	s, m, _, rec := newIntro3D(t)
	if m.BodyCount() != 2 {
		t.Fatalf("BodyCount() = %d, want ground and sphere", m.BodyCount())
	}
	_ = s.Update(0)
	if rec.Count("mesh") != 1 || rec.Ops[0].Mesh != render.MeshSphere || rec.Ops[0].Color != sphereIdle {
		t.Fatalf("first frame = %+v", rec.Ops)
	}
	if y := rec.Ops[0].Transform.Col(3).Y(); y != dropHeight {
		t.Errorf("sphere drawn at y=%v, want %v", y, dropHeight)
	}

	for i := 0; i < 300 && s.Hits() == 0; i++ {
		if err := m.PreUpdate(0); err != nil {
			t.Fatal(err)
		}
	}
	if s.Hits() == 0 {
		t.Fatal("sphere never hit the ground")
	}
	if s.Color() != sphereHit {
		t.Errorf("Color() = %v, want red", s.Color())
	}
	pos, _ := s.Sphere().Position()
	if pos.Y() > 1.5 {
		t.Errorf("sphere at %v when first notified", pos)
	}
}

func TestIntro3DSpaceDropsBox(t *testing.T) {
	s, m, in, rec := newIntro3D(t)
	in.Press(input.KeySpace)
	_ = s.Update(0)
	if m.BodyCount() != 3 {
		t.Fatalf("BodyCount() = %d, want 3", m.BodyCount())
	}
	if rec.Count("mesh") != 2 {
		t.Fatalf("meshes = %d, want sphere and box", rec.Count("mesh"))
	}
	box := rec.Ops[1]
	if box.Mesh != render.MeshCube || box.Size.X() != 1 {
		t.Errorf("box op = %+v, want a unit cube", box)
	}
}
