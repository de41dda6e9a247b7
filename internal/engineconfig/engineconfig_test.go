package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"physbody-engine/internal/physics"
	"physbody-engine/internal/physics3d"
)

func TestDefaultMatchesPhysicsDefaults(t *testing.T) {
	c := Default()
	want := physics.DefaultConfig()
	want.Debug = true
	if got := c.PhysicsConfig(); got != want {
		t.Errorf("PhysicsConfig() = %+v, want %+v", got, want)
	}
	if got := c.Physics3DConfig(); got != physics3d.DefaultConfig() {
		t.Errorf("Physics3DConfig() = %+v", got)
	}
	if c.Scene != "intro2d" || c.Window.TargetFPS != 60 {
		t.Errorf("Default() = %+v", c)
	}
}

func TestLoadMissingFileIsDefault(t *testing.T) {
	c, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Physics != Default().Physics {
		t.Errorf("LoadFrom(missing) = %+v", c)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	doc := `{"scene": "intro3d", "physics": {"gravity_y": -20}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Scene != "intro3d" || c.Physics.GravityY != -20 {
		t.Errorf("file values not applied: %+v", c)
	}
	if c.Physics.PixelsPerUnit != 50 || c.Physics.VelocityIterations != 6 {
		t.Errorf("defaults lost: %+v", c.Physics)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFrom(path)
	if err == nil {
		t.Fatal("invalid JSON accepted")
	}
	if c.Scene != Default().Scene {
		t.Errorf("LoadFrom(invalid) = %+v, want defaults", c)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "engine.json")
	t.Setenv("ENGINE_CONFIG", path)
	c := Default()
	c.ShowFPS = true
	c.StreamAddr = "127.0.0.1:8090"
	c.Physics3D.Iterations = 8
	if err := Save(c); err != nil {
		t.Fatal(err)
	}
	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Errorf("Load() = %+v, want %+v", got, c)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PHYSICS_GRAVITY_X", "1.5")
	t.Setenv("PHYSICS_GRAVITY_Y", "-3")
	t.Setenv("PHYSICS_PIXELS_PER_UNIT", "32")
	t.Setenv("ENGINE_SCENE", "intro3d")
	t.Setenv("ENGINE_STREAM_ADDR", ":9000")
	c := Default()
	if err := c.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	p := c.PhysicsConfig()
	if p.GravityX != 1.5 || p.GravityY != -3 || p.PixelsPerUnit != 32 {
		t.Errorf("PhysicsConfig() = %+v", p)
	}
	if c.Scene != "intro3d" || c.StreamAddr != ":9000" {
		t.Errorf("scene=%q stream=%q", c.Scene, c.StreamAddr)
	}

	t.Setenv("PHYSICS_GRAVITY_Y", "down")
	if err := c.ApplyEnv(); err == nil {
		t.Error("bad float accepted")
	}
}
