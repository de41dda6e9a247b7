package shapes

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"physbody-engine/internal/physics"
	"physbody-engine/internal/units"
)

const wheelYAML = `
name: wheel
kind: circle
radius: 25
texture: assets/sprites/wheel.png
restitution: 0.5
`

const triangleYAML = `
name: triangle
kind: chain
body: static
vertices:
  - [0, 0]
  - [40, 0]
  - [20, 30]
anchor: [20, 15]
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(wheelYAML))
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "wheel" || d.Kind != "circle" || d.Radius != 25 || d.Texture != "assets/sprites/wheel.png" {
		t.Errorf("Parse() = %+v", d)
	}
	if d.Restitution == nil || *d.Restitution != 0.5 {
		t.Errorf("restitution = %v", d.Restitution)
	}
	if k, _ := d.BodyKind(); k != physics.Dynamic {
		t.Errorf("BodyKind() = %v, want dynamic", k)
	}

	tri, err := Parse([]byte(triangleYAML))
	if err != nil {
		t.Fatal(err)
	}
	pts := tri.Points()
	if len(pts) != 3 || pts[2] != units.V(20, 30) {
		t.Errorf("Points() = %v", pts)
	}
	if k, _ := tri.BodyKind(); k != physics.Static {
		t.Errorf("BodyKind() = %v, want static", k)
	}
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"no name":      "kind: circle\nradius: 3\n",
		"zero radius":  "name: a\nkind: circle\n",
		"flat box":     "name: a\nkind: box\nhalf_width: 3\n",
		"short chain":  "name: a\nkind: chain\nvertices: [[0, 0], [1, 1]]\n",
		"unknown kind": "name: a\nkind: star\n",
		"unknown body": "name: a\nkind: circle\nradius: 1\nbody: floating\n",
		"invalid yaml": "name: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Error("Parse() succeeded")
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	for name, doc := range map[string]string{"wheel.yaml": wheelYAML, "triangle.yaml": triangleYAML, "notes.txt": "ignored"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0644); err != nil {
			t.Fatal(err)
		}
	}
	defs, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 2 {
		t.Fatalf("LoadDir() = %d defs, want 2", len(defs))
	}
	if _, ok := defs["triangle"]; !ok {
		t.Error("triangle missing")
	}

	if err := os.WriteFile(filepath.Join(dir, "copy.yaml"), []byte(wheelYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Error("duplicate names accepted")
	}
}

func TestBundledAssets(t *testing.T) {
	defs, err := LoadDir(filepath.Join("..", "..", Dir))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"wheel", "crate", "rick_head"} {
		if _, ok := defs[name]; !ok {
			t.Errorf("bundled shape %q missing", name)
		}
	}
	if got := len(defs["rick_head"].Vertices); got != 33 {
		t.Errorf("rick_head has %d vertices, want 33", got)
	}
}

func TestSpawn(t *testing.T) {
	m, err := physics.New(physics.DefaultConfig(), nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = m.Start()
	defer m.CleanUp()

	tri, _ := Parse([]byte(triangleYAML))
	b, err := tri.Spawn(m, units.V(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	pos, _ := b.Position()
	if math.Abs(pos.X-80) > 1e-9 || math.Abs(pos.Y-85) > 1e-9 {
		t.Errorf("Position() = %v, want anchor applied (80, 85)", pos)
	}
	if b.Kind() != physics.Static || b.Shape() != physics.ShapeChain {
		t.Errorf("spawned %v", b)
	}

	bad := Def{Name: "bad", Kind: "circle", Radius: -1}
	if _, err := bad.Spawn(m, units.V(0, 0)); !errors.Is(err, physics.ErrInvalidShapeParameter) {
		t.Errorf("Spawn(bad) = %v", err)
	}
}
