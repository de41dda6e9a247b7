package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	a, err := r.LoadTexture("a.png")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := r.LoadTexture("b.png")
	again, _ := r.LoadTexture("a.png")
	if a == NoTexture || a == b || again != a {
		t.Errorf("handles a=%d b=%d again=%d", a, b, again)
	}
	if _, err := r.LoadTexture(""); err == nil {
		t.Error("empty path accepted")
	}

	r.DrawCircle(1, 2, 3, CircleColor)
	r.DrawLine(0, 0, 1, 1, ChainColor)
	r.Blit(a, 10, 20, 45)
	r.Blit(NoTexture, 10, 20, 45)
	r.DrawMesh(MeshSphere, mgl32.Translate3D(0, 5, 0), mgl32.Vec3{1, 1, 1}, CircleColor)

	for kind, want := range map[string]int{"circle": 1, "line": 1, "blit": 1, "mesh": 1} {
		if got := r.Count(kind); got != want {
			t.Errorf("Count(%q) = %d, want %d", kind, got, want)
		}
	}
	if m := r.Ops[3]; m.Mesh != MeshSphere || m.Transform.Col(3).Y() != 5 {
		t.Errorf("mesh op = %+v", m)
	}

	r.Reset()
	if len(r.Ops) != 0 {
		t.Errorf("Reset left %d ops", len(r.Ops))
	}
	if again, _ := r.LoadTexture("b.png"); again != b {
		t.Error("Reset dropped textures")
	}
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "sprite.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadImage(t *testing.T) {
	path := writePNG(t, 64, 32)

	img, err := LoadImage(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("unscaled bounds = %v", b)
	}

	img, err = LoadImage(path, 16)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("scaled bounds = %v, want 16x8", b)
	}

	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"), 0); err == nil {
		t.Error("missing file accepted")
	}
}

func TestBundledSprites(t *testing.T) {
	for name, side := range map[string]int{"wheel.png": 50, "crate.png": 40} {
		img, err := LoadImage(filepath.Join("..", "..", "assets", "sprites", name), 0)
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != side || b.Dy() != side {
			t.Errorf("%s bounds = %v, want %dx%d", name, b, side, side)
		}
	}
}
