package render

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture is an opaque handle returned by Sink.LoadTexture.
type Texture int

// NoTexture is the zero handle; Blit with it draws nothing.
const NoTexture Texture = 0

// Colors used by the physics debug draw.
var (
	CircleColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	PolygonColor = color.RGBA{R: 255, G: 100, B: 100, A: 255}
	ChainColor   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	EdgeColor    = color.RGBA{R: 100, G: 100, B: 255, A: 255}
)

// Sink is the render collaborator. All coordinates are pixels; rotation is in degrees.
// The core only draws through these primitives.
type Sink interface {
	DrawCircle(x, y, radius float32, c color.RGBA)
	DrawLine(x1, y1, x2, y2 float32, c color.RGBA)
	Blit(tex Texture, x, y float32, rotationDeg float64)
	LoadTexture(path string) (Texture, error)
}

// Mesh kinds accepted by MeshSink.DrawMesh.
const (
	MeshSphere = "sphere"
	MeshCube   = "cube"
)

// MeshSink draws 3D primitives. transform places the unit mesh in world space; size scales it
// (radius for spheres, full edge lengths for cubes).
type MeshSink interface {
	DrawMesh(kind string, transform mgl32.Mat4, size mgl32.Vec3, c color.RGBA)
}

// Op is one recorded draw call.
type Op struct {
	Kind      string // "circle", "line", "blit", "mesh"
	X, Y      float32
	X2, Y2    float32
	Radius    float32
	Rotation  float64
	Texture   Texture
	Color     color.RGBA
	Mesh      string
	Transform mgl32.Mat4
	Size      mgl32.Vec3
}

// Recorder is a Sink and MeshSink that records every call. Useful in tests and headless runs.
type Recorder struct {
	Ops      []Op
	textures map[string]Texture
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{textures: make(map[string]Texture)}
}

func (r *Recorder) DrawCircle(x, y, radius float32, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: "circle", X: x, Y: y, Radius: radius, Color: c})
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 float32, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: "line", X: x1, Y: y1, X2: x2, Y2: y2, Color: c})
}

func (r *Recorder) Blit(tex Texture, x, y float32, rotationDeg float64) {
	if tex == NoTexture {
		return
	}
	r.Ops = append(r.Ops, Op{Kind: "blit", X: x, Y: y, Rotation: rotationDeg, Texture: tex})
}

func (r *Recorder) DrawMesh(kind string, transform mgl32.Mat4, size mgl32.Vec3, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: "mesh", Mesh: kind, Transform: transform, Size: size, Color: c})
}

// LoadTexture hands out sequential handles per distinct path. An empty path is an error.
func (r *Recorder) LoadTexture(path string) (Texture, error) {
	if path == "" {
		return NoTexture, fmt.Errorf("render: empty texture path")
	}
	if t, ok := r.textures[path]; ok {
		return t, nil
	}
	t := Texture(len(r.textures) + 1)
	r.textures[path] = t
	return t, nil
}

// Count returns the number of recorded ops of the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset clears recorded ops and keeps loaded textures.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
