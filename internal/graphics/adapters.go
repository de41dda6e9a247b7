package graphics

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physbody-engine/internal/input"
	"physbody-engine/internal/render"
	"physbody-engine/internal/units"
)

// Input reads keys and the mouse from raylib. While Blocked reports true no key is seen as pressed.
type Input struct {
	Blocked func() bool
}

func (in *Input) KeyPressed(k input.Key) bool {
	if in.Blocked != nil && in.Blocked() {
		return false
	}
	return rl.IsKeyPressed(int32(k))
}

func (in *Input) MousePosition() units.Vec2 {
	p := rl.GetMousePosition()
	return units.V(float64(p.X), float64(p.Y))
}

// Sink draws through raylib. Textures are decoded with render.LoadImage and uploaded once per path.
type Sink struct {
	// MaxSpriteSide caps the longest side of a loaded sprite; 0 keeps the original size.
	MaxSpriteSide int

	textures []rl.Texture2D
	byPath   map[string]render.Texture
}

func NewSink(maxSpriteSide int) *Sink {
	return &Sink{MaxSpriteSide: maxSpriteSide, byPath: make(map[string]render.Texture)}
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func (s *Sink) DrawCircle(x, y, radius float32, c color.RGBA) {
	rl.DrawCircleLines(int32(x), int32(y), radius, rlColor(c))
}

func (s *Sink) DrawLine(x1, y1, x2, y2 float32, c color.RGBA) {
	rl.DrawLineV(rl.NewVector2(x1, y1), rl.NewVector2(x2, y2), rlColor(c))
}

// Blit draws tex with its top-left corner at (x, y), rotated about the sprite center.
func (s *Sink) Blit(tex render.Texture, x, y float32, rotationDeg float64) {
	i := int(tex) - 1
	if i < 0 || i >= len(s.textures) {
		return
	}
	t := s.textures[i]
	w, h := float32(t.Width), float32(t.Height)
	src := rl.NewRectangle(0, 0, w, h)
	dst := rl.NewRectangle(x+w/2, y+h/2, w, h)
	rl.DrawTexturePro(t, src, dst, rl.NewVector2(w/2, h/2), float32(rotationDeg), rl.White)
}

func (s *Sink) LoadTexture(path string) (render.Texture, error) {
	if t, ok := s.byPath[path]; ok {
		return t, nil
	}
	img, err := render.LoadImage(path, s.MaxSpriteSide)
	if err != nil {
		return render.NoTexture, err
	}
	rlImg := rl.NewImageFromImage(img)
	t := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	if !rl.IsTextureValid(t) {
		return render.NoTexture, fmt.Errorf("graphics: upload %s failed", path)
	}
	s.textures = append(s.textures, t)
	h := render.Texture(len(s.textures))
	s.byPath[path] = h
	return h, nil
}

// Unload frees every uploaded texture.
func (s *Sink) Unload() {
	for _, t := range s.textures {
		rl.UnloadTexture(t)
	}
	s.textures = nil
	s.byPath = make(map[string]render.Texture)
}
