package units

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// DefaultPixelsPerUnit is the scale used when no configuration overrides it (50 px = 1 m).
const DefaultPixelsPerUnit = 50.0

// Scale is the number of render pixels per physics meter. It is fixed at startup
// and owned by the physics module; nothing else should carry its own copy of the factor.
type Scale float64

// NewScale validates ppu and returns it as a Scale. ppu must be positive and finite.
func NewScale(ppu float64) (Scale, error) {
	if ppu <= 0 || math.IsNaN(ppu) || math.IsInf(ppu, 0) {
		return 0, fmt.Errorf("units: pixels per unit must be positive and finite, got %v", ppu)
	}
	return Scale(ppu), nil
}

// PixelsToUnits converts a pixel length or coordinate to meters.
func (s Scale) PixelsToUnits(p float64) float64 {
	return p / float64(s)
}

// UnitsToPixels converts meters to pixels.
func (s Scale) UnitsToPixels(u float64) float64 {
	return u * float64(s)
}

// VecToUnits converts a pixel-space point to meters.
func (s Scale) VecToUnits(v Vec2) Vec2 {
	return Vec2{X: s.PixelsToUnits(v.X), Y: s.PixelsToUnits(v.Y)}
}

// VecToPixels converts a meter-space point to pixels.
func (s Scale) VecToPixels(v Vec2) Vec2 {
	return Vec2{X: s.UnitsToPixels(v.X), Y: s.UnitsToPixels(v.Y)}
}

// ToUnits is PixelsToUnits for any float type (raylib hands out float32 mouse coordinates).
func ToUnits[T constraints.Float](s Scale, p T) T {
	return T(float64(p) / float64(s))
}

// ToPixels is UnitsToPixels for any float type.
func ToPixels[T constraints.Float](s Scale, u T) T {
	return T(float64(u) * float64(s))
}

// RadToDeg converts radians to degrees.
func RadToDeg[T constraints.Float](rad T) T {
	return rad * T(180.0/math.Pi)
}

// DegToRad converts degrees to radians.
func DegToRad[T constraints.Float](deg T) T {
	return deg * T(math.Pi/180.0)
}
