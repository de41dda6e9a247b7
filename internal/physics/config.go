package physics

import (
	"fmt"
	"math"

	"physbody-engine/internal/units"
)

// Config holds the simulation constants read once at startup.
// Gravity uses a y-up convention: GravityY = -10 pulls bodies toward the bottom of the screen.
type Config struct {
	GravityX           float64
	GravityY           float64
	PixelsPerUnit      float64
	FixedTimeStep      float64
	VelocityIterations int
	PositionIterations int
	Debug              bool
}

// DefaultConfig returns earth-like gravity, 50 pixels per meter and a 60 Hz step with 6/2 solver iterations.
func DefaultConfig() Config {
	return Config{
		GravityX:           0,
		GravityY:           -10,
		PixelsPerUnit:      units.DefaultPixelsPerUnit,
		FixedTimeStep:      1.0 / 60.0,
		VelocityIterations: 6,
		PositionIterations: 2,
	}
}

func (c Config) validate() error {
	if _, err := units.NewScale(c.PixelsPerUnit); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !(c.FixedTimeStep > 0) || math.IsInf(c.FixedTimeStep, 0) {
		return fmt.Errorf("%w: fixed time step %v", ErrInvalidConfig, c.FixedTimeStep)
	}
	if c.VelocityIterations < 1 || c.PositionIterations < 1 {
		return fmt.Errorf("%w: solver iterations %d/%d", ErrInvalidConfig, c.VelocityIterations, c.PositionIterations)
	}
	if !finite(c.GravityX) || !finite(c.GravityY) {
		return fmt.Errorf("%w: gravity (%v, %v)", ErrInvalidConfig, c.GravityX, c.GravityY)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
