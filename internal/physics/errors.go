package physics

import "errors"

var (
	// ErrInvalidShapeParameter is returned for non-positive radius or extents and degenerate polygons.
	ErrInvalidShapeParameter = errors.New("invalid shape parameter")
	// ErrUseAfterDestroy is returned when a body handle is used after its body was removed.
	ErrUseAfterDestroy = errors.New("body already destroyed")
	// ErrWorldNotInitialized is returned by factories and Step before Start or after CleanUp.
	ErrWorldNotInitialized = errors.New("world not initialized")
	// ErrInvalidConfig is returned by New for unusable configuration values.
	ErrInvalidConfig = errors.New("invalid physics config")
	// ErrWorldLocked is returned when the world is asked to change while Box2D is inside a step.
	ErrWorldLocked = errors.New("world is locked")
)
