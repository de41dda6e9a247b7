package physics

import (
	"fmt"

	"physbody-engine/internal/collision"
	"physbody-engine/internal/units"
)

// PhysBody is a handle to one body in a Module. It stores the body id and render metadata
// only; position and rotation are read from the live Box2D body on every call.
type PhysBody struct {
	id     collision.BodyID
	m      *Module
	anchor units.Vec2
	kind   BodyKind
	shape  ShapeKind
}

func (b *PhysBody) ID() collision.BodyID { return b.id }

func (b *PhysBody) Kind() BodyKind { return b.kind }

func (b *PhysBody) Shape() ShapeKind { return b.shape }

// Valid reports whether the body exists and no DestroyBody is waiting on it.
func (b *PhysBody) Valid() bool {
	if b == nil || b.m == nil {
		return false
	}
	if _, doomed := b.m.pendingSet[b.id]; doomed {
		return false
	}
	_, ok := b.m.bodies[b.id]
	return ok
}

// Anchor returns the pixel offset subtracted from the center by Position.
func (b *PhysBody) Anchor() units.Vec2 { return b.anchor }

func (b *PhysBody) SetAnchor(a units.Vec2) { b.anchor = a }

// Center returns the body origin in pixels.
func (b *PhysBody) Center() (units.Vec2, error) {
	if b == nil || b.m == nil {
		return units.Vec2{}, fmt.Errorf("physics: center: %w", ErrUseAfterDestroy)
	}
	body, err := b.m.lookup(b.id)
	if err != nil {
		return units.Vec2{}, err
	}
	return b.m.scale.VecToPixels(fromB2(body.GetPosition())), nil
}

// Position returns the sprite draw position in pixels: the body center minus the anchor.
func (b *PhysBody) Position() (units.Vec2, error) {
	c, err := b.Center()
	if err != nil {
		return units.Vec2{}, err
	}
	return c.Sub(b.anchor), nil
}

// Rotation returns the body angle in degrees.
func (b *PhysBody) Rotation() (float64, error) {
	if b == nil || b.m == nil {
		return 0, fmt.Errorf("physics: rotation: %w", ErrUseAfterDestroy)
	}
	body, err := b.m.lookup(b.id)
	if err != nil {
		return 0, err
	}
	return units.RadToDeg(body.GetAngle()), nil
}

func (b *PhysBody) String() string {
	return fmt.Sprintf("%s#%d(%s)", b.shape, b.id, b.kind)
}
