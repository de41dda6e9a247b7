package physics3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"physbody-engine/internal/collision"
	"physbody-engine/internal/physics"
)

// PhysBody3D is a handle to one body in a 3D Module. Reads always come from the live body.
type PhysBody3D struct {
	id    collision.BodyID
	m     *Module
	shape Shape
}

func (b *PhysBody3D) ID() collision.BodyID { return b.id }

func (b *PhysBody3D) Shape() Shape { return b.shape }

func (b *PhysBody3D) Valid() bool {
	if b == nil || b.m == nil {
		return false
	}
	if _, doomed := b.m.pendingSet[b.id]; doomed {
		return false
	}
	_, ok := b.m.bodies[b.id]
	return ok
}

func (b *PhysBody3D) lookup() (*body, error) {
	if b == nil || b.m == nil {
		return nil, fmt.Errorf("physics3d: %w", physics.ErrUseAfterDestroy)
	}
	s, ok := b.m.bodies[b.id]
	if !ok {
		return nil, fmt.Errorf("physics3d: body %d: %w", b.id, physics.ErrUseAfterDestroy)
	}
	return s.body, nil
}

// Position returns the body center in world units.
func (b *PhysBody3D) Position() (mgl32.Vec3, error) {
	body, err := b.lookup()
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return body.position, nil
}

// Rotation returns the body orientation.
func (b *PhysBody3D) Rotation() (mgl32.Quat, error) {
	body, err := b.lookup()
	if err != nil {
		return mgl32.Quat{}, err
	}
	return body.orientation, nil
}

// Transform returns the orientation and position of the body as one matrix.
func (b *PhysBody3D) Transform() (mgl32.Mat4, error) {
	body, err := b.lookup()
	if err != nil {
		return mgl32.Mat4{}, err
	}
	return body.transform(), nil
}

// Size returns the radius for spheres (all three components) or the half extents for boxes.
func (b *PhysBody3D) Size() (mgl32.Vec3, error) {
	body, err := b.lookup()
	if err != nil {
		return mgl32.Vec3{}, err
	}
	if body.shape == Sphere {
		return mgl32.Vec3{body.radius, body.radius, body.radius}, nil
	}
	return body.halfExtents, nil
}

func (b *PhysBody3D) String() string {
	return fmt.Sprintf("%s#%d", b.shape, b.id)
}
