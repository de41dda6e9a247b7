package physics3d

import (
	"github.com/go-gl/mathgl/mgl32"

	"physbody-engine/internal/collision"
)

// Shape is the collision shape of a 3D body.
type Shape int

const (
	Sphere Shape = iota
	Box
)

func (s Shape) String() string {
	if s == Sphere {
		return "sphere"
	}
	return "box"
}

// body is a rigid body owned by the world. Static bodies (mass 0) never move and are not affected by gravity.
type body struct {
	id          collision.BodyID
	shape       Shape
	position    mgl32.Vec3
	orientation mgl32.Quat
	velocity    mgl32.Vec3
	angular     mgl32.Vec3
	radius      float32
	halfExtents mgl32.Vec3
	invMass     float32
}

func newBody(id collision.BodyID, shape Shape, center mgl32.Vec3, mass float32) *body {
	b := &body{
		id:          id,
		shape:       shape,
		position:    center,
		orientation: mgl32.QuatIdent(),
	}
	if mass > 0 {
		b.invMass = 1 / mass
	}
	return b
}

func (b *body) static() bool { return b.invMass == 0 }

// bounds returns the axis-aligned box around the body. Boxes ignore orientation for collision.
func (b *body) bounds() (lo, hi mgl32.Vec3) {
	half := b.halfExtents
	if b.shape == Sphere {
		half = mgl32.Vec3{b.radius, b.radius, b.radius}
	}
	return b.position.Sub(half), b.position.Add(half)
}

// transform is the translation times rotation matrix for render nodes.
func (b *body) transform() mgl32.Mat4 {
	return mgl32.Translate3D(b.position.X(), b.position.Y(), b.position.Z()).Mul4(b.orientation.Mat4())
}
