package physics3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"physbody-engine/internal/collision"
)

// world holds the bodies and runs a simple 3D step: gravity, integration, then pairwise push-apart.
type world struct {
	gravity    mgl32.Vec3
	iterations int
	bodies     []*body
	// overlapping pairs seen by the previous step
	overlap map[collision.Pair]struct{}
}

func newWorld(gravity mgl32.Vec3, iterations int) *world {
	return &world{
		gravity:    gravity,
		iterations: iterations,
		overlap:    make(map[collision.Pair]struct{}),
	}
}

func (w *world) add(b *body) {
	w.bodies = append(w.bodies, b)
}

func (w *world) remove(id collision.BodyID) {
	for i, b := range w.bodies {
		if b.id == id {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for p := range w.overlap {
		if p.A == id || p.B == id {
			delete(w.overlap, p)
		}
	}
}

// step advances the simulation by dt seconds and reports pair transitions to t.
// No global floor: dynamic bodies fall until they hit another body (e.g. a static ground box).
func (w *world) step(dt float32, t *collision.Tracker) {
	for _, b := range w.bodies {
		if b.static() {
			continue
		}
		b.velocity = b.velocity.Add(w.gravity.Mul(dt))
		b.position = b.position.Add(b.velocity.Mul(dt))
		if b.angular.Len() > 0 {
			spin := mgl32.Quat{W: 0, V: b.angular.Mul(0.5 * dt)}
			b.orientation = b.orientation.Add(spin.Mul(b.orientation)).Normalize()
		}
	}

	seen := make(map[collision.Pair]struct{})
	for it := 0; it < w.iterations; it++ {
		for i := 0; i < len(w.bodies); i++ {
			for j := i + 1; j < len(w.bodies); j++ {
				a, b := w.bodies[i], w.bodies[j]
				if a.static() && b.static() {
					continue
				}
				normal, depth, ok := penetration(a, b)
				if !ok {
					continue
				}
				seen[collision.MakePair(a.id, b.id)] = struct{}{}
				resolve(a, b, normal, depth)
			}
		}
	}

	for p := range seen {
		if _, was := w.overlap[p]; !was {
			t.Begin(p.A, p.B)
		}
	}
	for p := range w.overlap {
		if _, still := seen[p]; !still {
			t.End(p.A, p.B)
		}
	}
	w.overlap = seen
}

// resolve pushes a and b apart along normal (pointing from a to b), split by inverse mass,
// and removes the approaching part of their velocities.
func resolve(a, b *body, normal mgl32.Vec3, depth float32) {
	total := a.invMass + b.invMass
	if total == 0 {
		return
	}
	a.position = a.position.Sub(normal.Mul(depth * a.invMass / total))
	b.position = b.position.Add(normal.Mul(depth * b.invMass / total))

	if !a.static() {
		if vn := a.velocity.Dot(normal); vn > 0 {
			a.velocity = a.velocity.Sub(normal.Mul(vn))
		}
	}
	if !b.static() {
		if vn := b.velocity.Dot(normal); vn < 0 {
			b.velocity = b.velocity.Sub(normal.Mul(vn))
		}
	}
}

// penetration returns the contact normal from a to b and the overlap depth.
func penetration(a, b *body) (normal mgl32.Vec3, depth float32, ok bool) {
	switch {
	case a.shape == Sphere && b.shape == Sphere:
		return sphereSphere(a.position, a.radius, b.position, b.radius)
	case a.shape == Sphere && b.shape == Box:
		n, d, ok := sphereBox(a.position, a.radius, b)
		return n.Mul(-1), d, ok
	case a.shape == Box && b.shape == Sphere:
		return sphereBox(b.position, b.radius, a)
	default:
		return boxBox(a, b)
	}
}

func sphereSphere(pa mgl32.Vec3, ra float32, pb mgl32.Vec3, rb float32) (mgl32.Vec3, float32, bool) {
	d := pb.Sub(pa)
	dist := d.Len()
	depth := ra + rb - dist
	if depth <= 0 {
		return mgl32.Vec3{}, 0, false
	}
	if dist == 0 {
		return mgl32.Vec3{0, 1, 0}, depth, true
	}
	return d.Mul(1 / dist), depth, true
}

// sphereBox returns the normal pointing from the box toward the sphere.
func sphereBox(center mgl32.Vec3, radius float32, box *body) (mgl32.Vec3, float32, bool) {
	lo, hi := box.bounds()
	closest := mgl32.Vec3{
		mgl32.Clamp(center.X(), lo.X(), hi.X()),
		mgl32.Clamp(center.Y(), lo.Y(), hi.Y()),
		mgl32.Clamp(center.Z(), lo.Z(), hi.Z()),
	}
	d := center.Sub(closest)
	dist := d.Len()
	if dist > 0 {
		if dist >= radius {
			return mgl32.Vec3{}, 0, false
		}
		return d.Mul(1 / dist), radius - dist, true
	}
	// Center inside the box: leave through the nearest face.
	best := math32.Inf(1)
	var normal mgl32.Vec3
	for axis := 0; axis < 3; axis++ {
		if toLo := center[axis] - lo[axis]; toLo < best {
			best = toLo
			normal = mgl32.Vec3{}
			normal[axis] = -1
		}
		if toHi := hi[axis] - center[axis]; toHi < best {
			best = toHi
			normal = mgl32.Vec3{}
			normal[axis] = 1
		}
	}
	return normal, best + radius, true
}

// boxBox pushes apart along the axis of minimum penetration.
func boxBox(a, b *body) (mgl32.Vec3, float32, bool) {
	aLo, aHi := a.bounds()
	bLo, bHi := b.bounds()
	depth := math32.Inf(1)
	axis := -1
	for i := 0; i < 3; i++ {
		o := math32.Min(aHi[i], bHi[i]) - math32.Max(aLo[i], bLo[i])
		if o <= 0 {
			return mgl32.Vec3{}, 0, false
		}
		if o < depth {
			depth = o
			axis = i
		}
	}
	var normal mgl32.Vec3
	normal[axis] = 1
	if b.position[axis] < a.position[axis] {
		normal[axis] = -1
	}
	return normal, depth, true
}
