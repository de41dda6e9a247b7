package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"physbody-engine/internal/units"
)

type bodyOptions struct {
	density       float64
	friction      float64
	restitution   float64
	anchor        *units.Vec2
	sensor        bool
	fixedRotation bool
}

func defaultBodyOptions() bodyOptions {
	return bodyOptions{density: 1, friction: 0.2, restitution: 0}
}

// BodyOption overrides one fixture or body default at creation time.
type BodyOption func(*bodyOptions)

func WithDensity(d float64) BodyOption { return func(o *bodyOptions) { o.density = d } }

func WithFriction(f float64) BodyOption { return func(o *bodyOptions) { o.friction = f } }

func WithRestitution(r float64) BodyOption { return func(o *bodyOptions) { o.restitution = r } }

// WithAnchor sets the pixel offset subtracted from the body center by PhysBody.Position.
func WithAnchor(a units.Vec2) BodyOption {
	return func(o *bodyOptions) { o.anchor = &a }
}

// WithSensor makes the fixture report contacts without a collision response.
func WithSensor() BodyOption { return func(o *bodyOptions) { o.sensor = true } }

func WithFixedRotation() BodyOption { return func(o *bodyOptions) { o.fixedRotation = true } }

func (o bodyOptions) validate() error {
	if o.density < 0 || !finite(o.density) {
		return fmt.Errorf("%w: density %v", ErrInvalidShapeParameter, o.density)
	}
	if o.friction < 0 || !finite(o.friction) {
		return fmt.Errorf("%w: friction %v", ErrInvalidShapeParameter, o.friction)
	}
	if o.restitution < 0 || !finite(o.restitution) {
		return fmt.Errorf("%w: restitution %v", ErrInvalidShapeParameter, o.restitution)
	}
	if o.anchor != nil && !finiteVec(*o.anchor) {
		return fmt.Errorf("%w: anchor %v", ErrInvalidShapeParameter, *o.anchor)
	}
	return nil
}

// CreateCircle adds a circle of radius pixels centered at origin (pixels).
// The default anchor is (radius, radius), the top-left corner of the sprite.
func (m *Module) CreateCircle(origin units.Vec2, radius float64, kind BodyKind, opts ...BodyOption) (*PhysBody, error) {
	if !finiteVec(origin) || !(radius > 0) || !finite(radius) {
		return nil, fmt.Errorf("physics: create circle r=%v at %v: %w", radius, origin, ErrInvalidShapeParameter)
	}
	shape := box2d.MakeB2CircleShape()
	shape.M_radius = m.scale.PixelsToUnits(radius)
	return m.spawn("circle", origin, kind, &shape, ShapeCircle, units.V(radius, radius), opts)
}

// CreateBox adds an axis-aligned box with the given half extents (pixels) centered at origin.
// The default anchor is (halfWidth, halfHeight).
func (m *Module) CreateBox(origin units.Vec2, halfWidth, halfHeight float64, kind BodyKind, opts ...BodyOption) (*PhysBody, error) {
	if !finiteVec(origin) || !(halfWidth > 0) || !(halfHeight > 0) || !finite(halfWidth) || !finite(halfHeight) {
		return nil, fmt.Errorf("physics: create box %vx%v at %v: %w", halfWidth, halfHeight, origin, ErrInvalidShapeParameter)
	}
	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(m.scale.PixelsToUnits(halfWidth), m.scale.PixelsToUnits(halfHeight))
	return m.spawn("box", origin, kind, &shape, ShapeBox, units.V(halfWidth, halfHeight), opts)
}

// CreateChain adds a closed loop through vertices, given in pixels relative to origin.
// The loop needs at least three distinct points and no zero-length edge, the closing
// edge from the last point back to the first included. The default anchor is (0, 0).
func (m *Module) CreateChain(origin units.Vec2, vertices []units.Vec2, kind BodyKind, opts ...BodyOption) (*PhysBody, error) {
	if !finiteVec(origin) {
		return nil, fmt.Errorf("physics: create chain at %v: %w", origin, ErrInvalidShapeParameter)
	}
	verts, err := m.chainVertices(vertices)
	if err != nil {
		return nil, fmt.Errorf("physics: create chain: %w", err)
	}
	shape := box2d.MakeB2ChainShape()
	shape.CreateLoop(verts, len(verts))
	return m.spawn("chain", origin, kind, &shape, ShapeChain, units.Vec2{}, opts)
}

// chainVertices converts to meters and rejects anything Box2D would assert on.
func (m *Module) chainVertices(vertices []units.Vec2) ([]box2d.B2Vec2, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: chain needs at least 3 points, got %d", ErrInvalidShapeParameter, len(vertices))
	}
	const minDist2 = box2d.B2_linearSlop * box2d.B2_linearSlop
	verts := make([]box2d.B2Vec2, len(vertices))
	for i, v := range vertices {
		if !finiteVec(v) {
			return nil, fmt.Errorf("%w: vertex %d is not finite", ErrInvalidShapeParameter, i)
		}
		verts[i] = toB2(m.scale.VecToUnits(v))
	}
	for i := range verts {
		next := (i + 1) % len(verts)
		if fromB2(verts[i]).DistanceSquared(fromB2(verts[next])) <= minDist2 {
			return nil, fmt.Errorf("%w: vertices %d and %d coincide", ErrInvalidShapeParameter, i, next)
		}
	}
	distinct := 0
	for i := range verts {
		dup := false
		for j := 0; j < i; j++ {
			if fromB2(verts[i]).DistanceSquared(fromB2(verts[j])) <= minDist2 {
				dup = true
				break
			}
		}
		if !dup {
			distinct++
		}
	}
	if distinct < 3 {
		return nil, fmt.Errorf("%w: chain has %d distinct points", ErrInvalidShapeParameter, distinct)
	}
	return verts, nil
}

func (m *Module) spawn(what string, origin units.Vec2, kind BodyKind, shape box2d.B2ShapeInterface, sk ShapeKind, anchor units.Vec2, opts []BodyOption) (*PhysBody, error) {
	if err := m.ready(); err != nil {
		return nil, fmt.Errorf("physics: create %s: %w", what, err)
	}
	bt, err := kind.b2()
	if err != nil {
		return nil, fmt.Errorf("physics: create %s: %w", what, err)
	}
	o := defaultBodyOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("physics: create %s: %w", what, err)
	}
	if o.anchor != nil {
		anchor = *o.anchor
	}

	m.nextID++
	id := m.nextID

	def := box2d.MakeB2BodyDef()
	def.Type = bt
	def.Position = toB2(m.scale.VecToUnits(origin))
	def.FixedRotation = o.fixedRotation
	def.UserData = id
	body := m.world.CreateBody(&def)

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = shape
	fd.Density = o.density
	fd.Friction = o.friction
	fd.Restitution = o.restitution
	fd.IsSensor = o.sensor
	body.CreateFixtureFromDef(&fd)

	w := &PhysBody{id: id, m: m, anchor: anchor, kind: kind, shape: sk}
	m.bodies[id] = slot{body: body, wrapper: w}
	m.order = append(m.order, id)
	return w, nil
}

func finiteVec(v units.Vec2) bool {
	return finite(v.X) && finite(v.Y)
}
