package physics

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"

	"physbody-engine/internal/collision"
	"physbody-engine/internal/input"
	"physbody-engine/internal/logger"
	"physbody-engine/internal/render"
	"physbody-engine/internal/units"
)

// BodyKind selects how Box2D simulates a body.
type BodyKind int

const (
	Static BodyKind = iota
	Kinematic
	Dynamic
)

func (k BodyKind) String() string {
	switch k {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	}
	return fmt.Sprintf("BodyKind(%d)", int(k))
}

func (k BodyKind) b2() (uint8, error) {
	switch k {
	case Static:
		return box2d.B2BodyType.B2_staticBody, nil
	case Kinematic:
		return box2d.B2BodyType.B2_kinematicBody, nil
	case Dynamic:
		return box2d.B2BodyType.B2_dynamicBody, nil
	}
	return 0, fmt.Errorf("%w: unknown body kind %d", ErrInvalidShapeParameter, int(k))
}

// ShapeKind is the shape a body was created with.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
	ShapeChain
)

func (s ShapeKind) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeBox:
		return "box"
	case ShapeChain:
		return "chain"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(s))
}

// BodyState is a pixel-space snapshot of one body, safe to hand to other goroutines.
type BodyState struct {
	ID       uint64  `json:"id"`
	Shape    string  `json:"shape"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

type slot struct {
	body    *box2d.B2Body
	wrapper *PhysBody
}

// Module owns the Box2D world and every body in it. Bodies are kept in an arena keyed by
// collision.BodyID; callers only ever hold *PhysBody handles that carry the id.
type Module struct {
	cfg   Config
	scale units.Scale
	log   *logger.Logger
	in    input.Source
	out   render.Sink

	world  *box2d.B2World
	bodies map[collision.BodyID]slot
	order  []collision.BodyID
	nextID collision.BodyID

	contacts  *collision.Tracker
	listeners *collision.Registry[CollisionListener]

	dispatching    bool
	pending        []collision.BodyID
	pendingSet     map[collision.BodyID]struct{}
	cleanupPending bool

	debug bool
	tick  uint64
}

// New validates cfg and returns a module that is ready for Start. in and out may be nil
// (no debug toggle, no debug draw).
func New(cfg Config, log *logger.Logger, in input.Source, out render.Sink) (*Module, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("physics: %w", err)
	}
	scale, _ := units.NewScale(cfg.PixelsPerUnit)
	return &Module{
		cfg:        cfg,
		scale:      scale,
		log:        log,
		in:         in,
		out:        out,
		bodies:     make(map[collision.BodyID]slot),
		contacts:   collision.NewTracker(),
		listeners:  collision.NewRegistry[CollisionListener](),
		pendingSet: make(map[collision.BodyID]struct{}),
		debug:      cfg.Debug,
	}, nil
}

func (m *Module) Name() string { return "physics2d" }

// Start creates the world. Calling it on a running module does nothing.
func (m *Module) Start() error {
	if m.world != nil {
		return nil
	}
	m.log.Log("Creating Physics 2D environment")
	w := box2d.MakeB2World(box2d.MakeB2Vec2(m.cfg.GravityX, -m.cfg.GravityY))
	m.world = &w
	m.world.SetContactListener(&contactListener{m: m})
	return nil
}

// PreUpdate advances the world by the configured fixed step.
func (m *Module) PreUpdate(dt float64) error {
	return m.StepSimulation(m.cfg.FixedTimeStep)
}

func (m *Module) Update(dt float64) error { return nil }

// PostUpdate toggles debug drawing on F1 and draws every fixture when it is on.
func (m *Module) PostUpdate(dt float64) error {
	if m.in != nil && m.in.KeyPressed(input.KeyF1) {
		m.debug = !m.debug
	}
	if m.debug && m.world != nil && m.out != nil {
		m.drawDebug(m.out)
	}
	return nil
}

// CleanUp destroys the world together with every body it owns and invalidates all handles.
// It never fails and may be called any number of times.
func (m *Module) CleanUp() {
	if m.dispatching {
		m.cleanupPending = true
		return
	}
	if m.world == nil {
		return
	}
	m.log.Log("Destroying physics world")
	m.world.SetContactListener(nil)
	m.world.Destroy()
	m.world = nil
	m.bodies = make(map[collision.BodyID]slot)
	m.order = nil
	m.pending = nil
	m.pendingSet = make(map[collision.BodyID]struct{})
	m.contacts.Reset()
	m.listeners.Reset()
	m.cleanupPending = false
}

// StepSimulation advances the world by dt seconds using the configured solver iterations,
// then notifies listeners about pairs that came into contact during the step. Bodies
// destroyed by listeners are removed once every notification for the step has been made.
func (m *Module) StepSimulation(dt float64) error {
	if m.world == nil {
		return fmt.Errorf("physics: step: %w", ErrWorldNotInitialized)
	}
	if m.dispatching || m.world.IsLocked() {
		return fmt.Errorf("physics: step: %w", ErrWorldLocked)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("physics: step %v: %w", dt, ErrInvalidConfig)
	}
	m.world.Step(dt, m.cfg.VelocityIterations, m.cfg.PositionIterations)
	m.tick++
	m.dispatch()
	return nil
}

// DestroyBody removes b's body from the world and invalidates b. Its listener
// subscriptions and contact state go with it. Called from a listener, b reports
// Valid false at once but its getters keep working until dispatch ends.
func (m *Module) DestroyBody(b *PhysBody) error {
	if b == nil || b.m != m {
		return fmt.Errorf("physics: destroy: %w", ErrUseAfterDestroy)
	}
	if _, ok := m.bodies[b.id]; !ok {
		return fmt.Errorf("physics: destroy body %d: %w", b.id, ErrUseAfterDestroy)
	}
	if _, ok := m.pendingSet[b.id]; ok {
		return fmt.Errorf("physics: destroy body %d: %w", b.id, ErrUseAfterDestroy)
	}
	if m.dispatching {
		m.pendingSet[b.id] = struct{}{}
		m.pending = append(m.pending, b.id)
		return nil
	}
	if m.world.IsLocked() {
		return fmt.Errorf("physics: destroy body %d: %w", b.id, ErrWorldLocked)
	}
	m.remove(b.id)
	return nil
}

func (m *Module) remove(id collision.BodyID) {
	s, ok := m.bodies[id]
	if !ok {
		return
	}
	m.world.DestroyBody(s.body)
	delete(m.bodies, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.contacts.Forget(id)
	m.listeners.Drop(id)
}

// Bodies returns live handles in creation order.
func (m *Module) Bodies() []*PhysBody {
	out := make([]*PhysBody, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.bodies[id].wrapper)
	}
	return out
}

// BodyCount returns the number of live bodies.
func (m *Module) BodyCount() int {
	return len(m.bodies)
}

// Scale returns the pixels-per-meter factor used at every boundary crossing.
func (m *Module) Scale() units.Scale {
	return m.scale
}

// Tick returns how many steps have been taken since the module was created.
func (m *Module) Tick() uint64 {
	return m.tick
}

// Snapshot returns the pixel-space center and rotation of every live body.
func (m *Module) Snapshot() []BodyState {
	out := make([]BodyState, 0, len(m.order))
	for _, id := range m.order {
		s := m.bodies[id]
		c := m.scale.VecToPixels(fromB2(s.body.GetPosition()))
		out = append(out, BodyState{
			ID:       uint64(id),
			Shape:    s.wrapper.shape.String(),
			X:        c.X,
			Y:        c.Y,
			Rotation: units.RadToDeg(s.body.GetAngle()),
		})
	}
	return out
}

// SetGravity changes gravity (y-up convention, same as Config) for the running world.
func (m *Module) SetGravity(x, y float64) error {
	if m.world == nil {
		return fmt.Errorf("physics: set gravity: %w", ErrWorldNotInitialized)
	}
	if !finite(x) || !finite(y) {
		return fmt.Errorf("physics: set gravity: %w: (%v, %v)", ErrInvalidConfig, x, y)
	}
	m.cfg.GravityX, m.cfg.GravityY = x, y
	m.world.SetGravity(box2d.MakeB2Vec2(x, -y))
	for b := m.world.GetBodyList(); b != nil; b = b.GetNext() {
		if b.GetType() == box2d.B2BodyType.B2_dynamicBody {
			b.SetAwake(true)
		}
	}
	return nil
}

// Gravity returns the configured gravity in the y-up convention.
func (m *Module) Gravity() (x, y float64) {
	return m.cfg.GravityX, m.cfg.GravityY
}

func (m *Module) SetDebug(on bool) { m.debug = on }

func (m *Module) Debug() bool { return m.debug }

func (m *Module) ready() error {
	if m.world == nil {
		return ErrWorldNotInitialized
	}
	if m.world.IsLocked() {
		return ErrWorldLocked
	}
	return nil
}

func (m *Module) lookup(id collision.BodyID) (*box2d.B2Body, error) {
	s, ok := m.bodies[id]
	if !ok {
		return nil, fmt.Errorf("physics: body %d: %w", id, ErrUseAfterDestroy)
	}
	return s.body, nil
}

func toB2(v units.Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X, v.Y)
}

func fromB2(v box2d.B2Vec2) units.Vec2 {
	return units.Vec2{X: v.X, Y: v.Y}
}
