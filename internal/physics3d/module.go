// Package physics3d is the 3D variant of the physics module: spheres and boxes in a small
// rigid-body world, exposed through PhysBody3D handles with full transforms.
package physics3d

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"physbody-engine/internal/collision"
	"physbody-engine/internal/logger"
	"physbody-engine/internal/physics"
)

// Config holds the 3D simulation constants. Gravity is y-up: (0, -9.8, 0) pulls down.
type Config struct {
	GravityX      float32
	GravityY      float32
	GravityZ      float32
	FixedTimeStep float32
	Iterations    int
}

// DefaultConfig returns (0, -9.8, 0) gravity, a 60 Hz step and 4 contact passes.
func DefaultConfig() Config {
	return Config{GravityY: -9.8, FixedTimeStep: 1.0 / 60.0, Iterations: 4}
}

func (c Config) validate() error {
	if !(c.FixedTimeStep > 0) || math32.IsInf(c.FixedTimeStep, 0) {
		return fmt.Errorf("%w: fixed time step %v", physics.ErrInvalidConfig, c.FixedTimeStep)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("%w: iterations %d", physics.ErrInvalidConfig, c.Iterations)
	}
	for _, g := range []float32{c.GravityX, c.GravityY, c.GravityZ} {
		if math32.IsNaN(g) || math32.IsInf(g, 0) {
			return fmt.Errorf("%w: gravity %v", physics.ErrInvalidConfig, g)
		}
	}
	return nil
}

// CollisionListener is notified when a body it is registered on starts touching another body.
type CollisionListener interface {
	OnCollision(self, other *PhysBody3D)
}

// ListenerFunc adapts a function to CollisionListener.
type ListenerFunc func(self, other *PhysBody3D)

func (f ListenerFunc) OnCollision(self, other *PhysBody3D) { f(self, other) }

type slot struct {
	body    *body
	wrapper *PhysBody3D
}

// Module owns the 3D world. It follows the same lifecycle and dispatch rules as the 2D module.
type Module struct {
	cfg Config
	log *logger.Logger

	world  *world
	bodies map[collision.BodyID]slot
	nextID collision.BodyID

	contacts  *collision.Tracker
	listeners *collision.Registry[CollisionListener]

	dispatching    bool
	pending        []collision.BodyID
	pendingSet     map[collision.BodyID]struct{}
	cleanupPending bool
}

func New(cfg Config, log *logger.Logger) (*Module, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("physics3d: %w", err)
	}
	return &Module{
		cfg:        cfg,
		log:        log,
		bodies:     make(map[collision.BodyID]slot),
		contacts:   collision.NewTracker(),
		listeners:  collision.NewRegistry[CollisionListener](),
		pendingSet: make(map[collision.BodyID]struct{}),
	}, nil
}

func (m *Module) Name() string { return "physics3d" }

func (m *Module) Start() error {
	if m.world != nil {
		return nil
	}
	m.log.Log("Creating Physics 3D environment")
	m.world = newWorld(mgl32.Vec3{m.cfg.GravityX, m.cfg.GravityY, m.cfg.GravityZ}, m.cfg.Iterations)
	return nil
}

func (m *Module) PreUpdate(dt float64) error {
	return m.StepSimulation(m.cfg.FixedTimeStep)
}

func (m *Module) Update(dt float64) error { return nil }

func (m *Module) PostUpdate(dt float64) error { return nil }

// CleanUp releases the world and every body. Safe to call repeatedly.
func (m *Module) CleanUp() {
	if m.dispatching {
		m.cleanupPending = true
		return
	}
	if m.world == nil {
		return
	}
	m.log.Log("Destroying physics 3D world")
	m.world = nil
	m.bodies = make(map[collision.BodyID]slot)
	m.pending = nil
	m.pendingSet = make(map[collision.BodyID]struct{})
	m.contacts.Reset()
	m.listeners.Reset()
	m.cleanupPending = false
}

// AddSphere adds a sphere centered at center. mass 0 makes it static.
func (m *Module) AddSphere(center mgl32.Vec3, radius, mass float32) (*PhysBody3D, error) {
	if !finiteVec(center) || !(radius > 0) || math32.IsInf(radius, 0) || !validMass(mass) {
		return nil, fmt.Errorf("physics3d: add sphere r=%v m=%v: %w", radius, mass, physics.ErrInvalidShapeParameter)
	}
	if m.world == nil {
		return nil, fmt.Errorf("physics3d: add sphere: %w", physics.ErrWorldNotInitialized)
	}
	b := newBody(m.next(), Sphere, center, mass)
	b.radius = radius
	return m.insert(b), nil
}

// AddBox adds an axis-aligned box. mass 0 makes it static.
func (m *Module) AddBox(center, halfExtents mgl32.Vec3, mass float32) (*PhysBody3D, error) {
	if !finiteVec(center) || !finiteVec(halfExtents) || !validMass(mass) ||
		!(halfExtents.X() > 0 && halfExtents.Y() > 0 && halfExtents.Z() > 0) {
		return nil, fmt.Errorf("physics3d: add box %v m=%v: %w", halfExtents, mass, physics.ErrInvalidShapeParameter)
	}
	if m.world == nil {
		return nil, fmt.Errorf("physics3d: add box: %w", physics.ErrWorldNotInitialized)
	}
	b := newBody(m.next(), Box, center, mass)
	b.halfExtents = halfExtents
	return m.insert(b), nil
}

func (m *Module) next() collision.BodyID {
	m.nextID++
	return m.nextID
}

func (m *Module) insert(b *body) *PhysBody3D {
	w := &PhysBody3D{id: b.id, m: m, shape: b.shape}
	m.world.add(b)
	m.bodies[b.id] = slot{body: b, wrapper: w}
	return w
}

// StepSimulation advances the world by dt seconds and then notifies listeners of new contacts.
func (m *Module) StepSimulation(dt float32) error {
	if m.world == nil {
		return fmt.Errorf("physics3d: step: %w", physics.ErrWorldNotInitialized)
	}
	if m.dispatching {
		return fmt.Errorf("physics3d: step: %w", physics.ErrWorldLocked)
	}
	if !(dt > 0) || math32.IsInf(dt, 0) {
		return fmt.Errorf("physics3d: step %v: %w", dt, physics.ErrInvalidConfig)
	}
	m.world.step(dt, m.contacts)
	m.dispatch()
	return nil
}

// DestroyBody removes b's body. During dispatch the removal waits until every listener has run;
// b is no longer Valid in the meantime but Transform still answers.
func (m *Module) DestroyBody(b *PhysBody3D) error {
	if b == nil || b.m != m {
		return fmt.Errorf("physics3d: destroy: %w", physics.ErrUseAfterDestroy)
	}
	if _, ok := m.bodies[b.id]; !ok {
		return fmt.Errorf("physics3d: destroy body %d: %w", b.id, physics.ErrUseAfterDestroy)
	}
	if _, ok := m.pendingSet[b.id]; ok {
		return fmt.Errorf("physics3d: destroy body %d: %w", b.id, physics.ErrUseAfterDestroy)
	}
	if m.dispatching {
		m.pendingSet[b.id] = struct{}{}
		m.pending = append(m.pending, b.id)
		return nil
	}
	m.remove(b.id)
	return nil
}

func (m *Module) remove(id collision.BodyID) {
	m.world.remove(id)
	delete(m.bodies, id)
	m.contacts.Forget(id)
	m.listeners.Drop(id)
}

// RegisterListener appends l to b's notification list.
func (m *Module) RegisterListener(b *PhysBody3D, l CollisionListener) (collision.ListenerID, error) {
	if l == nil {
		return 0, fmt.Errorf("physics3d: register listener: nil listener")
	}
	if !b.Valid() || b.m != m {
		return 0, fmt.Errorf("physics3d: register listener: %w", physics.ErrUseAfterDestroy)
	}
	id := m.listeners.Add(l)
	if err := m.listeners.Subscribe(b.id, id); err != nil {
		return 0, fmt.Errorf("physics3d: register listener: %w", err)
	}
	return id, nil
}

func (m *Module) UnregisterListener(b *PhysBody3D, id collision.ListenerID) error {
	if !b.Valid() || b.m != m {
		return fmt.Errorf("physics3d: unregister listener: %w", physics.ErrUseAfterDestroy)
	}
	if !m.listeners.Subscribed(b.id, id) {
		return fmt.Errorf("physics3d: unregister listener %d: %w", id, collision.ErrUnknownListener)
	}
	m.listeners.Remove(id)
	return nil
}

// SetVelocity sets the linear velocity of a dynamic body.
func (m *Module) SetVelocity(b *PhysBody3D, v mgl32.Vec3) error {
	body, err := b.lookup()
	if err != nil {
		return err
	}
	if !body.static() {
		body.velocity = v
	}
	return nil
}

// SetAngularVelocity sets the spin of a dynamic body in radians per second.
func (m *Module) SetAngularVelocity(b *PhysBody3D, w mgl32.Vec3) error {
	body, err := b.lookup()
	if err != nil {
		return err
	}
	if !body.static() {
		body.angular = w
	}
	return nil
}

func (m *Module) BodyCount() int { return len(m.bodies) }

func (m *Module) dispatch() {
	pairs := m.contacts.Drain()
	if len(pairs) == 0 {
		return
	}
	m.dispatching = true
	for _, p := range pairs {
		a, okA := m.bodies[p.A]
		b, okB := m.bodies[p.B]
		if !okA || !okB {
			continue
		}
		m.listeners.Notify(p, func(l CollisionListener, self, other collision.BodyID) {
			if self == p.A {
				l.OnCollision(a.wrapper, b.wrapper)
				return
			}
			l.OnCollision(b.wrapper, a.wrapper)
		})
	}
	m.dispatching = false

	for _, id := range m.pending {
		m.remove(id)
		delete(m.pendingSet, id)
	}
	m.pending = m.pending[:0]
	if m.cleanupPending {
		m.CleanUp()
	}
}

func validMass(mass float32) bool {
	return mass >= 0 && !math32.IsInf(mass, 0) && !math32.IsNaN(mass)
}

func finiteVec(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
