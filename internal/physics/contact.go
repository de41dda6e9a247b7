package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"physbody-engine/internal/collision"
)

// CollisionListener is notified when a body it is registered on starts touching another body.
// self is the body the listener was registered on.
type CollisionListener interface {
	OnCollision(self, other *PhysBody)
}

// ListenerFunc adapts a function to CollisionListener.
type ListenerFunc func(self, other *PhysBody)

func (f ListenerFunc) OnCollision(self, other *PhysBody) { f(self, other) }

// RegisterListener appends l to b's notification list and returns the id to unregister it.
// Registering the same listener twice on one body means two notifications per contact.
func (m *Module) RegisterListener(b *PhysBody, l CollisionListener) (collision.ListenerID, error) {
	if l == nil {
		return 0, fmt.Errorf("physics: register listener: nil listener")
	}
	if !b.Valid() || b.m != m {
		return 0, fmt.Errorf("physics: register listener: %w", ErrUseAfterDestroy)
	}
	id := m.listeners.Add(l)
	if err := m.listeners.Subscribe(b.id, id); err != nil {
		return 0, fmt.Errorf("physics: register listener: %w", err)
	}
	return id, nil
}

// UnregisterListener removes the listener registered on b under id.
func (m *Module) UnregisterListener(b *PhysBody, id collision.ListenerID) error {
	if !b.Valid() || b.m != m {
		return fmt.Errorf("physics: unregister listener: %w", ErrUseAfterDestroy)
	}
	if !m.listeners.Subscribed(b.id, id) {
		return fmt.Errorf("physics: unregister listener %d: %w", id, collision.ErrUnknownListener)
	}
	m.listeners.Remove(id)
	return nil
}

// dispatch runs after world.Step returned, so listeners may create bodies.
// Destroys they request are queued and applied once every pair has been notified.
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

// contactListener feeds Box2D fixture contacts into the body-level tracker. It runs inside
// world.Step with the world locked and must not call back into user code.
type contactListener struct {
	m *Module
}

func (c *contactListener) BeginContact(contact box2d.B2ContactInterface) {
	if a, b, ok := contactBodies(contact); ok {
		c.m.contacts.Begin(a, b)
	}
}

func (c *contactListener) EndContact(contact box2d.B2ContactInterface) {
	if a, b, ok := contactBodies(contact); ok {
		c.m.contacts.End(a, b)
	}
}

func (c *contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (c *contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
}

func contactBodies(contact box2d.B2ContactInterface) (a, b collision.BodyID, ok bool) {
	fa, fb := contact.GetFixtureA(), contact.GetFixtureB()
	if fa == nil || fb == nil {
		return 0, 0, false
	}
	a, okA := fa.GetBody().GetUserData().(collision.BodyID)
	b, okB := fb.GetBody().GetUserData().(collision.BodyID)
	return a, b, okA && okB
}
