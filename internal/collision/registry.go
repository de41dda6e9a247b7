package collision

import (
	"errors"
	"fmt"
)

// ListenerID identifies one registered listener.
type ListenerID uint64

// ErrUnknownListener is returned when subscribing or removing an id that was never added.
var ErrUnknownListener = errors.New("collision: unknown listener")

// Registry is the non-owning registration table: listeners by id, and per body the
// ordered list of listener ids to notify. Bodies never hold listener references themselves.
type Registry[L any] struct {
	next      ListenerID
	listeners map[ListenerID]L
	subs      map[BodyID][]ListenerID
}

// NewRegistry returns an empty registry.
func NewRegistry[L any]() *Registry[L] {
	return &Registry[L]{
		listeners: make(map[ListenerID]L),
		subs:      make(map[BodyID][]ListenerID),
	}
}

// Add stores l and returns its id. The same value added twice gets two ids.
func (r *Registry[L]) Add(l L) ListenerID {
	r.next++
	r.listeners[r.next] = l
	return r.next
}

// Remove forgets the listener and every subscription to it.
func (r *Registry[L]) Remove(id ListenerID) {
	delete(r.listeners, id)
	for body, ids := range r.subs {
		r.subs[body] = without(ids, id)
		if len(r.subs[body]) == 0 {
			delete(r.subs, body)
		}
	}
}

// Subscribe appends id to body's notification list. Subscribing the same id twice
// results in two notifications per event; callers that want one must not do that.
func (r *Registry[L]) Subscribe(body BodyID, id ListenerID) error {
	if _, ok := r.listeners[id]; !ok {
		return fmt.Errorf("subscribe listener %d: %w", id, ErrUnknownListener)
	}
	r.subs[body] = append(r.subs[body], id)
	return nil
}

// Unsubscribe removes every subscription of id on body.
func (r *Registry[L]) Unsubscribe(body BodyID, id ListenerID) {
	ids := without(r.subs[body], id)
	if len(ids) == 0 {
		delete(r.subs, body)
		return
	}
	r.subs[body] = ids
}

// Drop removes body's notification list (used when the body is destroyed).
func (r *Registry[L]) Drop(body BodyID) {
	delete(r.subs, body)
}

// Subscribed reports whether id is in body's notification list.
func (r *Registry[L]) Subscribed(body BodyID, id ListenerID) bool {
	for _, v := range r.subs[body] {
		if v == id {
			return true
		}
	}
	return false
}

// Subscriptions returns the number of entries in body's notification list.
func (r *Registry[L]) Subscriptions(body BodyID) int {
	return len(r.subs[body])
}

// Notify calls fn for every listener subscribed to either body of p. Listeners on p.A
// see (A, B), listeners on p.B see (B, A). An id subscribed to both bodies is called once,
// from A's side; repeated entries on a single body are all called.
func (r *Registry[L]) Notify(p Pair, fn func(l L, self, other BodyID)) {
	// Snapshot the lists: fn may subscribe or remove listeners.
	fromA := append([]ListenerID(nil), r.subs[p.A]...)
	fromB := append([]ListenerID(nil), r.subs[p.B]...)

	seen := make(map[ListenerID]struct{}, len(fromA))
	for _, id := range fromA {
		seen[id] = struct{}{}
		if l, ok := r.listeners[id]; ok {
			fn(l, p.A, p.B)
		}
	}
	for _, id := range fromB {
		if _, dup := seen[id]; dup {
			continue
		}
		if l, ok := r.listeners[id]; ok {
			fn(l, p.B, p.A)
		}
	}
}

// Reset drops every listener and subscription.
func (r *Registry[L]) Reset() {
	r.listeners = make(map[ListenerID]L)
	r.subs = make(map[BodyID][]ListenerID)
}

func without(ids []ListenerID, id ListenerID) []ListenerID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
