package collision

// BodyID identifies one body inside a physics module's arena. IDs start at 1 and are never reused.
type BodyID uint64

// Pair is an unordered pair of bodies in contact, stored with the smaller id first.
type Pair struct {
	A, B BodyID
}

// MakePair returns the normalized pair for a and b.
func MakePair(a, b BodyID) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Other returns the member of p that is not id.
func (p Pair) Other(id BodyID) BodyID {
	if p.A == id {
		return p.B
	}
	return p.A
}

// Tracker turns per-fixture begin/end notifications into body-level contact transitions.
// A body pair can touch through several fixtures (chain edges, multi-fixture bodies);
// it enters contact when the first touching fixture pair begins and leaves when the last one ends.
type Tracker struct {
	touching map[Pair]int
	begun    []Pair
	queued   map[Pair]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		touching: make(map[Pair]int),
		queued:   make(map[Pair]struct{}),
	}
}

// Begin records that one more fixture pair between a and b is touching.
// The transition from zero to one queues an event, at most once per pair until Drain.
func (t *Tracker) Begin(a, b BodyID) {
	if a == b {
		return
	}
	p := MakePair(a, b)
	t.touching[p]++
	if t.touching[p] != 1 {
		return
	}
	if _, ok := t.queued[p]; ok {
		return
	}
	t.queued[p] = struct{}{}
	t.begun = append(t.begun, p)
}

// End records that one fixture pair between a and b stopped touching.
func (t *Tracker) End(a, b BodyID) {
	p := MakePair(a, b)
	n, ok := t.touching[p]
	if !ok {
		return
	}
	if n <= 1 {
		delete(t.touching, p)
		return
	}
	t.touching[p] = n - 1
}

// Touching reports whether a and b are currently in contact.
func (t *Tracker) Touching(a, b BodyID) bool {
	return t.touching[MakePair(a, b)] > 0
}

// Drain returns the pairs that entered contact since the last call, in the order they began.
func (t *Tracker) Drain() []Pair {
	out := t.begun
	t.begun = nil
	for p := range t.queued {
		delete(t.queued, p)
	}
	return out
}

// Forget removes all state involving id, including queued events.
func (t *Tracker) Forget(id BodyID) {
	for p := range t.touching {
		if p.A == id || p.B == id {
			delete(t.touching, p)
		}
	}
	kept := t.begun[:0]
	for _, p := range t.begun {
		if p.A == id || p.B == id {
			delete(t.queued, p)
			continue
		}
		kept = append(kept, p)
	}
	t.begun = kept
}

// Reset drops every contact and queued event.
func (t *Tracker) Reset() {
	t.touching = make(map[Pair]int)
	t.queued = make(map[Pair]struct{})
	t.begun = nil
}
