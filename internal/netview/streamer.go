package netview

import "physbody-engine/internal/physics"

// Source is what the streamer reads each frame.
type Source interface {
	Snapshot() []physics.BodyState
	Tick() uint64
}

// Streamer is an engine module that broadcasts a frame after each physics step.
// It must be registered after the physics module so it sees the current step.
type Streamer struct {
	hub  *Hub
	src  Source
	last uint64
}

func NewStreamer(hub *Hub, src Source) *Streamer {
	return &Streamer{hub: hub, src: src}
}

func (s *Streamer) Name() string { return "netview" }

func (s *Streamer) Start() error { return nil }

func (s *Streamer) PreUpdate(dt float64) error { return nil }

func (s *Streamer) Update(dt float64) error { return nil }

// PostUpdate sends one frame per new tick when anyone is watching.
func (s *Streamer) PostUpdate(dt float64) error {
	tick := s.src.Tick()
	if tick == s.last || s.hub.Clients() == 0 {
		return nil
	}
	s.last = tick
	return s.hub.Broadcast(Frame{Tick: tick, Bodies: s.src.Snapshot()})
}

func (s *Streamer) CleanUp() {
	s.hub.Close()
}
