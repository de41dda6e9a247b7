package engine

import (
	"errors"
	"reflect"
	"testing"
)

type traceModule struct {
	Base
	name     string
	trace    *[]string
	startErr error
	updErr   error
}

func (m *traceModule) Name() string { return m.name }

func (m *traceModule) Start() error {
	*m.trace = append(*m.trace, m.name+".start")
	return m.startErr
}

func (m *traceModule) PreUpdate(float64) error {
	*m.trace = append(*m.trace, m.name+".pre")
	return nil
}

func (m *traceModule) Update(float64) error {
	*m.trace = append(*m.trace, m.name+".update")
	return m.updErr
}

func (m *traceModule) PostUpdate(float64) error {
	*m.trace = append(*m.trace, m.name+".post")
	return nil
}

func (m *traceModule) CleanUp() {
	*m.trace = append(*m.trace, m.name+".cleanup")
}

func TestLifecycleOrder(t *testing.T) {
	var trace []string
	e := New(nil,
		&traceModule{name: "physics", trace: &trace},
		&traceModule{name: "scene", trace: &trace},
	)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if err := e.Frame(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	e.CleanUp()
	e.CleanUp()

	want := []string{
		"physics.start", "scene.start",
		"physics.pre", "scene.pre",
		"physics.update", "scene.update",
		"physics.post", "scene.post",
		"scene.cleanup", "physics.cleanup",
	}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v\nwant %v", trace, want)
	}
}

func TestStartFailureCleansUpStarted(t *testing.T) {
	var trace []string
	boom := errors.New("boom")
	e := New(nil,
		&traceModule{name: "a", trace: &trace},
		&traceModule{name: "b", trace: &trace, startErr: boom},
		&traceModule{name: "c", trace: &trace},
	)
	if err := e.Start(); !errors.Is(err, boom) {
		t.Fatalf("Start() = %v, want boom", err)
	}
	want := []string{"a.start", "b.start", "a.cleanup"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
}

func TestFrameErrors(t *testing.T) {
	var trace []string
	boom := errors.New("boom")
	e := New(nil, &traceModule{name: "a", trace: &trace, updErr: boom})
	_ = e.Start()
	if err := e.Frame(0); !errors.Is(err, boom) {
		t.Errorf("Frame() = %v, want boom", err)
	}

	quit := New(nil, &traceModule{name: "q", trace: &trace, updErr: ErrQuit})
	_ = quit.Start()
	if err := quit.Frame(0); err != ErrQuit {
		t.Errorf("Frame() = %v, want bare ErrQuit", err)
	}
}
