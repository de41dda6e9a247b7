package engine

import (
	"errors"
	"fmt"

	"physbody-engine/internal/logger"
)

// ErrQuit stops the loop without being reported as a failure.
var ErrQuit = errors.New("engine: quit requested")

// Module is the lifecycle every engine part implements. The scheduler calls Start once,
// then PreUpdate, Update and PostUpdate for each module every frame, and CleanUp in reverse order.
type Module interface {
	Name() string
	Start() error
	PreUpdate(dt float64) error
	Update(dt float64) error
	PostUpdate(dt float64) error
	CleanUp()
}

// Engine runs modules in registration order.
type Engine struct {
	log     *logger.Logger
	modules []Module
	started int
}

// New returns an engine that will run modules in the given order.
func New(log *logger.Logger, modules ...Module) *Engine {
	return &Engine{log: log, modules: modules}
}

// Add appends a module. Modules added after Start are not started.
func (e *Engine) Add(m Module) {
	e.modules = append(e.modules, m)
}

// Start starts every module in order. When one fails, the ones already started are cleaned up.
func (e *Engine) Start() error {
	for _, m := range e.modules[e.started:] {
		e.log.Logf("Starting module %s", m.Name())
		if err := m.Start(); err != nil {
			e.CleanUp()
			return fmt.Errorf("engine: start %s: %w", m.Name(), err)
		}
		e.started++
	}
	return nil
}

// Frame runs one PreUpdate/Update/PostUpdate pass. All PreUpdates (physics step) run before any Update,
// so scenes always read positions for the current frame.
func (e *Engine) Frame(dt float64) error {
	active := e.modules[:e.started]
	for _, m := range active {
		if err := m.PreUpdate(dt); err != nil {
			return wrap("pre-update", m, err)
		}
	}
	for _, m := range active {
		if err := m.Update(dt); err != nil {
			return wrap("update", m, err)
		}
	}
	for _, m := range active {
		if err := m.PostUpdate(dt); err != nil {
			return wrap("post-update", m, err)
		}
	}
	return nil
}

// CleanUp cleans up started modules in reverse order. Calling it twice is safe.
func (e *Engine) CleanUp() {
	for i := e.started - 1; i >= 0; i-- {
		m := e.modules[i]
		e.log.Logf("Cleaning up module %s", m.Name())
		m.CleanUp()
	}
	e.started = 0
}

func wrap(stage string, m Module, err error) error {
	if errors.Is(err, ErrQuit) {
		return err
	}
	return fmt.Errorf("engine: %s %s: %w", stage, m.Name(), err)
}

// Base implements Module with no-ops so a part only writes the callbacks it needs.
type Base struct{}

func (Base) Start() error                { return nil }
func (Base) PreUpdate(dt float64) error  { return nil }
func (Base) Update(dt float64) error     { return nil }
func (Base) PostUpdate(dt float64) error { return nil }
func (Base) CleanUp()                    {}
