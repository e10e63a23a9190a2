package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/lazyvibe/failbell/internal/model"
	"github.com/lazyvibe/failbell/internal/runtime/driver"
)

// Engine manages PTY sessions and merges their events into one channel.
type Engine interface {
	// CreateSession creates and starts a new session.
	CreateSession(ctx context.Context, spec *model.SessionSpec, rows, cols int) (Session, error)
	// GetSession retrieves a live session by ID.
	GetSession(id string) (Session, bool)
	// ListSessions returns all live sessions.
	ListSessions() []Session
	// CloseSession stops a session. It is removed once it has closed.
	CloseSession(id string) error
	// CloseAll stops every session.
	CloseAll() error
	// Events delivers events from all sessions. Events of one session
	// arrive in the order they were produced.
	Events() <-chan Event
	// Shutdown stops delivering events and stops every session.
	Shutdown() error
}

// DefaultEngine is the default implementation of Engine.
type DefaultEngine struct {
	mu       sync.RWMutex
	sessions map[string]*PTYSession
	registry *driver.Registry
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewEngineWithConfig creates a new runtime engine with configuration.
func NewEngineWithConfig(cfg driver.Config) *DefaultEngine {
	return &DefaultEngine{
		sessions: make(map[string]*PTYSession),
		registry: driver.NewRegistryWithConfig(cfg),
		events:   make(chan Event, 256),
		done:     make(chan struct{}),
	}
}

// CreateSession builds the command for spec and starts it in a PTY.
func (e *DefaultEngine) CreateSession(ctx context.Context, spec *model.SessionSpec, rows, cols int) (Session, error) {
	if spec == nil {
		return nil, errors.New("session spec is nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if existing, ok := e.sessions[spec.ID]; ok && existing.Status() == model.SessionStatusRunning {
		return existing, nil
	}

	d, ok := e.registry.Get(spec.Driver)
	if !ok {
		return nil, fmt.Errorf("driver not found: %s", spec.Driver)
	}
	if spec.Dir != "" {
		if info, err := os.Stat(spec.Dir); err != nil || !info.IsDir() {
			return nil, errors.New("working directory not found: " + spec.Dir)
		}
	}

	cmd, err := d.BuildCommand(spec)
	if err != nil {
		return nil, err
	}

	session := NewPTYSession(spec.ID, spec.DisplayName(), cmd, e.emit)
	if rows > 0 && cols > 0 {
		session.SetInitialSize(rows, cols)
	}
	if err := session.Start(ctx); err != nil {
		return nil, err
	}
	e.sessions[spec.ID] = session

	return session, nil
}

// emit forwards ev unless the engine has shut down. Closed sessions are
// forgotten once their last event is delivered.
func (e *DefaultEngine) emit(ev Event) {
	select {
	case e.events <- ev:
	case <-e.done:
		return
	}
	if ev.Kind == EventClosed {
		e.mu.Lock()
		delete(e.sessions, ev.SessionID)
		e.mu.Unlock()
	}
}

// Events returns the merged event channel.
func (e *DefaultEngine) Events() <-chan Event {
	return e.events
}

// GetSession retrieves an existing session.
func (e *DefaultEngine) GetSession(id string) (Session, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	session, ok := e.sessions[id]
	if !ok {
		return nil, false
	}
	return session, true
}

// ListSessions returns all sessions.
func (e *DefaultEngine) ListSessions() []Session {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := make([]Session, 0, len(e.sessions))
	for _, s := range e.sessions {
		result = append(result, s)
	}
	return result
}

// CloseSession stops a session.
func (e *DefaultEngine) CloseSession(id string) error {
	e.mu.RLock()
	session, ok := e.sessions[id]
	e.mu.RUnlock()
	if !ok {
		return nil
	}
	return session.Stop()
}

// CloseAll stops all sessions.
func (e *DefaultEngine) CloseAll() error {
	var lastErr error
	for _, session := range e.ListSessions() {
		if err := session.Stop(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Shutdown stops event delivery and all sessions.
func (e *DefaultEngine) Shutdown() error {
	e.doneOnce.Do(func() { close(e.done) })
	return e.CloseAll()
}
