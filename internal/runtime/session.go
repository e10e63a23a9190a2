// Package runtime provides PTY session management and process control.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/aymanbagabas/go-pty"
	"github.com/lazyvibe/failbell/internal/model"
)

// drainTimeout bounds how long output is read after the process exits.
// Background children can keep the PTY open indefinitely.
const drainTimeout = 500 * time.Millisecond

// Session represents a PTY session running one command.
type Session interface {
	// ID returns the session's unique identifier.
	ID() string
	// Name returns the session's display name.
	Name() string
	// Start launches the PTY process.
	Start(ctx context.Context) error
	// Stop terminates the PTY process.
	Stop() error
	// Write sends data to the PTY stdin.
	Write(data []byte) (int, error)
	// Status returns the current session status.
	Status() model.SessionStatus
	// Resize updates the PTY terminal size.
	Resize(rows, cols uint16) error
	// LastLine returns the last non-blank line of output.
	LastLine() string
	// Done is closed once the session has emitted EventClosed.
	Done() <-chan struct{}
	// ExitError returns the error the process exited with, if any.
	ExitError() error
}

// PTYSession implements Session using go-pty.
type PTYSession struct {
	id          string
	name        string
	cmd         *exec.Cmd
	pCmd        *pty.Cmd
	ptmx        pty.Pty
	emit        func(Event)
	stopCh      chan struct{}
	readDone    chan struct{}
	closed      chan struct{}
	status      model.SessionStatus
	mu          sync.RWMutex
	stopOnce    sync.Once
	cancel      context.CancelFunc
	exitErr     error
	buffer      *RingBuffer
	initialRows uint16
	initialCols uint16
}

// NewPTYSession creates a new PTY session. emit receives every event the
// session produces, in order; it may block.
func NewPTYSession(id, name string, cmd *exec.Cmd, emit func(Event)) *PTYSession {
	if emit == nil {
		emit = func(Event) {}
	}
	return &PTYSession{
		id:          id,
		name:        name,
		cmd:         cmd,
		emit:        emit,
		stopCh:      make(chan struct{}),
		readDone:    make(chan struct{}),
		closed:      make(chan struct{}),
		status:      model.SessionStatusIdle,
		buffer:      NewRingBuffer(16 * 1024),
		initialRows: 24,
		initialCols: 80,
	}
}

// SetInitialSize sets the initial PTY size.
func (s *PTYSession) SetInitialSize(rows, cols int) {
	if rows > 0 {
		s.initialRows = uint16(rows)
	}
	if cols > 0 {
		s.initialCols = uint16(cols)
	}
}

// ID returns the session identifier.
func (s *PTYSession) ID() string {
	return s.id
}

// Name returns the display name.
func (s *PTYSession) Name() string {
	return s.name
}

// Start launches the PTY process.
func (s *PTYSession) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == model.SessionStatusRunning {
		return errors.New("session already running")
	}
	if s.cmd == nil {
		return errors.New("session has no command")
	}

	ctx, s.cancel = context.WithCancel(ctx)

	ptmx, err := pty.New()
	if err != nil {
		s.status = model.SessionStatusError
		return fmt.Errorf("failed to create pty: %w", err)
	}
	s.ptmx = ptmx

	// pty.Resize takes (width, height) -> (cols, rows)
	_ = s.ptmx.Resize(int(s.initialCols), int(s.initialRows))

	var args []string
	if len(s.cmd.Args) > 1 {
		args = s.cmd.Args[1:]
	}
	commander, ok := ptmx.(interface {
		Command(string, ...string) *pty.Cmd
	})
	if !ok {
		_ = ptmx.Close()
		s.status = model.SessionStatusError
		return errors.New("pty implementation does not support Command creation")
	}
	s.pCmd = commander.Command(s.cmd.Path, args...)
	s.pCmd.Env = s.cmd.Env
	s.pCmd.Dir = s.cmd.Dir

	if err := s.pCmd.Start(); err != nil {
		_ = ptmx.Close()
		s.status = model.SessionStatusError
		wrapped := fmt.Errorf("start failed: %s: %w", formatCmd(s.cmd), err)
		s.exitErr = wrapped
		return wrapped
	}
	s.status = model.SessionStatusRunning

	go s.readLoop()
	go s.waitLoop()
	go func() {
		select {
		case <-ctx.Done():
			_ = s.Stop()
		case <-s.closed:
		}
	}()

	return nil
}

func formatCmd(cmd *exec.Cmd) string {
	if cmd == nil {
		return ""
	}
	if len(cmd.Args) > 0 {
		return strings.Join(cmd.Args, " ")
	}
	return cmd.Path
}

// readLoop forwards PTY output until the PTY is closed or fails.
func (s *PTYSession) readLoop() {
	defer close(s.readDone)

	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			_, _ = s.buffer.Write(data)
			s.emit(Event{Kind: EventData, SessionID: s.id, Data: data})
		}
		if err != nil {
			return
		}
	}
}

// waitLoop waits for the process, drains remaining output, then reports
// the exit and the close, in that order.
func (s *PTYSession) waitLoop() {
	err := s.pCmd.Wait()

	select {
	case <-s.readDone:
	case <-time.After(drainTimeout):
	case <-s.stopCh:
	}
	_ = s.ptmx.Close()
	<-s.readDone

	s.mu.Lock()
	s.exitErr = err
	if s.status == model.SessionStatusRunning {
		s.status = model.SessionStatusStopped
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventExit, SessionID: s.id, ExitCode: ExitCodeFromError(err), Err: err})
	s.emit(Event{Kind: EventClosed, SessionID: s.id})
	close(s.closed)
	if s.cancel != nil {
		s.cancel()
	}
}

// Stop terminates the PTY process. The exit and close events are still
// emitted by the wait loop.
func (s *PTYSession) Stop() error {
	s.mu.RLock()
	running := s.status == model.SessionStatusRunning
	s.mu.RUnlock()
	if !running {
		return nil
	}

	s.stopOnce.Do(func() {
		close(s.stopCh)
		if s.pCmd != nil && s.pCmd.Process != nil {
			_ = s.pCmd.Process.Kill()
		}
	})
	return nil
}

// Write sends data to PTY stdin.
func (s *PTYSession) Write(data []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.status != model.SessionStatusRunning {
		return 0, errors.New("session not running")
	}
	if s.ptmx == nil {
		return 0, errors.New("pty not initialized")
	}
	return s.ptmx.Write(data)
}

// Status returns the current status.
func (s *PTYSession) Status() model.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Resize changes the PTY terminal size.
func (s *PTYSession) Resize(rows, cols uint16) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ptmx == nil {
		return errors.New("pty not initialized")
	}
	return s.ptmx.Resize(int(cols), int(rows))
}

// LastLine returns the last non-blank line of output.
func (s *PTYSession) LastLine() string {
	return s.buffer.LastLine()
}

// Done is closed after EventClosed has been emitted.
func (s *PTYSession) Done() <-chan struct{} {
	return s.closed
}

// ExitError returns the error Wait reported, if any.
func (s *PTYSession) ExitError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exitErr
}

// ExitCodeFromError converts a Wait error into an exit code. nil means the
// code is unknown, for instance when the process was killed by a signal.
func ExitCodeFromError(err error) *int {
	if err == nil {
		code := 0
		return &code
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		if code := coder.ExitCode(); code >= 0 {
			return &code
		}
	}
	return nil
}
