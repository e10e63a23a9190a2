// Package model defines core data structures for failbell.
package model

// DriverType represents how a session command is launched.
type DriverType string

const (
	// DriverNative executes the argv directly.
	DriverNative DriverType = "native"
	// DriverShell runs the command line through the user's shell, or
	// starts an interactive shell when the command is empty.
	DriverShell DriverType = "shell"
)

// SessionStatus represents the current state of a PTY session.
type SessionStatus string

const (
	// SessionStatusIdle indicates the session is not running.
	SessionStatusIdle SessionStatus = "idle"
	// SessionStatusRunning indicates the session is active.
	SessionStatusRunning SessionStatus = "running"
	// SessionStatusStopped indicates the session has ended.
	SessionStatusStopped SessionStatus = "stopped"
	// SessionStatusError indicates the session failed to start.
	SessionStatusError SessionStatus = "error"
)

// AlertKind tells what caused an alert.
type AlertKind string

const (
	// AlertKindExitCode is raised by a non-zero, non-ignored exit code.
	AlertKindExitCode AlertKind = "exit_code"
	// AlertKindOutput is raised by an error pattern in the output.
	AlertKindOutput AlertKind = "output"
)
