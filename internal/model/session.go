package model

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SessionSpec describes a command to run inside a PTY session.
type SessionSpec struct {
	// ID is the unique identifier for this session.
	ID string `json:"id"`
	// Name is a short display name.
	Name string `json:"name"`
	// Driver specifies the launch method.
	Driver DriverType `json:"driver"`
	// Command is the program (native) or command line (shell).
	Command string `json:"command"`
	// Args are passed to Command by the native driver.
	Args []string `json:"args,omitempty"`
	// Dir is the working directory; empty means the current one.
	Dir string `json:"dir,omitempty"`
	// EnvVars are environment variables injected into the process.
	EnvVars map[string]string `json:"env_vars,omitempty"`
}

// NewSessionSpec creates a spec running argv directly. An empty argv
// starts the user's interactive shell instead.
func NewSessionSpec(argv []string) *SessionSpec {
	spec := &SessionSpec{
		ID:      uuid.New().String(),
		Driver:  DriverShell,
		EnvVars: make(map[string]string),
	}
	if len(argv) > 0 {
		spec.Driver = DriverNative
		spec.Command = argv[0]
		spec.Args = append([]string(nil), argv[1:]...)
	}
	return spec
}

// NewShellSpec creates a spec running commandLine through the shell.
func NewShellSpec(commandLine string) *SessionSpec {
	return &SessionSpec{
		ID:      uuid.New().String(),
		Driver:  DriverShell,
		Command: strings.TrimSpace(commandLine),
		EnvVars: make(map[string]string),
	}
}

// SetEnvVar adds or updates an environment variable.
func (s *SessionSpec) SetEnvVar(key, value string) {
	if s.EnvVars == nil {
		s.EnvVars = make(map[string]string)
	}
	s.EnvVars[key] = value
}

// GetEnvSlice returns environment variables as "KEY=VALUE" strings.
func (s *SessionSpec) GetEnvSlice() []string {
	result := make([]string, 0, len(s.EnvVars))
	for k, v := range s.EnvVars {
		result = append(result, k+"="+v)
	}
	return result
}

// DisplayName returns the name to show in notices and notifications.
// Falls back to the command's base name, then "shell".
func (s *SessionSpec) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	cmd := strings.TrimSpace(s.Command)
	if cmd == "" {
		return "shell"
	}
	if s.Driver == DriverShell {
		if fields := strings.Fields(cmd); len(fields) > 0 {
			cmd = fields[0]
		}
	}
	return filepath.Base(cmd)
}
