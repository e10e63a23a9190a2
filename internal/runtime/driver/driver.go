// Package driver builds the process command for a session.
package driver

import (
	"os"
	"os/exec"
	"strings"

	"github.com/lazyvibe/failbell/internal/model"
)

// Driver defines the interface for building process commands.
type Driver interface {
	// Name returns the driver identifier.
	Name() string
	// BuildCommand constructs the exec.Cmd for the given spec.
	BuildCommand(spec *model.SessionSpec) (*exec.Cmd, error)
	// Validate checks if the spec is valid for this driver.
	Validate(spec *model.SessionSpec) error
}

// Config holds driver configuration.
type Config struct {
	// Shell overrides $SHELL for the shell driver.
	Shell string
}

// Registry holds all available drivers.
type Registry struct {
	drivers map[model.DriverType]Driver
}

// NewRegistry creates a driver registry with built-in drivers.
func NewRegistry() *Registry {
	return NewRegistryWithConfig(Config{})
}

// NewRegistryWithConfig creates a driver registry with configuration.
func NewRegistryWithConfig(cfg Config) *Registry {
	r := &Registry{
		drivers: make(map[model.DriverType]Driver),
	}
	r.Register(NewNativeDriver())
	r.Register(NewShellDriver(cfg.Shell))
	return r
}

// Register adds a driver to the registry under its name.
func (r *Registry) Register(d Driver) {
	r.drivers[model.DriverType(d.Name())] = d
}

// Get retrieves a driver by type.
func (r *Registry) Get(t model.DriverType) (Driver, bool) {
	d, ok := r.drivers[t]
	return d, ok
}

// buildEnv starts from the current environment and overlays the spec's
// variables. TERM is forced so full-screen programs render in the PTY.
func buildEnv(spec *model.SessionSpec) []string {
	env := append(os.Environ(), spec.GetEnvSlice()...)
	if !envHas(env, "TERM") {
		env = append(env, "TERM=xterm-256color")
	}
	env = append(env, "FAILBELL_SESSION="+spec.ID)
	return env
}

func envHas(env []string, key string) bool {
	prefix := key + "="
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			return true
		}
	}
	return false
}
