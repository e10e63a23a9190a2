package driver

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lazyvibe/failbell/internal/model"
)

// NativeDriver executes the spec's argv directly.
type NativeDriver struct{}

// NewNativeDriver creates a new NativeDriver instance.
func NewNativeDriver() *NativeDriver {
	return &NativeDriver{}
}

// Name returns the driver identifier.
func (d *NativeDriver) Name() string {
	return string(model.DriverNative)
}

// BuildCommand constructs the command for native execution.
func (d *NativeDriver) BuildCommand(spec *model.SessionSpec) (*exec.Cmd, error) {
	if err := d.Validate(spec); err != nil {
		return nil, err
	}
	path, _ := resolveExecutablePath(spec.Command)

	cmd := exec.Command(path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = buildEnv(spec)
	return cmd, nil
}

// Validate checks that the command exists.
func (d *NativeDriver) Validate(spec *model.SessionSpec) error {
	if spec == nil {
		return errors.New("session spec is nil")
	}
	command := strings.TrimSpace(spec.Command)
	if command == "" {
		return errors.New("command is empty")
	}
	if _, ok := resolveExecutablePath(command); !ok {
		return errors.New("command not found: " + command)
	}
	return nil
}

func resolveExecutablePath(command string) (string, bool) {
	if command == "" {
		return "", false
	}
	if filepath.IsAbs(command) || strings.Contains(command, string(os.PathSeparator)) {
		if _, err := os.Stat(command); err == nil {
			return command, true
		}
		return "", false
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return "", false
	}
	return path, true
}
