package driver

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/lazyvibe/failbell/internal/model"
)

// ShellDriver runs a command line through the user's shell. An empty
// command line starts the shell interactively.
type ShellDriver struct {
	shell string
}

// NewShellDriver creates a ShellDriver. An empty shell uses DefaultShell.
func NewShellDriver(shell string) *ShellDriver {
	return &ShellDriver{shell: strings.TrimSpace(shell)}
}

// Name returns the driver identifier.
func (d *ShellDriver) Name() string {
	return string(model.DriverShell)
}

// DefaultShell returns $SHELL, falling back to the platform shell.
func DefaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return comspec
		}
		return "cmd.exe"
	}
	return "/bin/sh"
}

// BuildCommand constructs the shell invocation.
func (d *ShellDriver) BuildCommand(spec *model.SessionSpec) (*exec.Cmd, error) {
	if err := d.Validate(spec); err != nil {
		return nil, err
	}
	shell, _ := resolveExecutablePath(d.shellPath())

	var args []string
	if line := strings.TrimSpace(spec.Command); line != "" {
		args = append(args, shellFlag(shell), line)
	}

	cmd := exec.Command(shell, args...)
	cmd.Dir = spec.Dir
	cmd.Env = buildEnv(spec)
	return cmd, nil
}

// Validate checks that the shell exists.
func (d *ShellDriver) Validate(spec *model.SessionSpec) error {
	if spec == nil {
		return errors.New("session spec is nil")
	}
	shell := d.shellPath()
	if _, ok := resolveExecutablePath(shell); !ok {
		return errors.New("shell not found: " + shell)
	}
	return nil
}

func (d *ShellDriver) shellPath() string {
	if d.shell != "" {
		return d.shell
	}
	return DefaultShell()
}

func shellFlag(shell string) string {
	base := strings.ToLower(shell)
	if strings.HasSuffix(base, "cmd.exe") || strings.HasSuffix(base, "cmd") {
		return "/C"
	}
	if strings.Contains(base, "powershell") || strings.Contains(base, "pwsh") {
		return "-Command"
	}
	return "-c"
}
