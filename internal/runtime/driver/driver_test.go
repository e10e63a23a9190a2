package driver

import (
	"runtime"
	"strings"
	"testing"

	"github.com/lazyvibe/failbell/internal/model"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, typ := range []model.DriverType{model.DriverNative, model.DriverShell} {
		if _, ok := r.Get(typ); !ok {
			t.Errorf("driver %q not registered", typ)
		}
	}
	if _, ok := r.Get("ccr"); ok {
		t.Error("unexpected driver ccr")
	}
}

func TestNativeValidate(t *testing.T) {
	d := NewNativeDriver()
	tests := []struct {
		name    string
		spec    *model.SessionSpec
		wantErr string
	}{
		{"nil spec", nil, "nil"},
		{"empty command", &model.SessionSpec{Driver: model.DriverNative}, "empty"},
		{"missing command", &model.SessionSpec{Command: "definitely-not-a-real-binary-xyz"}, "not found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := d.Validate(tc.spec)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestShellBuildCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell layout")
	}
	d := NewShellDriver("/bin/sh")

	spec := model.NewShellSpec("echo hi; exit 3")
	spec.SetEnvVar("FOO", "bar")
	cmd, err := d.BuildCommand(spec)
	if err != nil {
		t.Fatalf("BuildCommand: %v", err)
	}
	if len(cmd.Args) != 3 || cmd.Args[1] != "-c" || cmd.Args[2] != "echo hi; exit 3" {
		t.Errorf("Args = %q", cmd.Args)
	}
	if !envHas(cmd.Env, "FOO") || !envHas(cmd.Env, "TERM") || !envHas(cmd.Env, "FAILBELL_SESSION") {
		t.Errorf("env missing expected keys")
	}

	interactive, err := d.BuildCommand(model.NewSessionSpec(nil))
	if err != nil {
		t.Fatalf("BuildCommand: %v", err)
	}
	if len(interactive.Args) != 1 {
		t.Errorf("interactive Args = %q, want shell only", interactive.Args)
	}
}

func TestShellFlag(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"/bin/bash", "-c"},
		{"/usr/bin/zsh", "-c"},
		{`C:\Windows\System32\cmd.exe`, "/C"},
		{"pwsh", "-Command"},
	}
	for _, tc := range tests {
		if got := shellFlag(tc.shell); got != tc.want {
			t.Errorf("shellFlag(%q) = %q, want %q", tc.shell, got, tc.want)
		}
	}
}
