package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lazyvibe/failbell/internal/settings"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSettingsFormats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"config.json", `{"debounceMs": 250, "ignoreExitCodes": [1, 130], "errorPatterns": ["panic:"]}`},
		{"config.yaml", "debounceMs: 250\nignoreExitCodes: [1, 130]\nerrorPatterns:\n  - \"panic:\"\n"},
		{"config.toml", "debounceMs = 250\nignoreExitCodes = [1, 130]\nerrorPatterns = [\"panic:\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			writeFile(t, path, tt.body)

			snap, err := LoadSettings(path)
			if err != nil {
				t.Fatalf("LoadSettings: %v", err)
			}
			if snap.DebounceMs != 250 {
				t.Errorf("DebounceMs = %d", snap.DebounceMs)
			}
			if !snap.IgnoresExitCode(1) || !snap.IgnoresExitCode(130) {
				t.Errorf("IgnoreExitCodes = %v", snap.SortedIgnoreExitCodes())
			}
			if got := snap.PatternStrings(); len(got) != 1 || got[0] != "panic:" {
				t.Errorf("patterns = %v", got)
			}
		})
	}
}

func TestLoadSettingsCaseInsensitiveKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"OutputScanningEnabled": false, "customsoundpath": "~/ring.wav"}`)
	snap, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if snap.OutputScanningEnabled || snap.CustomSoundPath != "~/ring.wav" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestLoadSettingsMissingAndBroken(t *testing.T) {
	dir := t.TempDir()
	snap, err := LoadSettings(filepath.Join(dir, "nope.json"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if snap.DebounceMs != settings.DefaultDebounceMs || len(snap.Patterns) != len(settings.DefaultErrorPatterns) {
		t.Errorf("missing file should give defaults, got %+v", snap)
	}

	broken := filepath.Join(dir, "broken.json")
	writeFile(t, broken, `{"debounceMs": `)
	if _, err := LoadSettings(broken); err == nil {
		t.Error("expected parse error")
	}

	ini := filepath.Join(dir, "config.ini")
	writeFile(t, ini, "x=1")
	if _, err := LoadSettings(ini); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestSaveDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	if err := SaveDefault(path, false); err != nil {
		t.Fatalf("SaveDefault: %v", err)
	}
	if err := SaveDefault(path, false); err == nil {
		t.Error("SaveDefault should refuse to overwrite")
	}
	if err := SaveDefault(path, true); err != nil {
		t.Errorf("SaveDefault force: %v", err)
	}

	snap, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	def := settings.Defaults()
	if snap.Enabled != def.Enabled || snap.DebounceMs != def.DebounceMs ||
		len(snap.Patterns) != len(def.Patterns) || len(snap.InvalidPatterns) != 0 {
		t.Errorf("default file does not load as defaults: %+v", snap)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "failbell") {
		t.Errorf("ConfigDir = %q", dir)
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `{}`)

	w, err := NewWatcher(path)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.json"), `{}`)
	writeFile(t, path, `{"debounceMs": 0}`)
	writeFile(t, path, `{"debounceMs": 10}`)

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	// The burst collapses into one notification.
	select {
	case <-w.Changes():
		t.Error("unexpected second notification")
	case <-time.After(3 * reloadDelay):
	}
}
