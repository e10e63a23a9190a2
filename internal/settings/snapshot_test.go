package settings

import (
	"reflect"
	"testing"
)

func TestBuildDefaults(t *testing.T) {
	s := Defaults()
	if !s.Enabled || !s.OutputScanningEnabled {
		t.Error("enabled and outputScanningEnabled should default to true")
	}
	if s.DebounceMs != DefaultDebounceMs {
		t.Errorf("DebounceMs = %d, want %d", s.DebounceMs, DefaultDebounceMs)
	}
	if s.CustomSoundPath != "" {
		t.Errorf("CustomSoundPath = %q, want empty", s.CustomSoundPath)
	}
	if !reflect.DeepEqual(s.SortedIgnoreExitCodes(), []int{130}) {
		t.Errorf("ignore codes = %v", s.SortedIgnoreExitCodes())
	}
	if !reflect.DeepEqual(s.PatternStrings(), DefaultErrorPatterns) {
		t.Errorf("patterns = %v", s.PatternStrings())
	}
	if s.DesktopNotification {
		t.Error("desktop notifications should be opt-in")
	}
}

func TestBuildMalformed(t *testing.T) {
	s := Build(MapSource{
		KeyEnabled:               "yes",
		KeyCustomSoundPath:       42,
		KeyErrorPatterns:         []any{"ok", "(bad"},
		KeyOutputScanningEnabled: false,
		KeyIgnoreExitCodes:       []any{1, "2"},
		KeyDebounceMs:            -100,
	})
	if !s.Enabled {
		t.Error("non-bool enabled should fall back to true")
	}
	if s.CustomSoundPath != "" {
		t.Errorf("CustomSoundPath = %q", s.CustomSoundPath)
	}
	if s.OutputScanningEnabled {
		t.Error("outputScanningEnabled=false should be kept")
	}
	if s.DebounceMs != 0 {
		t.Errorf("DebounceMs = %d, want 0", s.DebounceMs)
	}
	if !reflect.DeepEqual(s.InvalidPatterns, []string{"(bad"}) {
		t.Errorf("InvalidPatterns = %v", s.InvalidPatterns)
	}
	if !s.IgnoresExitCode(1) || s.IgnoresExitCode(2) {
		t.Errorf("ignore codes = %v", s.SortedIgnoreExitCodes())
	}
}
