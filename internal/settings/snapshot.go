package settings

import (
	"regexp"
	"sort"
)

// Option keys recognized in the configuration file.
const (
	KeyEnabled               = "enabled"
	KeyCustomSoundPath       = "customSoundPath"
	KeyErrorPatterns         = "errorPatterns"
	KeyOutputScanningEnabled = "outputScanningEnabled"
	KeyIgnoreExitCodes       = "ignoreExitCodes"
	KeyDebounceMs            = "debounceMs"
	KeyDesktopNotification   = "desktopNotification"
	KeyWebhookURL            = "webhookUrl"
)

// Snapshot is one complete, normalized view of the configuration.
// It is rebuilt on every reload and never mutated afterwards.
type Snapshot struct {
	Enabled               bool
	CustomSoundPath       string
	OutputScanningEnabled bool
	DebounceMs            int
	Patterns              []*regexp.Regexp
	InvalidPatterns       []string
	IgnoreExitCodes       map[int]struct{}
	DesktopNotification   bool
	WebhookURL            string
}

// Source looks up raw option values. A missing key yields nil.
type Source interface {
	Get(key string) any
}

// MapSource adapts a plain map to Source.
type MapSource map[string]any

// Get returns the raw value stored under key.
func (m MapSource) Get(key string) any {
	return m[key]
}

// Build normalizes every recognized option from src.
func Build(src Source) *Snapshot {
	if src == nil {
		src = MapSource(nil)
	}
	patterns := ParsePatterns(src.Get(KeyErrorPatterns))
	return &Snapshot{
		Enabled:               NormalizeBool(src.Get(KeyEnabled), true),
		CustomSoundPath:       NormalizeString(src.Get(KeyCustomSoundPath)),
		OutputScanningEnabled: NormalizeBool(src.Get(KeyOutputScanningEnabled), true),
		DebounceMs:            NormalizeDebounceMs(src.Get(KeyDebounceMs)),
		Patterns:              patterns.Compiled,
		InvalidPatterns:       patterns.Invalid,
		IgnoreExitCodes:       NormalizeIgnoreExitCodes(src.Get(KeyIgnoreExitCodes)),
		DesktopNotification:   NormalizeBool(src.Get(KeyDesktopNotification), false),
		WebhookURL:            NormalizeString(src.Get(KeyWebhookURL)),
	}
}

// Defaults returns the snapshot used when no configuration exists.
func Defaults() *Snapshot {
	return Build(nil)
}

// IgnoresExitCode reports whether code is in the ignore set.
func (s *Snapshot) IgnoresExitCode(code int) bool {
	_, ok := s.IgnoreExitCodes[code]
	return ok
}

// SortedIgnoreExitCodes returns the ignore set in ascending order.
func (s *Snapshot) SortedIgnoreExitCodes() []int {
	codes := make([]int, 0, len(s.IgnoreExitCodes))
	for c := range s.IgnoreExitCodes {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

// PatternStrings returns the source text of the active patterns without
// the case-insensitivity prefix.
func (s *Snapshot) PatternStrings() []string {
	out := make([]string, 0, len(s.Patterns))
	for _, re := range s.Patterns {
		out = append(out, PatternSource(re))
	}
	return out
}

// PatternSource strips the "(?i)" prefix added at compile time.
func PatternSource(re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	src := re.String()
	if len(src) >= 4 && src[:4] == "(?i)" {
		return src[4:]
	}
	return src
}
