// Package settings turns loosely typed configuration values into strict,
// bounded settings. Nothing in this package returns an error: malformed
// input falls back to a default or is dropped.
package settings

import (
	"math"
	"reflect"
	"regexp"
	"strings"
)

const (
	// DefaultDebounceMs is used when debounceMs is missing or not a number.
	DefaultDebounceMs = 1200
	// MaxDebounceMs is the upper bound of the debounce window.
	MaxDebounceMs = 60000
)

// DefaultErrorPatterns are compiled when errorPatterns is not a list.
var DefaultErrorPatterns = []string{
	`\bError\b`,
	`\bTypeError\b`,
	`\bFATAL\b`,
	`\bException\b`,
	`\bTraceback\b`,
}

// DefaultIgnoreExitCodes holds 130 (SIGINT, Ctrl+C).
var DefaultIgnoreExitCodes = []int{130}

// PatternSet is the result of ParsePatterns.
type PatternSet struct {
	// Compiled holds the usable patterns in input order.
	Compiled []*regexp.Regexp
	// Invalid holds entries that failed to compile, in input order.
	Invalid []string
}

// ParsePatterns compiles raw into case-insensitive regular expressions.
func ParsePatterns(raw any) PatternSet {
	items, ok := asSlice(raw)
	if !ok {
		return PatternSet{Compiled: compileDefaults()}
	}

	set := PatternSet{Compiled: []*regexp.Regexp{}}
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		re, err := compileInsensitive(s)
		if err != nil {
			set.Invalid = append(set.Invalid, s)
			continue
		}
		set.Compiled = append(set.Compiled, re)
	}
	return set
}

// NormalizeIgnoreExitCodes returns the set of non-zero exit codes to ignore.
func NormalizeIgnoreExitCodes(raw any) map[int]struct{} {
	items, ok := asSlice(raw)
	if !ok {
		items = make([]any, len(DefaultIgnoreExitCodes))
		for i, c := range DefaultIgnoreExitCodes {
			items[i] = c
		}
	}

	codes := make(map[int]struct{})
	for _, item := range items {
		f, ok := asNumber(item)
		if !ok {
			continue
		}
		code := truncInt(f)
		if code == 0 {
			continue
		}
		codes[code] = struct{}{}
	}
	return codes
}

// NormalizeDebounceMs clamps raw to [0, MaxDebounceMs].
func NormalizeDebounceMs(raw any) int {
	f, ok := asNumber(raw)
	if !ok {
		return DefaultDebounceMs
	}
	f = math.Max(0, math.Min(MaxDebounceMs, f))
	return int(math.Trunc(f))
}

// NormalizeBool returns raw when it is a bool, def otherwise.
func NormalizeBool(raw any, def bool) bool {
	if b, ok := raw.(bool); ok {
		return b
	}
	return def
}

// NormalizeString returns the trimmed string value of raw, or "".
func NormalizeString(raw any) string {
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func compileDefaults() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(DefaultErrorPatterns))
	for _, p := range DefaultErrorPatterns {
		out = append(out, regexp.MustCompile("(?i)"+p))
	}
	return out
}

func compileInsensitive(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}

// asSlice accepts any slice or array, whatever its element type, since
// decoders differ ([]any from JSON, []string from flags, []int64 from TOML).
func asSlice(raw any) ([]any, bool) {
	if raw == nil {
		return nil, false
	}
	if items, ok := raw.([]any); ok {
		return items, true
	}
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, v.Len())
	for i := range items {
		items[i] = v.Index(i).Interface()
	}
	return items, true
}

// asNumber reports whether raw has a numeric Go type with a finite value.
// Strings never count, even when they look numeric.
// truncInt truncates f toward zero, saturating at the int range.
func truncInt(f float64) int {
	switch {
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(math.Trunc(f))
}

func asNumber(raw any) (float64, bool) {
	var f float64
	switch n := raw.(type) {
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
