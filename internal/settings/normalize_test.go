package settings

import (
	"math"
	"reflect"
	"testing"
)

func TestParsePatterns(t *testing.T) {
	t.Run("mixed valid and invalid", func(t *testing.T) {
		got := ParsePatterns([]any{"Error", "[invalid", "TypeError"})
		if len(got.Compiled) != 2 {
			t.Fatalf("compiled = %d, want 2", len(got.Compiled))
		}
		if !reflect.DeepEqual(got.Invalid, []string{"[invalid"}) {
			t.Errorf("invalid = %v, want [[invalid]", got.Invalid)
		}
	})

	t.Run("non-list uses defaults", func(t *testing.T) {
		for _, raw := range []any{"not-an-array", nil, 42, map[string]any{"a": 1}} {
			got := ParsePatterns(raw)
			if len(got.Compiled) != len(DefaultErrorPatterns) {
				t.Errorf("ParsePatterns(%v) compiled = %d, want %d", raw, len(got.Compiled), len(DefaultErrorPatterns))
			}
			if len(got.Invalid) != 0 {
				t.Errorf("ParsePatterns(%v) invalid = %v, want none", raw, got.Invalid)
			}
		}
	})

	t.Run("filters non-strings and blanks", func(t *testing.T) {
		got := ParsePatterns([]any{42, "  ", "", true, "  panic  ", nil})
		if len(got.Compiled) != 1 {
			t.Fatalf("compiled = %d, want 1", len(got.Compiled))
		}
		if !got.Compiled[0].MatchString("PANIC: boom") {
			t.Error("trimmed pattern should match case-insensitively")
		}
	})

	t.Run("empty list yields no patterns", func(t *testing.T) {
		got := ParsePatterns([]any{})
		if len(got.Compiled) != 0 || len(got.Invalid) != 0 {
			t.Errorf("got %+v, want empty", got)
		}
	})

	t.Run("preserves order", func(t *testing.T) {
		got := ParsePatterns([]string{"b+", "(", "a+", "*x"})
		if len(got.Compiled) != 2 {
			t.Fatalf("compiled = %d, want 2", len(got.Compiled))
		}
		if first := PatternSource(got.Compiled[0]); first != "b+" {
			t.Errorf("first = %q, want b+", first)
		}
		if second := PatternSource(got.Compiled[1]); second != "a+" {
			t.Errorf("second = %q, want a+", second)
		}
		if !reflect.DeepEqual(got.Invalid, []string{"(", "*x"}) {
			t.Errorf("invalid = %v", got.Invalid)
		}
	})

	t.Run("defaults are case-insensitive and word-bounded", func(t *testing.T) {
		set := ParsePatterns(nil)
		tests := []struct {
			text string
			want bool
		}{
			{"fatal: not a git repository", true},
			{"Traceback (most recent call last):", true},
			{"uncaught exception", true},
			{"typeerror: x is undefined", true},
			{"errors were found", false},
			{"0 errored", false},
			{"all good", false},
		}
		for _, tc := range tests {
			matched := false
			for _, re := range set.Compiled {
				if re.MatchString(tc.text) {
					matched = true
					break
				}
			}
			if matched != tc.want {
				t.Errorf("%q matched = %v, want %v", tc.text, matched, tc.want)
			}
		}
	})
}

func TestNormalizeIgnoreExitCodes(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []int
	}{
		{
			name: "mixed entries",
			raw:  []any{130, 2.8, 130, 0, "9"},
			want: []int{2, 130},
		},
		{
			name: "non-list uses default",
			raw:  "130",
			want: []int{130},
		},
		{
			name: "nil uses default",
			raw:  nil,
			want: []int{130},
		},
		{
			name: "negative truncates toward zero",
			raw:  []any{-1.9, -0.4},
			want: []int{-1},
		},
		{
			name: "non-finite dropped",
			raw:  []any{math.NaN(), math.Inf(1), 1.0},
			want: []int{1},
		},
		{
			name: "large codes saturate",
			raw:  []any{1e300, -1e300, 7.0},
			want: []int{math.MinInt, 7, math.MaxInt},
		},
		{
			name: "toml style int64",
			raw:  []int64{1, 2, 2},
			want: []int{1, 2},
		},
		{
			name: "empty list ignores nothing",
			raw:  []any{},
			want: []int{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeIgnoreExitCodes(tc.raw)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for _, c := range tc.want {
				if _, ok := got[c]; !ok {
					t.Errorf("missing %d in %v", c, got)
				}
			}
			if _, ok := got[0]; ok {
				t.Error("set must never contain 0")
			}
		})
	}
}

func TestNormalizeDebounceMs(t *testing.T) {
	tests := []struct {
		raw  any
		want int
	}{
		{"abc", 1200},
		{"500", 1200},
		{nil, 1200},
		{math.NaN(), 1200},
		{math.Inf(1), 1200},
		{-5, 0},
		{80000, 60000},
		{250.9, 250},
		{0, 0},
		{float64(60000), 60000},
		{int64(300), 300},
	}
	for _, tc := range tests {
		if got := NormalizeDebounceMs(tc.raw); got != tc.want {
			t.Errorf("NormalizeDebounceMs(%v) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeBoolAndString(t *testing.T) {
	if !NormalizeBool("false", true) {
		t.Error("string should fall back to default")
	}
	if NormalizeBool(false, true) {
		t.Error("bool false should be kept")
	}
	if got := NormalizeString("  /tmp/a.wav "); got != "/tmp/a.wav" {
		t.Errorf("NormalizeString = %q", got)
	}
	if got := NormalizeString(12); got != "" {
		t.Errorf("NormalizeString(12) = %q, want empty", got)
	}
}
