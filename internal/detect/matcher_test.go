package detect

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"
)

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile("(?i)" + e)
	}
	return out
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"csi color", "build \x1b[31mError\x1b[0m: boom", "build Error: boom"},
		{"osc bel", "\x1b]0;title\x07prompt$ ", "prompt$ "},
		{"osc st", "\x1b]8;;http://x\x1b\\link\x1b]8;;\x1b\\", "link"},
		{"single char escape", "a\x1b7b\x1b8c", "abc"},
		{"plain", "nothing to strip", "nothing to strip"},
		{"newlines kept", "line1\r\nline2", "line1\r\nline2"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StripANSI(tc.input)
			if got != tc.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tc.input, got, tc.want)
			}
			if again := StripANSI(got); again != got {
				t.Errorf("not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestMatcherAcrossChunks(t *testing.T) {
	m := NewMatcher(DefaultBufferLimit)
	ps := patterns(`\bTypeError\b`)

	if m.Matches("s1", "Type", ps) {
		t.Fatal("first half alone should not match")
	}
	if !m.Matches("s1", "Error: x is not a function", ps) {
		t.Fatal("joined chunks should match")
	}
}

func TestMatcherColorSplitWord(t *testing.T) {
	m := NewMatcher(DefaultBufferLimit)
	ps := patterns(`\bFATAL\b`)
	if m.Matches("s", "\x1b[1;31mFA", ps) {
		t.Fatal("partial word should not match")
	}
	if !m.Matches("s", "TAL\x1b[0m something broke", ps) {
		t.Fatal("word split across colored chunks should match")
	}
}

func TestMatcherSessionIsolation(t *testing.T) {
	ps := patterns(`\bTypeError\b`)

	interleaved := NewMatcher(DefaultBufferLimit)
	a1 := interleaved.Matches("a", "Type", ps)
	b1 := interleaved.Matches("b", "Type", ps)
	a2 := interleaved.Matches("a", "Script ok", ps)
	b2 := interleaved.Matches("b", "Error", ps)

	isolatedA := NewMatcher(DefaultBufferLimit)
	wantA1 := isolatedA.Matches("a", "Type", ps)
	wantA2 := isolatedA.Matches("a", "Script ok", ps)
	isolatedB := NewMatcher(DefaultBufferLimit)
	wantB1 := isolatedB.Matches("b", "Type", ps)
	wantB2 := isolatedB.Matches("b", "Error", ps)

	if a1 != wantA1 || a2 != wantA2 || b1 != wantB1 || b2 != wantB2 {
		t.Errorf("interleaved = (%v %v %v %v), isolated = (%v %v %v %v)",
			a1, a2, b1, b2, wantA1, wantA2, wantB1, wantB2)
	}
	if a2 {
		t.Error("session a should not see session b's text")
	}
	if !b2 {
		t.Error("session b should match its own joined chunks")
	}
}

func TestMatcherBufferBound(t *testing.T) {
	m := NewMatcher(DefaultBufferLimit)
	var all strings.Builder
	for i := 0; i < 2000; i++ {
		chunk := string(rune('a'+i%26)) + "éxyz"
		all.WriteString(chunk)
		m.Matches("s", chunk, nil)
		if n := m.Len("s"); n > DefaultBufferLimit {
			t.Fatalf("buffer length %d exceeds %d", n, DefaultBufferLimit)
		}
	}
	if m.Len("s") != DefaultBufferLimit {
		t.Errorf("Len = %d, want %d", m.Len("s"), DefaultBufferLimit)
	}
	if !strings.HasSuffix(all.String(), m.Buffer("s")) {
		t.Error("retained text should be the most recent suffix")
	}
	if !utf8.ValidString(m.Buffer("s")) {
		t.Error("truncation split a rune")
	}
}

func TestMatcherOversizedChunk(t *testing.T) {
	m := NewMatcher(DefaultBufferLimit)
	ps := patterns(`\bError\b`)
	chunk := "Error " + strings.Repeat("x", 10000)
	if m.Matches("s", chunk, ps) {
		t.Error("match scrolled out of the window should not fire")
	}
	if m.Len("s") != DefaultBufferLimit {
		t.Errorf("Len = %d", m.Len("s"))
	}
}

func TestMatcherMinimumLimit(t *testing.T) {
	m := NewMatcher(10)
	if m.Limit() != MinBufferLimit {
		t.Errorf("Limit = %d, want %d", m.Limit(), MinBufferLimit)
	}
}

func TestMatcherClear(t *testing.T) {
	m := NewMatcher(DefaultBufferLimit)
	ps := patterns(`\bError\b`)
	if !m.Matches("s", "Error: one", ps) {
		t.Fatal("expected match")
	}
	m.Clear("s")
	if m.Sessions() != 0 {
		t.Errorf("Sessions = %d after Clear", m.Sessions())
	}
	if m.Matches("s", "continuing", ps) {
		t.Error("cleared text should not re-trigger")
	}
	m.Clear("never-seen")
}

func TestMatcherFirstPatternWins(t *testing.T) {
	m := NewMatcher(DefaultBufferLimit)
	ps := patterns(`never`, `\bFATAL\b`, `\bError\b`)
	re, ok := m.Match("s", "fatal Error", ps)
	if !ok {
		t.Fatal("expected match")
	}
	if re != ps[1] {
		t.Errorf("matched %v, want %v", re, ps[1])
	}
}

func TestMatcherRepeatedCallsStable(t *testing.T) {
	m := NewMatcher(DefaultBufferLimit)
	ps := patterns(`\bError\b`)
	for i := 0; i < 3; i++ {
		if !m.Matches("s", " Error ", ps) {
			t.Fatalf("call %d: expected match", i)
		}
	}
}
