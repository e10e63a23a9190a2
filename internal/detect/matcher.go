// Package detect finds error text in streamed terminal output.
package detect

import (
	"regexp"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

const (
	// DefaultBufferLimit is the number of trailing characters kept per session.
	DefaultBufferLimit = 4096
	// MinBufferLimit is the smallest limit a Matcher accepts.
	MinBufferLimit = 256
)

// SessionKey identifies a session's buffer.
type SessionKey string

// StripANSI removes CSI, OSC and single-character escape sequences.
func StripANSI(text string) string {
	return ansi.Strip(text)
}

// Matcher keeps a rolling text buffer per session so patterns that span
// chunk boundaries still match. A Matcher is not safe for concurrent use;
// feed each session's chunks in the order they were produced.
type Matcher struct {
	limit   int
	buffers map[SessionKey]string
}

// NewMatcher creates a Matcher keeping at most limit characters per
// session. Limits below MinBufferLimit are raised to it.
func NewMatcher(limit int) *Matcher {
	if limit < MinBufferLimit {
		limit = MinBufferLimit
	}
	return &Matcher{
		limit:   limit,
		buffers: make(map[SessionKey]string),
	}
}

// Limit returns the per-session character limit.
func (m *Matcher) Limit() int {
	return m.limit
}

// Matches appends chunk to the session buffer and reports whether any
// pattern matches the retained text.
func (m *Matcher) Matches(key SessionKey, chunk string, patterns []*regexp.Regexp) bool {
	_, ok := m.Match(key, chunk, patterns)
	return ok
}

// Match is Matches, also returning the first pattern that matched.
func (m *Matcher) Match(key SessionKey, chunk string, patterns []*regexp.Regexp) (*regexp.Regexp, bool) {
	text := trimTail(m.buffers[key]+StripANSI(chunk), m.limit)
	m.buffers[key] = text

	for _, re := range patterns {
		if re == nil {
			continue
		}
		if re.MatchString(text) {
			return re, true
		}
	}
	return nil, false
}

// Clear drops the buffer for key.
func (m *Matcher) Clear(key SessionKey) {
	delete(m.buffers, key)
}

// Buffer returns the retained text for key.
func (m *Matcher) Buffer(key SessionKey) string {
	return m.buffers[key]
}

// Len returns the retained character count for key.
func (m *Matcher) Len(key SessionKey) int {
	return utf8.RuneCountInString(m.buffers[key])
}

// Sessions returns the number of live buffers.
func (m *Matcher) Sessions() int {
	return len(m.buffers)
}

// trimTail keeps the last limit runes of s.
func trimTail(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	excess := utf8.RuneCountInString(s) - limit
	if excess <= 0 {
		return s
	}
	i := 0
	for ; excess > 0; excess-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[i:]
}
