package runtime

import (
	"strings"
	"sync"

	"github.com/lazyvibe/failbell/internal/detect"
)

// RingBuffer keeps the most recent bytes of a session's output.
type RingBuffer struct {
	mu   sync.RWMutex
	data []byte
	size int
}

// NewRingBuffer creates a new ring buffer with the given capacity.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = 1
	}
	return &RingBuffer{
		data: make([]byte, 0, size),
		size: size,
	}
}

// Write appends p, discarding the oldest bytes beyond capacity.
func (r *RingBuffer) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n = len(p)
	if len(p) >= r.size {
		r.data = append(r.data[:0], p[len(p)-r.size:]...)
		return n, nil
	}
	if overflow := len(r.data) + len(p) - r.size; overflow > 0 {
		copy(r.data, r.data[overflow:])
		r.data = r.data[:len(r.data)-overflow]
	}
	r.data = append(r.data, p...)
	return n, nil
}

// Bytes returns a copy of the buffered data in order.
func (r *RingBuffer) Bytes() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.data) == 0 {
		return nil
	}
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out
}

// Len returns the current number of bytes in the buffer.
func (r *RingBuffer) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Reset clears the buffer.
func (r *RingBuffer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = r.data[:0]
}

// LastLine returns the last non-blank line of the buffered output with
// escape sequences removed.
func (r *RingBuffer) LastLine() string {
	plain := detect.StripANSI(string(r.Bytes()))
	plain = strings.ReplaceAll(plain, "\r", "\n")
	lines := strings.Split(plain, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
