package alert

import "sync"

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a user-facing message from the controller.
type Notice struct {
	Level     Level
	Message   string
	SessionID string
	Reason    string
	Pattern   string
	ExitCode  *int
	Patterns  []string
	Err       error
}

// Reporter shows notices to the user. Report may be called from playback
// goroutines.
type Reporter interface {
	Report(n Notice)
}

// NopReporter discards notices.
type NopReporter struct{}

// Report does nothing.
func (NopReporter) Report(Notice) {}

// MemoryReporter keeps notices in memory.
type MemoryReporter struct {
	mu      sync.Mutex
	notices []Notice
}

// Report appends n.
func (r *MemoryReporter) Report(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the reported notices.
func (r *MemoryReporter) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Count returns how many notices at level were reported.
func (r *MemoryReporter) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, notice := range r.notices {
		if notice.Level == level {
			n++
		}
	}
	return n
}
