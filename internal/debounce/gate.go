// Package debounce limits how often alerts may fire.
package debounce

import "time"

// Gate allows at most one trigger per window. The zero window allows every
// trigger. A Gate is not safe for concurrent use.
type Gate struct {
	window time.Duration
	last   time.Time
	fired  bool
}

// New creates a Gate with the given window in milliseconds.
// Negative windows are treated as zero.
func New(windowMs int) *Gate {
	return &Gate{window: toWindow(windowMs)}
}

// CanTrigger reports whether a trigger at now is allowed, and records now
// as the last trigger time when it is.
func (g *Gate) CanTrigger(now time.Time) bool {
	if g.window > 0 && g.fired && now.Sub(g.last) < g.window {
		return false
	}
	g.last = now
	g.fired = true
	return true
}

// UpdateDebounceMs replaces the window. The last trigger time is kept, so
// a shorter window may allow a trigger right away and a longer one extends
// the current suppression.
func (g *Gate) UpdateDebounceMs(windowMs int) {
	g.window = toWindow(windowMs)
}

// Window returns the current window.
func (g *Gate) Window() time.Duration {
	return g.window
}

// LastTriggered returns the time of the last allowed trigger and whether
// there has been one.
func (g *Gate) LastTriggered() (time.Time, bool) {
	return g.last, g.fired
}

func toWindow(ms int) time.Duration {
	if ms < 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
