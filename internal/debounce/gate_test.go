package debounce

import (
	"testing"
	"time"
)

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return base.Add(time.Duration(ms) * time.Millisecond)
}

func TestZeroWindowAlwaysAllows(t *testing.T) {
	g := New(0)
	for _, ms := range []int{0, 0, 1, 1, 5, 3} {
		if !g.CanTrigger(at(ms)) {
			t.Fatalf("CanTrigger(%d) = false with zero window", ms)
		}
	}
	last, ok := g.LastTriggered()
	if !ok || !last.Equal(at(3)) {
		t.Errorf("last = %v, want %v", last, at(3))
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name   string
		window int
		calls  []int
		want   []bool
	}{
		{
			name:   "suppress inside window",
			window: 1000,
			calls:  []int{0, 500, 999, 1000, 1500, 2000},
			want:   []bool{true, false, false, true, false, true},
		},
		{
			name:   "suppressed calls do not extend window",
			window: 100,
			calls:  []int{0, 50, 99, 100},
			want:   []bool{true, false, false, true},
		},
		{
			name:   "first call allowed",
			window: 60000,
			calls:  []int{0},
			want:   []bool{true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New(tc.window)
			for i, ms := range tc.calls {
				if got := g.CanTrigger(at(ms)); got != tc.want[i] {
					t.Errorf("CanTrigger(%d) = %v, want %v", ms, got, tc.want[i])
				}
			}
		})
	}
}

func TestNegativeWindowClamped(t *testing.T) {
	g := New(-50)
	if g.Window() != 0 {
		t.Errorf("Window = %v, want 0", g.Window())
	}
	g.UpdateDebounceMs(-1)
	if g.Window() != 0 {
		t.Errorf("Window after update = %v, want 0", g.Window())
	}
}

func TestUpdateKeepsLastTrigger(t *testing.T) {
	g := New(5000)
	if !g.CanTrigger(at(0)) {
		t.Fatal("first trigger should pass")
	}

	g.UpdateDebounceMs(1000)
	if !g.CanTrigger(at(1200)) {
		t.Error("shrunk window should allow once elapsed")
	}

	g.UpdateDebounceMs(10000)
	if g.CanTrigger(at(5000)) {
		t.Error("grown window should still suppress from prior trigger")
	}
	if !g.CanTrigger(at(11200)) {
		t.Error("grown window should allow after it elapses")
	}
}

func TestZeroWindowAdvancesReference(t *testing.T) {
	g := New(0)
	g.CanTrigger(at(0))
	g.CanTrigger(at(900))
	g.UpdateDebounceMs(1000)
	if g.CanTrigger(at(1500)) {
		t.Error("window should measure from the most recent zero-window trigger")
	}
	if !g.CanTrigger(at(1900)) {
		t.Error("expected trigger once window elapsed")
	}
}
