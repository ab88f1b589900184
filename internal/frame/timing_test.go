package frame

import (
	"testing"
	"time"
)

func TestTimingAverage(t *testing.T) {
	tm := NewTiming(4)

	if _, ok := tm.Average(); ok {
		t.Error("average should not be ready on an empty window")
	}

	for _, ms := range []int{2, 4, 6} {
		tm.Add(time.Duration(ms) * time.Millisecond)
	}
	if _, ok := tm.Average(); ok {
		t.Error("average should not be ready before the window fills")
	}

	tm.Add(8 * time.Millisecond)
	avg, ok := tm.Average()
	if !ok || avg != 5*time.Millisecond {
		t.Errorf("expected 5ms, got %v (ok=%v)", avg, ok)
	}

	tm.Add(10 * time.Millisecond)
	avg, _ = tm.Average()
	if avg != 7*time.Millisecond {
		t.Errorf("expected rolling average 7ms, got %v", avg)
	}
}

func TestTimingValues(t *testing.T) {
	tm := NewTiming(3)
	tm.Add(time.Millisecond)
	tm.Add(2 * time.Millisecond)

	got := tm.Values()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected [1 2], got %v", got)
	}

	tm.Add(3 * time.Millisecond)
	tm.Add(4 * time.Millisecond)
	got = tm.Values()
	want := []float64{2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestTimingString(t *testing.T) {
	tm := NewTiming(0)
	if tm.Size() != TimingWindow {
		t.Errorf("expected default window %d, got %d", TimingWindow, tm.Size())
	}
	if got := tm.String(); got != "average time to paint (over 50 frames): calculating..." {
		t.Errorf("unexpected line %q", got)
	}
	for i := 0; i < TimingWindow; i++ {
		tm.Add(1500 * time.Microsecond)
	}
	if got := tm.String(); got != "average time to paint (over 50 frames): 1.50ms" {
		t.Errorf("unexpected line %q", got)
	}
}
