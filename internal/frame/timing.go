package frame

import (
	"fmt"
	"time"
)

// TimingWindow is the number of frames averaged for timing reports.
const TimingWindow = 50

// Timing is a rolling window of frame durations.
type Timing struct {
	samples []time.Duration
	next    int
	full    bool
}

func NewTiming(size int) *Timing {
	if size <= 0 {
		size = TimingWindow
	}
	return &Timing{samples: make([]time.Duration, size)}
}

func (t *Timing) Add(d time.Duration) {
	t.samples[t.next] = d
	t.next++
	if t.next == len(t.samples) {
		t.next = 0
		t.full = true
	}
}

// Average returns the mean over the window; ok is false until it has filled.
func (t *Timing) Average() (avg time.Duration, ok bool) {
	if !t.full {
		return 0, false
	}
	var sum time.Duration
	for _, d := range t.samples {
		sum += d
	}
	return sum / time.Duration(len(t.samples)), true
}

// Values returns the recorded durations oldest first, in milliseconds.
func (t *Timing) Values() []float64 {
	n := t.next
	start := 0
	if t.full {
		n = len(t.samples)
		start = t.next
	}
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		d := t.samples[(start+i)%len(t.samples)]
		out = append(out, float64(d)/float64(time.Millisecond))
	}
	return out
}

func (t *Timing) Size() int { return len(t.samples) }

func (t *Timing) String() string {
	avg, ok := t.Average()
	if !ok {
		return fmt.Sprintf("average time to paint (over %d frames): calculating...", len(t.samples))
	}
	return fmt.Sprintf("average time to paint (over %d frames): %.2fms", len(t.samples), float64(avg)/float64(time.Millisecond))
}
