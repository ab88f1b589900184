package store

import (
	"context"
	"time"

	"github.com/san-kum/asciicanvas/internal/frame"
)

// Replay emits frames to sink, holding each one back until its offset from
// the start has passed on clock. Frames without an offset are emitted
// immediately. speed scales the offsets; values <= 0 mean as fast as
// possible.
func Replay(ctx context.Context, frames [][]string, offsets []time.Duration, speed float64, sink frame.Sink, clock frame.Clock) error {
	start := clock.Now()
	for i, rows := range frames {
		if speed > 0 && i < len(offsets) {
			due := start.Add(time.Duration(float64(offsets[i]) / speed))
			if wait := due.Sub(clock.Now()); wait > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-clock.After(wait):
				}
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := sink.Emit(rows); err != nil {
			return &frame.FrameError{Frame: i, Wrapped: err}
		}
	}
	return nil
}

// Offsets converts the millisecond timings of a run into durations.
func Offsets(ms []float64) []time.Duration {
	out := make([]time.Duration, len(ms))
	for i, v := range ms {
		out[i] = time.Duration(v * float64(time.Millisecond))
	}
	return out
}
