package frame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/asciicanvas/internal/canvas"
)

// ErrStop ends a Draw loop cleanly when returned from a FrameFunc.
var ErrStop = errors.New("frame: stop")

// FrameFunc draws one frame onto a freshly cleared canvas. frame counts from 0.
type FrameFunc func(c *canvas.Canvas, frame int) error

// FrameError wraps a callback or sink failure with the frame it happened on.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}

type options struct {
	clock     Clock
	logger    *slog.Logger
	maxFrames int
}

// Option tunes a Draw loop.
type Option func(*options)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger overrides the package logger for one loop.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMaxFrames stops the loop after n frames. Zero means no limit.
func WithMaxFrames(n int) Option {
	return func(o *options) { o.maxFrames = n }
}

// Once builds a canvas from cfg, lets fn draw on it and emits the result.
// Nothing is emitted if construction or fn fails.
func Once(cfg canvas.GridConfig, sink Sink, fn func(c *canvas.Canvas) error) error {
	c, err := canvas.New(cfg)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	c.Reclaim()
	return sink.Emit(c.Render())
}

// Step draws frame n on c from scratch and returns the rendered rows. Any
// transform fn leaves borrowed is released first. Nothing is rendered when
// fn fails.
func Step(c *canvas.Canvas, fn FrameFunc, n int) ([]string, error) {
	c.Clear()
	err := fn(c, n)
	c.Reclaim()
	if err != nil {
		return nil, err
	}
	return c.Render(), nil
}

// Draw runs the render loop: clear, draw, render, emit, then sleep out the
// rest of the frame period if MaxFramerate is set. A frame that overruns
// its period is followed immediately by the next one.
//
// The loop ends when fn returns ErrStop (Draw returns nil), when fn or the
// sink fails (the error is returned as a *FrameError), when ctx is done
// (ctx.Err() is returned) or after WithMaxFrames frames.
func Draw(ctx context.Context, cfg canvas.GridConfig, sink Sink, fn FrameFunc, opts ...Option) error {
	c, err := canvas.New(cfg)
	if err != nil {
		return err
	}

	o := options{clock: SystemClock{}, logger: Logger()}
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		log = newNopLogger()
	}
	period := cfg.FramePeriod()
	status, hasStatus := sink.(StatusSink)

	var timing *Timing
	if cfg.PrintTiming {
		timing = NewTiming(TimingWindow)
	}

	log.Debug("render loop started",
		"cells", fmt.Sprintf("%dx%d", cfg.CellWidth, cfg.CellHeight),
		"tileset", cfg.Tileset.Name,
		"period", period)

	for frame := 0; o.maxFrames <= 0 || frame < o.maxFrames; frame++ {
		select {
		case <-ctx.Done():
			log.Debug("render loop canceled", "frame", frame)
			return ctx.Err()
		default:
		}

		start := o.clock.Now()

		rows, err := Step(c, fn, frame)
		if errors.Is(err, ErrStop) {
			log.Debug("render loop stopped", "frame", frame)
			return nil
		}
		if err != nil {
			log.Debug("frame failed", "frame", frame, "err", err)
			return &FrameError{Frame: frame, Wrapped: err}
		}

		if err := sink.Emit(rows); err != nil {
			return &FrameError{Frame: frame, Wrapped: err}
		}

		spent := o.clock.Now().Sub(start)

		if timing != nil {
			timing.Add(spent)
			line := timing.String()
			if hasStatus {
				if err := status.Status(line); err != nil {
					return &FrameError{Frame: frame, Wrapped: err}
				}
			} else {
				log.Info(line, "frame", frame)
			}
		}

		if period > 0 && spent < period {
			select {
			case <-ctx.Done():
				log.Debug("render loop canceled", "frame", frame)
				return ctx.Err()
			case <-o.clock.After(period - spent):
			}
		}
	}

	log.Debug("render loop finished", "frames", o.maxFrames)
	return nil
}
