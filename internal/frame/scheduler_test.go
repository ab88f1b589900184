package frame_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/asciicanvas/internal/canvas"
	"github.com/san-kum/asciicanvas/internal/frame"
	"github.com/san-kum/asciicanvas/internal/tileset"
)

// manualClock only moves when the loop sleeps or a test calls advance.
type manualClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *manualClock) Now() time.Time { return m.now }

func (m *manualClock) After(d time.Duration) <-chan time.Time {
	m.sleeps = append(m.sleeps, d)
	m.now = m.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- m.now
	return ch
}

func (m *manualClock) advance(d time.Duration) { m.now = m.now.Add(d) }

func gridConfig() canvas.GridConfig {
	return canvas.GridConfig{CellWidth: 8, CellHeight: 4, Tileset: tileset.PureASCII}
}

var _ = Describe("Once", func() {
	It("draws once and emits the rendered rows once", func() {
		sink := &frame.Capture{}
		calls := 0

		err := frame.Once(gridConfig(), sink, func(c *canvas.Canvas) error {
			calls++
			c.Line(0, 0, 7, 0)
			return nil
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal(1))
		Expect(sink.Frames()).To(HaveLen(1))
		Expect(sink.Last()).To(HaveLen(4))
		Expect(sink.Last()[0]).NotTo(ContainSubstring(" "))
		Expect(strings.TrimSpace(sink.Last()[1])).To(BeEmpty())
	})

	It("fails before drawing when the config is invalid", func() {
		sink := &frame.Capture{}
		cfg := gridConfig()
		cfg.CellWidth = 0

		err := frame.Once(cfg, sink, func(c *canvas.Canvas) error {
			Fail("callback must not run")
			return nil
		})

		Expect(err).To(MatchError(canvas.ErrInvalidConfig))
		Expect(sink.Frames()).To(BeEmpty())
	})

	It("propagates callback errors without emitting", func() {
		sink := &frame.Capture{}
		boom := errors.New("boom")

		err := frame.Once(gridConfig(), sink, func(c *canvas.Canvas) error { return boom })

		Expect(err).To(MatchError(boom))
		Expect(sink.Frames()).To(BeEmpty())
	})

	It("releases transforms the callback left open", func() {
		sink := &frame.Capture{}
		err := frame.Once(gridConfig(), sink, func(c *canvas.Canvas) error {
			c.Transform().Translate(2, 1).Circle(0, 0, 1)
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.Frames()).To(HaveLen(1))
	})
})

var _ = Describe("Draw", func() {
	var (
		clock *manualClock
		sink  *frame.Capture
		ctx   context.Context
	)

	BeforeEach(func() {
		clock = newManualClock()
		sink = &frame.Capture{}
		ctx = context.Background()
	})

	It("fails before the first frame on construction errors", func() {
		cfg := gridConfig()
		cfg.Tileset = tileset.Tileset{Name: "empty", SubdivX: 2, SubdivY: 2}
		calls := 0

		err := frame.Draw(ctx, cfg, sink, func(c *canvas.Canvas, n int) error {
			calls++
			return nil
		}, frame.WithClock(clock))

		Expect(err).To(MatchError(canvas.ErrIncompleteTileset))
		Expect(calls).To(BeZero())
		Expect(sink.Frames()).To(BeEmpty())
	})

	It("stops cleanly on ErrStop", func() {
		var seen []int
		err := frame.Draw(ctx, gridConfig(), sink, func(c *canvas.Canvas, n int) error {
			seen = append(seen, n)
			if n == 5 {
				return frame.ErrStop
			}
			return nil
		}, frame.WithClock(clock))

		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal([]int{0, 1, 2, 3, 4, 5}))
		Expect(sink.Frames()).To(HaveLen(5))
	})

	It("terminates on callback errors and reports the frame", func() {
		boom := errors.New("boom")
		err := frame.Draw(ctx, gridConfig(), sink, func(c *canvas.Canvas, n int) error {
			if n == 2 {
				return boom
			}
			return nil
		}, frame.WithClock(clock))

		Expect(err).To(MatchError(boom))
		var frameErr *frame.FrameError
		Expect(errors.As(err, &frameErr)).To(BeTrue())
		Expect(frameErr.Frame).To(Equal(2))
		Expect(sink.Frames()).To(HaveLen(2))
	})

	It("terminates on sink errors", func() {
		broken := errors.New("broken pipe")
		emitted := 0
		failing := frame.SinkFunc(func(rows []string) error {
			emitted++
			if emitted == 3 {
				return broken
			}
			return nil
		})

		err := frame.Draw(ctx, gridConfig(), failing, func(c *canvas.Canvas, n int) error {
			return nil
		}, frame.WithClock(clock))

		Expect(err).To(MatchError(broken))
		Expect(emitted).To(Equal(3))
	})

	It("clears the canvas before every frame", func() {
		err := frame.Draw(ctx, gridConfig(), sink, func(c *canvas.Canvas, n int) error {
			Expect(c.Empty()).To(BeTrue())
			if n == 0 {
				c.Circle(4, 2, 1.5)
			}
			return nil
		}, frame.WithClock(clock), frame.WithMaxFrames(2))

		Expect(err).NotTo(HaveOccurred())
		frames := sink.Frames()
		Expect(frames).To(HaveLen(2))
		Expect(strings.Join(frames[0], "")).NotTo(BeEmpty())
		Expect(strings.TrimSpace(strings.Join(frames[0], ""))).NotTo(BeEmpty())
		Expect(strings.TrimSpace(strings.Join(frames[1], ""))).To(BeEmpty())
	})

	It("reclaims transforms between frames", func() {
		err := frame.Draw(ctx, gridConfig(), sink, func(c *canvas.Canvas, n int) error {
			t := c.Transform()
			t.Rotate(float64(n)).Line(0, 0, 3, 0)
			return nil
		}, frame.WithClock(clock), frame.WithMaxFrames(3))

		Expect(err).NotTo(HaveOccurred())
		Expect(sink.Frames()).To(HaveLen(3))
	})

	It("returns the context error when canceled", func() {
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()

		err := frame.Draw(cctx, gridConfig(), sink, func(c *canvas.Canvas, n int) error {
			if n == 3 {
				cancel()
			}
			return nil
		}, frame.WithClock(clock))

		Expect(err).To(MatchError(context.Canceled))
		Expect(sink.Frames()).To(HaveLen(4))
	})

	Describe("throttling", func() {
		It("sleeps out the remainder of each frame period", func() {
			cfg := gridConfig()
			cfg.MaxFramerate = 10

			err := frame.Draw(ctx, cfg, sink, func(c *canvas.Canvas, n int) error {
				clock.advance(30 * time.Millisecond)
				return nil
			}, frame.WithClock(clock), frame.WithMaxFrames(4))

			Expect(err).NotTo(HaveOccurred())
			Expect(clock.sleeps).To(HaveLen(4))
			for _, d := range clock.sleeps {
				Expect(d).To(Equal(70 * time.Millisecond))
			}
		})

		It("never sleeps after an overrun frame", func() {
			cfg := gridConfig()
			cfg.MaxFramerate = 10

			err := frame.Draw(ctx, cfg, sink, func(c *canvas.Canvas, n int) error {
				clock.advance(150 * time.Millisecond)
				return nil
			}, frame.WithClock(clock), frame.WithMaxFrames(3))

			Expect(err).NotTo(HaveOccurred())
			Expect(clock.sleeps).To(BeEmpty())
		})

		It("does not sleep when unthrottled", func() {
			err := frame.Draw(ctx, gridConfig(), sink, func(c *canvas.Canvas, n int) error {
				return nil
			}, frame.WithClock(clock), frame.WithMaxFrames(20))

			Expect(err).NotTo(HaveOccurred())
			Expect(clock.sleeps).To(BeEmpty())
			Expect(sink.Frames()).To(HaveLen(20))
		})

		It("renders at most rate*T+1 frames in T seconds", func() {
			cfg := gridConfig()
			cfg.MaxFramerate = 10
			const seconds = 3
			start := clock.Now()

			err := frame.Draw(ctx, cfg, sink, func(c *canvas.Canvas, n int) error {
				if clock.Now().Sub(start) >= seconds*time.Second {
					return frame.ErrStop
				}
				clock.advance(time.Millisecond)
				return nil
			}, frame.WithClock(clock))

			Expect(err).NotTo(HaveOccurred())
			Expect(len(sink.Frames())).To(BeNumerically("<=", 10*seconds+1))
			Expect(len(sink.Frames())).To(BeNumerically(">=", 10*seconds-1))
		})

		It("holds the bound against the wall clock", func() {
			cfg := gridConfig()
			cfg.MaxFramerate = 20
			const window = 300 * time.Millisecond

			tctx, cancel := context.WithTimeout(ctx, window)
			defer cancel()

			err := frame.Draw(tctx, cfg, sink, func(c *canvas.Canvas, n int) error {
				c.Circle(4, 2, 1)
				return nil
			})

			Expect(err).To(MatchError(context.DeadlineExceeded))
			Expect(len(sink.Frames())).To(BeNumerically("<=", 20*window.Seconds()+1))
		})
	})

	Describe("timing", func() {
		It("reports one status line per frame", func() {
			cfg := gridConfig()
			cfg.PrintTiming = true

			err := frame.Draw(ctx, cfg, sink, func(c *canvas.Canvas, n int) error {
				clock.advance(4 * time.Millisecond)
				return nil
			}, frame.WithClock(clock), frame.WithMaxFrames(frame.TimingWindow+1))

			Expect(err).NotTo(HaveOccurred())
			statuses := sink.Statuses()
			Expect(statuses).To(HaveLen(frame.TimingWindow + 1))
			Expect(statuses[0]).To(ContainSubstring("calculating..."))
			Expect(statuses[frame.TimingWindow-1]).To(ContainSubstring("4.00ms"))
			Expect(statuses[frame.TimingWindow]).To(Equal("average time to paint (over 50 frames): 4.00ms"))
		})

		It("logs timing when the sink has no status line", func() {
			var buf bytes.Buffer
			frame.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
			DeferCleanup(func() { frame.SetLogger(nil) })

			cfg := gridConfig()
			cfg.PrintTiming = true
			plain := frame.SinkFunc(func(rows []string) error { return nil })

			err := frame.Draw(ctx, cfg, plain, func(c *canvas.Canvas, n int) error {
				return nil
			}, frame.WithClock(clock), frame.WithMaxFrames(2))

			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Count(buf.String(), "average time to paint")).To(Equal(2))
		})

		It("prefers a per-loop logger", func() {
			var buf bytes.Buffer
			cfg := gridConfig()
			cfg.PrintTiming = true
			plain := frame.SinkFunc(func(rows []string) error { return nil })

			err := frame.Draw(ctx, cfg, plain, func(c *canvas.Canvas, n int) error {
				return nil
			}, frame.WithClock(clock), frame.WithMaxFrames(1),
				frame.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(ContainSubstring("calculating..."))
		})

		It("stays quiet when timing is off", func() {
			err := frame.Draw(ctx, gridConfig(), sink, func(c *canvas.Canvas, n int) error {
				return nil
			}, frame.WithClock(clock), frame.WithMaxFrames(3))

			Expect(err).NotTo(HaveOccurred())
			Expect(sink.Statuses()).To(BeEmpty())
		})
	})
})
