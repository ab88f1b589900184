package store

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/san-kum/asciicanvas/internal/frame"
)

var ErrClosed = errors.New("store: recorder closed")

// Recorder is a frame sink that writes every frame to a new run on disk and
// passes it on to the next sink, if any.
type Recorder struct {
	dir   string
	meta  RunMetadata
	next  frame.Sink
	clock frame.Clock

	file   *os.File
	w      *bufio.Writer
	start  time.Time
	times  []time.Duration
	closed bool
}

// Record opens a new run described by meta. ID, Timestamp, Frames and Stats
// are filled in by the recorder.
func (s *Store) Record(meta RunMetadata, next frame.Sink) (*Recorder, error) {
	now := time.Now()
	id, dir, err := s.newRunDir(meta.Scene, now)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(filepath.Join(dir, framesFile))
	if err != nil {
		return nil, err
	}

	meta.ID = id
	meta.Timestamp = now
	return &Recorder{
		dir:   dir,
		meta:  meta,
		next:  next,
		clock: frame.SystemClock{},
		file:  f,
		w:     bufio.NewWriter(f),
	}, nil
}

// WithClock replaces the clock used to timestamp frames.
func (r *Recorder) WithClock(c frame.Clock) *Recorder {
	r.clock = c
	return r
}

func (r *Recorder) ID() string { return r.meta.ID }

func (r *Recorder) Emit(rows []string) error {
	if r.closed {
		return ErrClosed
	}

	now := r.clock.Now()
	if len(r.times) == 0 {
		r.start = now
	} else {
		r.w.WriteString(frameSeparator + "\n")
	}
	r.times = append(r.times, now.Sub(r.start))

	for _, row := range rows {
		r.w.WriteString(row)
		r.w.WriteByte('\n')
	}

	if r.next != nil {
		return r.next.Emit(rows)
	}
	return nil
}

func (r *Recorder) Status(line string) error {
	if st, ok := r.next.(frame.StatusSink); ok {
		return st.Status(line)
	}
	return nil
}

// Close finishes the run: frames are flushed and the timings and metadata
// files written. Closing twice is a no-op.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	err := r.w.Flush()
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if err := writeTimings(r.dir, r.times); err != nil {
		return err
	}

	r.meta.Frames = len(r.times)
	r.meta.Stats = stats(r.times)
	return writeMetadata(r.dir, r.meta)
}

func stats(times []time.Duration) map[string]float64 {
	out := map[string]float64{"duration_ms": 0, "fps": 0}
	if len(times) < 2 {
		return out
	}
	total := times[len(times)-1]
	out["duration_ms"] = float64(total) / float64(time.Millisecond)
	if total > 0 {
		out["fps"] = float64(len(times)-1) / total.Seconds()
	}
	return out
}

// LoadFrames reads back the frames of a run in order.
func (s *Store) LoadFrames(runID string) ([][]string, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	return parseFrames(string(data)), nil
}

func parseFrames(text string) [][]string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return [][]string{}
	}

	frames := [][]string{{}}
	for _, line := range strings.Split(text, "\n") {
		if line == frameSeparator {
			frames = append(frames, []string{})
			continue
		}
		last := len(frames) - 1
		frames[last] = append(frames[last], line)
	}
	return frames
}
