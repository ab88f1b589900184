package frame

import "sync"

// Sink receives each rendered frame as text rows. Terminal control (clearing,
// cursor positioning) is the sink's business.
type Sink interface {
	Emit(rows []string) error
}

// StatusSink is a Sink that can also show a one-line status under the frame.
type StatusSink interface {
	Sink
	Status(line string) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(rows []string) error

func (f SinkFunc) Emit(rows []string) error { return f(rows) }

// Capture keeps every emitted frame and status line in memory.
type Capture struct {
	mu       sync.Mutex
	frames   [][]string
	statuses []string
}

func (c *Capture) Emit(rows []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, append([]string(nil), rows...))
	return nil
}

func (c *Capture) Status(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses = append(c.statuses, line)
	return nil
}

func (c *Capture) Frames() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]string(nil), c.frames...)
}

func (c *Capture) Statuses() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.statuses...)
}

// Last returns the most recent frame, or nil.
func (c *Capture) Last() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}
