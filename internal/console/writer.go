package console

import (
	"io"
	"strings"
	"sync"
)

const (
	clearScreen = "\033[2J"
	cursorHome  = "\033[H"
	clearLine   = "\033[K"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Writer prints frames to an io.Writer. In live mode every frame repaints
// the screen in place; otherwise frames are appended one after another.
type Writer struct {
	mu      sync.Mutex
	out     io.Writer
	live    bool
	started bool
	indent  string
}

// NewWriter returns a Writer on out. live selects in-place repainting.
func NewWriter(out io.Writer, live bool) *Writer {
	return &Writer{out: out, live: live}
}

// Indent prefixes every row with n spaces.
func (w *Writer) Indent(n int) *Writer {
	w.indent = strings.Repeat(" ", n)
	return w
}

func (w *Writer) Emit(rows []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var b strings.Builder
	if w.live {
		if !w.started {
			b.WriteString(hideCursor)
			b.WriteString(clearScreen)
			w.started = true
		}
		b.WriteString(cursorHome)
	}
	for _, row := range rows {
		b.WriteString(w.indent)
		b.WriteString(row)
		if w.live {
			b.WriteString(clearLine)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w.out, b.String())
	return err
}

// Status prints line below the last frame.
func (w *Writer) Status(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.indent + line
	if w.live {
		s += clearLine
	}
	_, err := io.WriteString(w.out, s+"\n")
	return err
}

// Close restores the cursor after a live session. It is a no-op otherwise.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.live || !w.started {
		return nil
	}
	w.started = false
	_, err := io.WriteString(w.out, showCursor)
	return err
}
