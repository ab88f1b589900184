package console

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Screen shows frames on a tcell screen and owns its input loop.
type Screen struct {
	scr    tcell.Screen
	ink    tcell.Style
	status tcell.Style
	rows   int
}

// OpenScreen initializes the terminal through tcell.
func OpenScreen() (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open screen: %w", err)
	}
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewScreen(scr), nil
}

// NewScreen wraps an initialized tcell screen.
func NewScreen(scr tcell.Screen) *Screen {
	scr.HideCursor()
	return &Screen{
		scr:    scr,
		ink:    tcell.StyleDefault,
		status: tcell.StyleDefault.Dim(true),
	}
}

// Colors sets the frame foreground color.
func (s *Screen) Colors(fg tcell.Color) *Screen {
	s.ink = s.ink.Foreground(fg)
	return s
}

func (s *Screen) Emit(rows []string) error {
	s.scr.Clear()
	for y, row := range rows {
		s.put(y, row, s.ink)
	}
	s.rows = len(rows)
	s.scr.Show()
	return nil
}

func (s *Screen) Status(line string) error {
	s.put(s.rows, line, s.status)
	s.scr.Show()
	return nil
}

func (s *Screen) put(y int, text string, style tcell.Style) {
	x := 0
	for _, r := range text {
		s.scr.SetContent(x, y, r, nil, style)
		x++
	}
}

// Watch handles input until the screen is closed. q, Esc and Ctrl-C call
// cancel; resizes trigger a full repaint.
func (s *Screen) Watch(cancel context.CancelFunc) {
	go func() {
		for {
			switch ev := s.scr.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				s.scr.Sync()
			case *tcell.EventKey:
				if quitKey(ev) {
					cancel()
					return
				}
			}
		}
	}()
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Close restores the terminal.
func (s *Screen) Close() error {
	s.scr.Fini()
	return nil
}
