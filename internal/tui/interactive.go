package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/asciicanvas/internal/canvas"
	"github.com/san-kum/asciicanvas/internal/config"
	"github.com/san-kum/asciicanvas/internal/frame"
	"github.com/san-kum/asciicanvas/internal/scenes"
	"github.com/san-kum/asciicanvas/internal/tileset"
)

// idlePeriod paces unthrottled scenes so the viewer stays responsive.
const idlePeriod = 16 * time.Millisecond

type state int

const (
	stateMenu state = iota
	stateView
)

type Model struct {
	state    state
	cursor   int
	registry *scenes.Registry
	names    []string
	base     *config.Config

	scene    scenes.Scene
	cfg      *config.Config
	tilesets []string
	canvas   *canvas.Canvas
	rows     []string
	frame    int
	paused   bool
	done     bool
	graph    bool
	timing   *frame.Timing
	clock    frame.Clock
	err      error

	width  int
	height int
}

// New returns a viewer listing the scenes of reg. base supplies the grid
// size, tileset and frame rate of every scene started from the menu.
func New(reg *scenes.Registry, base *config.Config) Model {
	return Model{
		state:    stateMenu,
		registry: reg,
		names:    reg.List(),
		base:     base.Clone(),
		tilesets: tileset.Names(),
		clock:    frame.SystemClock{},
		width:    80,
		height:   24,
	}
}

// Run starts the viewer on the alternate screen.
func Run(reg *scenes.Registry, base *config.Config) error {
	_, err := tea.NewProgram(New(reg, base), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func (m Model) tick() tea.Cmd {
	period := idlePeriod
	if m.cfg != nil && m.cfg.MaxFramerate > 0 {
		period = time.Duration(float64(time.Second) / m.cfg.MaxFramerate)
	}
	return tea.Tick(period, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateView {
			return m, nil
		}
		if !m.paused && !m.done {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateView:
		return m.viewKey(msg)
	}
	return m, nil
}

func (m Model) menuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.names) == 0 {
			return m, nil
		}
		m.start(m.names[m.cursor])
		return m, tea.Batch(tea.ClearScreen, m.tick())
	}
	return m, nil
}

func (m Model) viewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
		m.canvas = nil
		m.rows = nil
		return m, tea.ClearScreen
	case " ", "p":
		m.paused = !m.paused
	case "n", ".":
		if m.paused && !m.done {
			m.advance()
		}
	case "r":
		m.start(m.scene.Name)
	case "g":
		m.graph = !m.graph
	case "t":
		m.cycleTileset()
	}
	return m, nil
}

func (m *Model) start(name string) {
	m.state = stateView
	m.frame = 0
	m.paused = false
	m.done = false
	m.err = nil
	m.rows = nil
	m.timing = frame.NewTiming(frame.TimingWindow)

	scene, err := m.registry.Get(name)
	if err != nil {
		m.err = err
		return
	}
	m.scene = scene
	if m.cfg == nil || m.cfg.Scene != name {
		m.cfg = m.base.Clone()
		m.cfg.Scene = name
	}
	m.rebuild()
}

func (m *Model) rebuild() {
	g, err := m.cfg.GridConfig()
	if err == nil {
		m.canvas, err = canvas.New(g)
	}
	if err != nil {
		m.err = err
		m.canvas = nil
		return
	}
	m.err = nil
	m.advance()
}

func (m *Model) cycleTileset() {
	if m.cfg == nil || len(m.tilesets) == 0 {
		return
	}
	next := 0
	for i, name := range m.tilesets {
		if name == m.cfg.Tileset {
			next = (i + 1) % len(m.tilesets)
			break
		}
	}
	m.cfg.Tileset = m.tilesets[next]
	if m.frame > 0 {
		m.frame--
	}
	m.rebuild()
}

// advance renders the current frame and moves on to the next.
func (m *Model) advance() {
	if m.canvas == nil {
		return
	}
	start := m.clock.Now()
	rows, err := frame.Step(m.canvas, m.scene.Draw, m.frame)
	if errors.Is(err, frame.ErrStop) {
		m.done = true
		return
	}
	if err != nil {
		m.err = &frame.FrameError{Frame: m.frame, Wrapped: err}
		m.done = true
		return
	}
	m.timing.Add(m.clock.Now().Sub(start))
	m.rows = rows
	m.frame++
	if m.scene.Static {
		m.done = true
	}
}

func (m Model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateView:
		return m.viewScene()
	}
	return ""
}

func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("a s c i i c a n v a s") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.names {
		scene, _ := m.registry.Get(name)
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(scene.Description) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(scene.Description) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf("      %dx%d %s", m.base.Width, m.base.Height, m.base.Tileset)) + "\n")
	b.WriteString(dim.Render("      ↑↓ select   enter start   q quit") + "\n")

	return b.String()
}

func (m Model) viewScene() string {
	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	switch {
	case m.err != nil:
		statusIcon = red.Render("✕")
		statusText = red.Render("failed")
	case m.done:
		statusIcon = dim.Render("■")
		statusText = dim.Render("done")
	case m.paused:
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		statusIcon, cyan.Render(m.scene.Name), statusText,
		dim.Render(fmt.Sprintf("frame %d  %s", m.frame, m.tilesetLabel()))))

	if m.err != nil {
		b.WriteString("\n   " + red.Render(m.err.Error()) + "\n")
	}

	if len(m.rows) > 0 {
		b.WriteString(panel.Render(strings.Join(m.rows, "\n")) + "\n")
	}

	if m.timing != nil {
		b.WriteString("   " + magenta.Render(m.timing.String()) + "\n")
		if m.graph {
			if values := m.timing.Values(); len(values) > 1 {
				chart := asciigraph.Plot(values,
					asciigraph.Height(6),
					asciigraph.Width(40),
					asciigraph.Caption("paint ms"))
				b.WriteString(dim.Render(chart) + "\n")
			}
		}
	}

	b.WriteString(dim.Render("   space pause  n step  t tileset  g graph  r restart  esc back") + "\n")
	return b.String()
}

func (m Model) tilesetLabel() string {
	if m.cfg == nil {
		return ""
	}
	return m.cfg.Tileset
}
