package canvas

import (
	"fmt"
	"time"

	"github.com/san-kum/asciicanvas/internal/tileset"
)

// GridConfig is read once when a Canvas is built.
type GridConfig struct {
	// CellWidth is the number of character columns.
	CellWidth int
	// CellHeight is the number of character rows.
	CellHeight int
	// Tileset turns each cell's ink pattern into a glyph.
	Tileset tileset.Tileset
	// MaxFramerate caps frames per second in a render loop. Zero is unthrottled.
	MaxFramerate float64
	// PrintTiming reports a rolling average of frame durations.
	PrintTiming bool
}

// FramePeriod returns the target time per frame, or zero when unthrottled.
func (g GridConfig) FramePeriod() time.Duration {
	if g.MaxFramerate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / g.MaxFramerate)
}

// Validate reports the first problem that would stop New.
func (g GridConfig) Validate() error {
	if g.CellWidth <= 0 {
		return &ConfigError{Field: "CellWidth", Value: g.CellWidth, Wrapped: ErrInvalidConfig}
	}
	if g.CellHeight <= 0 {
		return &ConfigError{Field: "CellHeight", Value: g.CellHeight, Wrapped: ErrInvalidConfig}
	}
	if g.MaxFramerate < 0 || g.MaxFramerate != g.MaxFramerate {
		return &ConfigError{Field: "MaxFramerate", Value: g.MaxFramerate, Wrapped: ErrInvalidConfig}
	}
	ts := g.Tileset
	if ts.SubdivX <= 0 || ts.SubdivY <= 0 || ts.Cells() > tileset.MaxCells {
		sub := fmt.Sprintf("%dx%d", ts.SubdivX, ts.SubdivY)
		return &ConfigError{Field: "Tileset.Subdiv", Value: sub, Wrapped: ErrInvalidConfig}
	}
	if err := ts.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrIncompleteTileset, err)
	}
	return nil
}
