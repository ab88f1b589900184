package canvas

import (
	"errors"
	"fmt"
)

// Construction errors. Drawing never fails once a Canvas exists.
var (
	// ErrInvalidConfig indicates unusable grid dimensions or framerate.
	ErrInvalidConfig = errors.New("canvas: invalid grid config")

	// ErrIncompleteTileset indicates a tileset that does not map every ink pattern.
	ErrIncompleteTileset = errors.New("canvas: incomplete tileset")
)

// ConfigError names the GridConfig field that failed validation.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s = %v", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

const (
	panicBorrowed = "canvas: drawing on a surface lent to a live transform"
	panicReleased = "canvas: use of released transform"
)
