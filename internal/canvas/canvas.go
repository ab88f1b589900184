package canvas

import (
	"image"
	"image/color"
	"strings"

	"github.com/san-kum/asciicanvas/internal/tileset"
)

// Canvas owns a rectangular buffer of ink bits, SubdivX*SubdivY per cell.
type Canvas struct {
	lender

	cfg    GridConfig
	ts     tileset.Tileset
	sx, sy int
	w, h   int
	ink    []bool
}

// New allocates an empty canvas. It fails with ErrInvalidConfig or
// ErrIncompleteTileset; nothing after construction can fail.
func New(cfg GridConfig) (*Canvas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ts := cfg.Tileset
	c := &Canvas{
		cfg: cfg,
		ts:  ts,
		sx:  ts.SubdivX,
		sy:  ts.SubdivY,
		w:   cfg.CellWidth * ts.SubdivX,
		h:   cfg.CellHeight * ts.SubdivY,
	}
	c.ink = make([]bool, c.w*c.h)
	return c, nil
}

func (c *Canvas) Config() GridConfig { return c.cfg }
func (c *Canvas) Width() int         { return c.cfg.CellWidth }
func (c *Canvas) Height() int        { return c.cfg.CellHeight }

// Size returns the buffer dimensions in sub-cells.
func (c *Canvas) Size() (w, h int) { return c.w, c.h }

// Clear erases every ink bit.
func (c *Canvas) Clear() {
	c.mustBeFree()
	clear(c.ink)
}

// Ink reports whether the sub-cell at (x, y) is set. Out-of-range is false.
func (c *Canvas) Ink(x, y int) bool {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return false
	}
	return c.ink[y*c.w+x]
}

// Empty reports whether no ink has been drawn since the last Clear.
func (c *Canvas) Empty() bool {
	for _, b := range c.ink {
		if b {
			return false
		}
	}
	return true
}

// set inks a sub-cell, dropping anything outside the buffer.
func (c *Canvas) set(x, y int) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.ink[y*c.w+x] = true
}

// Plot inks the sub-cell containing the cell-space point (x, y).
func (c *Canvas) Plot(x, y float64) {
	c.mustBeFree()
	c.plot(x, y)
}

func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	c.mustBeFree()
	c.line(x0, y0, x1, y1)
}

// Ellipse draws an axis-aligned ellipse with radii rx and ry.
func (c *Canvas) Ellipse(cx, cy, rx, ry float64) {
	c.mustBeFree()
	c.ellipse(cx, cy, rx, ry, 0)
}

// RotatedEllipse draws an ellipse turned by keel radians about its center.
func (c *Canvas) RotatedEllipse(cx, cy, rx, ry, keel float64) {
	c.mustBeFree()
	c.ellipse(cx, cy, rx, ry, keel)
}

func (c *Canvas) Circle(cx, cy, r float64) {
	c.mustBeFree()
	c.ellipse(cx, cy, r, r, 0)
}

// Transform lends the canvas to a new identity Transform. The canvas cannot
// be drawn on directly until the Transform is released.
func (c *Canvas) Transform() *Transform {
	return c.lend(c)
}

// WithTransform runs fn with a fresh Transform and releases it when fn
// returns or panics.
func (c *Canvas) WithTransform(fn func(*Transform)) {
	t := c.Transform()
	defer t.Release()
	fn(t)
}

// Reclaim releases any Transform still borrowing the canvas.
func (c *Canvas) Reclaim() {
	if c.child != nil {
		c.child.Release()
	}
}

// Render quantizes the buffer into CellHeight rows of CellWidth glyphs.
func (c *Canvas) Render() []string {
	rows := make([]string, c.cfg.CellHeight)
	var b strings.Builder
	for row := range rows {
		b.Reset()
		for col := 0; col < c.cfg.CellWidth; col++ {
			b.WriteRune(c.ts.Glyph(c.key(col, row)))
		}
		rows[row] = b.String()
	}
	return rows
}

// key packs the sub-cells of one character cell, row-major, top-left first
// in the most significant bit.
func (c *Canvas) key(col, row int) int {
	key := 0
	x0, y0 := col*c.sx, row*c.sy
	for y := y0; y < y0+c.sy; y++ {
		base := y * c.w
		for x := x0; x < x0+c.sx; x++ {
			key <<= 1
			if c.ink[base+x] {
				key |= 1
			}
		}
	}
	return key
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Render() {
		b.WriteString(row + "\n")
	}
	return b.String()
}

// Image returns the ink buffer as a two-color image, one pixel per sub-cell.
func (c *Canvas) Image(paper, ink color.Color) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.w, c.h), color.Palette{paper, ink})
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			if c.ink[y*c.w+x] {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img
}
