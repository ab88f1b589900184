// Package export turns canvases and recorded frames into SVG, PNG and GIF
// files.
package export

import (
	"fmt"
	"image"
	"image/color"

	"github.com/san-kum/asciicanvas/internal/tileset"
)

var (
	Paper = color.RGBA{0x0a, 0x0a, 0x0a, 0xff}
	Ink   = color.RGBA{0x00, 0xff, 0x00, 0xff}
)

// UnknownGlyphError reports a frame character the tileset cannot decode.
type UnknownGlyphError struct {
	Glyph    rune
	Row, Col int
	Tileset  string
}

func (e *UnknownGlyphError) Error() string {
	return fmt.Sprintf("glyph %q at row %d col %d is not in tileset %s", e.Glyph, e.Row, e.Col, e.Tileset)
}

// Bitmap decodes rendered rows back into their sub-cell ink, one pixel per
// sub-cell, the same image canvas.Image would have produced.
func Bitmap(rows []string, ts tileset.Tileset) (*image.Paletted, error) {
	keys := ts.Keys()

	width := 0
	cells := make([][]rune, len(rows))
	for i, row := range rows {
		cells[i] = []rune(row)
		width = max(width, len(cells[i]))
	}

	img := image.NewPaletted(
		image.Rect(0, 0, width*ts.SubdivX, len(rows)*ts.SubdivY),
		Palette(),
	)
	for row, glyphs := range cells {
		for col, g := range glyphs {
			key, ok := keys[g]
			if !ok {
				return nil, &UnknownGlyphError{Glyph: g, Row: row, Col: col, Tileset: ts.Name}
			}
			for i, on := range ts.Bits(key) {
				if !on {
					continue
				}
				x := col*ts.SubdivX + i%ts.SubdivX
				y := row*ts.SubdivY + i/ts.SubdivX
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img, nil
}
