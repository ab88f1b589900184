// Package tileset maps sub-cell ink patterns to printable glyphs.
package tileset

import (
	"errors"
	"fmt"
)

// MaxCells bounds SubdivX*SubdivY so the glyph table stays addressable.
const MaxCells = 16

// ErrIncomplete indicates a tileset that does not map every ink pattern.
var ErrIncomplete = errors.New("tileset: mapping is not total")

// MissingGlyphError reports the first ink pattern without a glyph.
type MissingGlyphError struct {
	Tileset string
	Key     int
	Want    int
	Have    int
}

func (e *MissingGlyphError) Error() string {
	if e.Key < 0 {
		return fmt.Sprintf("tileset %q: unusable subdivision (%d patterns declared)", e.Tileset, e.Want)
	}
	return fmt.Sprintf("tileset %q: no glyph for pattern %#b (%d of %d patterns mapped)", e.Tileset, e.Key, e.Have, e.Want)
}

func (e *MissingGlyphError) Unwrap() error {
	return ErrIncomplete
}

// Tileset maps the ink pattern of one character cell to a printable glyph.
//
// A cell is split into SubdivX columns and SubdivY rows of sub-cells. The
// pattern key packs those bits row-major, top-left sub-cell in the most
// significant bit, so Glyphs needs 2^(SubdivX*SubdivY) entries.
type Tileset struct {
	Name    string
	SubdivX int
	SubdivY int
	Glyphs  []rune
}

// Cells returns the number of sub-cells per character.
func (t Tileset) Cells() int {
	return t.SubdivX * t.SubdivY
}

// Patterns returns the number of distinct keys the tileset must map.
func (t Tileset) Patterns() int {
	n := t.Cells()
	if n <= 0 || n > MaxCells {
		return 0
	}
	return 1 << n
}

// Validate checks that every key in [0, Patterns()) has a glyph.
func (t Tileset) Validate() error {
	want := t.Patterns()
	if want == 0 {
		return &MissingGlyphError{Tileset: t.Name, Key: -1, Want: t.Cells()}
	}
	have := 0
	missing := -1
	for key := 0; key < want; key++ {
		if key < len(t.Glyphs) && t.Glyphs[key] != 0 {
			have++
			continue
		}
		if missing < 0 {
			missing = key
		}
	}
	if missing >= 0 {
		return &MissingGlyphError{Tileset: t.Name, Key: missing, Want: want, Have: have}
	}
	return nil
}

// Glyph returns the glyph for key. The tileset must have passed Validate.
func (t Tileset) Glyph(key int) rune {
	return t.Glyphs[key]
}

// Blank returns the glyph for an empty cell.
func (t Tileset) Blank() rune {
	return t.Glyphs[0]
}

// Full returns the glyph for a cell with every sub-cell inked.
func (t Tileset) Full() rune {
	return t.Glyphs[t.Patterns()-1]
}

// Key packs a row-major slice of sub-cell bits into a pattern key.
func (t Tileset) Key(bits []bool) int {
	key := 0
	for _, b := range bits {
		key <<= 1
		if b {
			key |= 1
		}
	}
	return key
}

// Bits unpacks key into row-major sub-cell bits, the inverse of Key.
func (t Tileset) Bits(key int) []bool {
	n := t.Cells()
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = key&(1<<(n-1-i)) != 0
	}
	return bits
}

// Keys maps each glyph back to its pattern key. When a glyph appears more
// than once the lowest key wins.
func (t Tileset) Keys() map[rune]int {
	keys := make(map[rune]int, len(t.Glyphs))
	for k, g := range t.Glyphs {
		if _, ok := keys[g]; !ok {
			keys[g] = k
		}
	}
	return keys
}
