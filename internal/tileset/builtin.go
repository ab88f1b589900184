package tileset

import (
	"fmt"
	"sort"
)

// PureASCII draws with plain characters on a 2x2 grid of sub-cells.
//
//	bits: top-left, top-right, bottom-left, bottom-right
//	1010 -> '['   1101 -> '¶'   0100 -> '\''
var PureASCII = Tileset{
	Name:    "ascii",
	SubdivX: 2,
	SubdivY: 2,
	Glyphs: []rune{
		' ',  // 0000
		'.',  // 0001
		',',  // 0010
		'_',  // 0011
		'\'', // 0100
		']',  // 0101
		'/',  // 0110
		'd',  // 0111
		'`',  // 1000
		'\\', // 1001
		'[',  // 1010
		'b',  // 1011
		'"',  // 1100
		'¶',  // 1101
		'P',  // 1110
		'#',  // 1111
	},
}

// Solid is one sub-cell per character.
var Solid = Tileset{
	Name:    "solid",
	SubdivX: 1,
	SubdivY: 1,
	Glyphs:  []rune{' ', '#'},
}

// BrailleBlocks renders each quadrant of a 2x2 cell as a 2x2 block of
// braille dots.
var BrailleBlocks = Tileset{
	Name:    "braille-blocks",
	SubdivX: 2,
	SubdivY: 2,
	Glyphs: []rune{
		'\u2800', // 0000
		'\u28a0', // 0001
		'\u2844', // 0010
		'\u28e4', // 0011
		'\u2818', // 0100
		'\u28b8', // 0101
		'\u285c', // 0110
		'\u28fc', // 0111
		'\u2803', // 1000
		'\u28a3', // 1001
		'\u2847', // 1010
		'\u28e7', // 1011
		'\u281b', // 1100
		'\u28bb', // 1101
		'\u285f', // 1110
		'\u28ff', // 1111
	},
}

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Braille maps every 2x4 sub-cell pattern to its braille character, one dot
// per sub-cell.
var Braille = Tileset{
	Name:    "braille",
	SubdivX: 2,
	SubdivY: 4,
	Glyphs:  brailleGlyphs(),
}

func brailleGlyphs() []rune {
	const cells = 8
	glyphs := make([]rune, 1<<cells)
	for key := range glyphs {
		g := rune(0x2800)
		for i := 0; i < cells; i++ {
			if key&(1<<(cells-1-i)) == 0 {
				continue
			}
			g |= pixelMap[i/2][i%2]
		}
		glyphs[key] = g
	}
	return glyphs
}

var builtin = map[string]Tileset{
	PureASCII.Name:     PureASCII,
	Solid.Name:         Solid,
	BrailleBlocks.Name: BrailleBlocks,
	Braille.Name:       Braille,
}

// ByName returns a built-in tileset.
func ByName(name string) (Tileset, error) {
	ts, ok := builtin[name]
	if !ok {
		return Tileset{}, fmt.Errorf("unknown tileset: %s (available: %v)", name, Names())
	}
	return ts, nil
}

// Names lists the built-in tilesets in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
