package export

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"image/png"
	"strings"
	"testing"

	"github.com/san-kum/asciicanvas/internal/canvas"
	"github.com/san-kum/asciicanvas/internal/tileset"
)

func drawn(t *testing.T, ts tileset.Tileset) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(canvas.GridConfig{CellWidth: 12, CellHeight: 6, Tileset: ts})
	if err != nil {
		t.Fatal(err)
	}
	c.Circle(6, 3, 2.5)
	c.Line(0, 0, 11, 5)
	return c
}

func samePixels(a, b *image.Paletted) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for y := a.Bounds().Min.Y; y < a.Bounds().Max.Y; y++ {
		for x := a.Bounds().Min.X; x < a.Bounds().Max.X; x++ {
			if a.ColorIndexAt(x, y) != b.ColorIndexAt(x, y) {
				return false
			}
		}
	}
	return true
}

func TestBitmapMatchesCanvas(t *testing.T) {
	for _, ts := range []tileset.Tileset{tileset.PureASCII, tileset.Braille, tileset.BrailleBlocks, tileset.Solid} {
		c := drawn(t, ts)

		got, err := Bitmap(c.Render(), ts)
		if err != nil {
			t.Fatalf("%s: %v", ts.Name, err)
		}
		if want := c.Image(Paper, Ink); !samePixels(got, want) {
			t.Errorf("%s: decoded bitmap differs from the ink buffer", ts.Name)
		}
	}
}

func TestBitmapUnknownGlyph(t *testing.T) {
	_, err := Bitmap([]string{"  ", " x"}, tileset.Solid)

	var unknown *UnknownGlyphError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownGlyphError, got %v", err)
	}
	if unknown.Glyph != 'x' || unknown.Row != 1 || unknown.Col != 1 {
		t.Errorf("unexpected error details %+v", unknown)
	}
}

func TestSVG(t *testing.T) {
	img, _ := Bitmap([]string{"# ", " #"}, tileset.Solid)

	out := SVG(img, 10, false)
	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>") {
		t.Error("expected a complete SVG document")
	}
	if !strings.Contains(out, `width="20" height="20"`) {
		t.Errorf("expected 20x20 document, got %s", out)
	}
	if n := strings.Count(out, "<rect x="); n != 2 {
		t.Errorf("expected 2 inked squares, got %d", n)
	}

	dots := SVG(img, 10, true)
	if n := strings.Count(dots, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(dots, `cx="15.0" cy="15.0"`) {
		t.Errorf("expected dot centered in the second pixel, got %s", dots)
	}
}

func TestPNGScaled(t *testing.T) {
	img, _ := Bitmap([]string{"# ", " #"}, tileset.Solid)

	var buf bytes.Buffer
	if err := PNG(&buf, img, 4); err != nil {
		t.Fatalf("png: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("expected 8x8, got %v", b)
	}
	if !inked(decoded.At(3, 3)) || inked(decoded.At(4, 3)) || !inked(decoded.At(7, 7)) {
		t.Error("expected pixel blocks to keep their color")
	}
}

func TestScaleIdentity(t *testing.T) {
	img, _ := Bitmap([]string{"#"}, tileset.Solid)
	if Scale(img, 1) != img {
		t.Error("expected factor 1 to return the input")
	}
}

func TestGIF(t *testing.T) {
	var frames []*image.Paletted
	for _, rows := range [][]string{{"# "}, {" #"}, {"##"}} {
		img, err := Bitmap(rows, tileset.Solid)
		if err != nil {
			t.Fatal(err)
		}
		frames = append(frames, img)
	}

	var buf bytes.Buffer
	if err := GIF(&buf, frames, 3, Delay(20)); err != nil {
		t.Fatalf("gif: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("expected 3 frames, got %d", len(anim.Image))
	}
	if anim.Delay[0] != 5 {
		t.Errorf("expected delay 5, got %d", anim.Delay[0])
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Errorf("expected 6x3 frames, got %v", b)
	}

	if err := GIF(&buf, nil, 1, 2); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}

func TestDelay(t *testing.T) {
	tests := []struct {
		fps  float64
		want int
	}{
		{0, 2}, {10, 10}, {30, 3}, {60, 2}, {1, 100},
	}
	for _, tt := range tests {
		if got := Delay(tt.fps); got != tt.want {
			t.Errorf("fps %v: expected %d, got %d", tt.fps, tt.want, got)
		}
	}
}

func TestParallelForCoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 7, 8, 33, 257} {
		seen := make([]int, n)
		parallelFor(n, func(start, end int) {
			for i := start; i < end; i++ {
				seen[i]++
			}
		})
		for i, v := range seen {
			if v != 1 {
				t.Errorf("n=%d: expected index %d visited once, got %d", n, i, v)
			}
		}
	}
}

func TestBitmapsKeepsOrder(t *testing.T) {
	ts := tileset.Solid
	frames := make([][]string, 40)
	for i := range frames {
		row := []rune(strings.Repeat(" ", 40))
		row[i] = '#'
		frames[i] = []string{string(row)}
	}

	images, err := Bitmaps(frames, ts)
	if err != nil {
		t.Fatal(err)
	}
	for i, img := range images {
		if img.ColorIndexAt(i, 0) != 1 {
			t.Errorf("frame %d: expected ink at x=%d", i, i)
		}
	}

	frames[20] = []string{"?"}
	frames[30] = []string{"?"}
	_, err = Bitmaps(frames, ts)
	var glyphErr *UnknownGlyphError
	if !errors.As(err, &glyphErr) {
		t.Fatalf("expected UnknownGlyphError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "frame 20:") {
		t.Errorf("expected first bad frame reported, got %v", err)
	}
}
