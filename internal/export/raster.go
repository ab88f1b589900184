package export

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

var ErrNoFrames = errors.New("export: no frames")

// Scale enlarges img by an integer factor without smoothing so every
// sub-cell stays a crisp square.
func Scale(img *image.Paletted, factor int) *image.Paletted {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor), img.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// PNG writes img scaled by factor.
func PNG(w io.Writer, img *image.Paletted, factor int) error {
	return png.Encode(w, Scale(img, factor))
}

// GIF writes frames as a looping animation. delay is in hundredths of a
// second per frame.
func GIF(w io.Writer, frames []*image.Paletted, factor, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, Scale(frame, factor))
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// Delay converts a frame rate into a GIF frame delay, at least 2 (the
// smallest most viewers honor).
func Delay(fps float64) int {
	if fps <= 0 {
		return 2
	}
	return max(2, int(100/fps+0.5))
}

// Palette returns the two-color palette used by every export.
func Palette() color.Palette {
	return color.Palette{Paper, Ink}
}
