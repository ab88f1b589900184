package export

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// SVG draws every inked pixel of img as a dot (or a square when dots is
// false), scale user units apart.
func SVG(img image.Image, scale float64, dots bool) string {
	b := img.Bounds()
	width := float64(b.Dx()) * scale
	height := float64(b.Dy()) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, hex(Paper), hex(Ink)))

	dotRadius := scale * 0.4

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !inked(img.At(x, y)) {
				continue
			}
			px := float64(x-b.Min.X) * scale
			py := float64(y-b.Min.Y) * scale
			if dots {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, px+scale/2, py+scale/2, dotRadius))
			} else {
				sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, px, py, scale, scale))
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func inked(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	ir, ig, ib, _ := Ink.RGBA()
	return r == ir && g == ig && b == ib
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
