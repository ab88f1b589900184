package scenes

import (
	"math"

	"github.com/san-kum/asciicanvas/internal/canvas"
)

// stageMargin keeps shapes drawn on the 0 and 100 edges inside the grid.
const stageMargin = 2

// stage maps a square 100x100 world onto the largest centered square of the
// canvas, in cell units.
type stage struct {
	u, cx, cy float64
}

func newStage(c *canvas.Canvas) stage {
	w, h := float64(c.Width()), float64(c.Height())
	return stage{
		u:  math.Min(w, h) / (100 + stageMargin),
		cx: w / 2,
		cy: h / 2,
	}
}

func (s stage) at(x, y float64) (float64, float64) {
	return s.cx + (x-50)*s.u, s.cy + (y-50)*s.u
}

func (s stage) len(v float64) float64 { return v * s.u }

func (s stage) line(d canvas.Drawer, x0, y0, x1, y1 float64) {
	ax, ay := s.at(x0, y0)
	bx, by := s.at(x1, y1)
	d.Line(ax, ay, bx, by)
}

func (s stage) circle(d canvas.Drawer, x, y, r float64) {
	cx, cy := s.at(x, y)
	d.Circle(cx, cy, s.len(r))
}

func (s stage) ellipse(d canvas.Drawer, x, y, a, b, keel float64) {
	cx, cy := s.at(x, y)
	d.RotatedEllipse(cx, cy, s.len(a), s.len(b), keel)
}
