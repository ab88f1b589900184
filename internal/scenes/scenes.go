package scenes

import (
	"math"

	"github.com/san-kum/asciicanvas/internal/canvas"
)

func crossedCircle(c *canvas.Canvas, _ int) error {
	st := newStage(c)
	c.WithTransform(func(t *canvas.Transform) {
		t.Translate(st.at(50, 50))
		t.Circle(0, 0, st.len(50))
		t.Rotate(math.Pi / 4)
		t.Line(-st.len(25), 0, st.len(25), 0)
		t.Rotate(math.Pi / 2)
		t.Line(-st.len(25), 0, st.len(25), 0)
	})
	return nil
}

func clock(c *canvas.Canvas, n int) error {
	st := newStage(c)
	st.circle(c, 50, 50, 50)

	c.WithTransform(func(t *canvas.Transform) {
		t.Translate(st.at(50, 50)).Rotate(math.Pi / 20 * float64(n))
		t.Line(0, st.len(10), 0, -st.len(40))
	})
	c.WithTransform(func(t *canvas.Transform) {
		t.Translate(st.at(50, 50)).Rotate(math.Pi / 240 * float64(n))
		t.Line(0, st.len(5), 0, -st.len(20))
	})
	return nil
}

// slides fan out from a bar near the top of the stage.
var slides = [][4]float64{
	{40, 3, 60, 3},
	{15, 5, 1.5, 8}, {20, 5, 8, 9}, {25, 5, 12.5, 10}, {30, 5, 18, 11},
	{35, 5, 24.5, 12}, {40, 5, 32, 13}, {45, 5, 41, 14}, {50, 5, 50, 15},
	{55, 5, 59, 14}, {60, 5, 68, 13}, {65, 5, 75.5, 12}, {70, 5, 82, 11},
	{75, 5, 87.5, 10}, {80, 5, 92, 9}, {85, 5, 98.5, 8},
}

func shapes(c *canvas.Canvas, n int) error {
	st := newStage(c)
	frame := float64(n)

	slide := (2 * math.Pi / 150) * frame
	c.WithTransform(func(t *canvas.Transform) {
		t.Translate(st.len(math.Cos(slide)*4), 0)
		for _, l := range slides {
			st.line(t, l[0], l[1], l[2], l[3])
		}
	})

	spin := (2 * math.Pi / 180) * frame
	x, y := math.Cos(spin), math.Sin(spin)
	st.line(c, 50-x*5, 50-y*5, 50+x*30, 50+y*30)
	st.line(c, 50-y*3, 50-x*3, 50+y*10, 50+x*10)
	st.line(c, 70-y*5, 30-x*5, 20+y*10, 30+x*10)

	orbit := (2 * math.Pi / 120) * frame
	x, y = math.Cos(orbit), math.Sin(orbit)
	st.circle(c, 50+x*10, 50+y*10, 10)
	st.circle(c, 50+x*5, 85, 10+x*10)
	st.circle(c, 50+x*5, 85, 10+y*10)

	slow := (2 * math.Pi / 240) * frame
	x = math.Cos(slow)
	st.ellipse(c, 20, 70, 10-8*x, 10+8*x, 0)
	st.ellipse(c, 20, 70, 10-8*x, 10+8*x, math.Pi/4)
	st.ellipse(c, 20, 70, 4, 6, slow)
	for i := 0; i < 4; i++ {
		st.ellipse(c, 80, 30, 12, 6, slow-float64(i)*math.Pi/4)
	}
	return nil
}

func triangles(c *canvas.Canvas, n int) error {
	st := newStage(c)
	frame := float64(n)

	st.line(c, 0, 0, 100, 0)
	st.line(c, 100, 0, 100, 100)
	st.line(c, 100, 100, 0, 100)
	st.line(c, 0, 0, 0, 100)

	spinningTriangle(c, st, -(2*math.Pi/320)*(frame+240), 43.3)
	spinningTriangle(c, st, -(2*math.Pi/240)*(frame+180), 21.65)
	spinningTriangle(c, st, -(2*math.Pi/160)*(frame+120), 10.825)

	ring := c.Transform()
	ring.Translate(st.at(50, 50)).Rotate(frame * 2 * math.Pi / 240)
	for i := 0; i < 12; i++ {
		ring.Rotate(2*math.Pi/12).Circle(0, -st.len(42), st.len(8))
	}
	ring.Release()

	slow := (2 * math.Pi / 80) * (frame + 75)
	spinner(c, st, 3, 3, slow)
	spinner(c, st, 3, 97, slow)
	spinner(c, st, 97, 3, slow)
	spinner(c, st, 97, 97, slow)
	return nil
}

// spinningTriangle draws an equilateral triangle of the given height
// centered on the stage.
func spinningTriangle(c *canvas.Canvas, st stage, angle, height float64) {
	side := 2 * height / math.Sqrt(3)
	x1, y1 := 0.0, st.len(-2*height/3)
	x2, y2 := st.len(side/2), st.len(height/3)
	x3, y3 := st.len(-side/2), st.len(height/3)

	c.WithTransform(func(t *canvas.Transform) {
		t.Translate(st.at(50, 50)).Rotate(angle)
		t.Line(x1, y1, x2, y2)
		t.Line(x2, y2, x3, y3)
		t.Line(x3, y3, x1, y1)
	})
}

func spinner(c *canvas.Canvas, st stage, x, y, angle float64) {
	c.WithTransform(func(t *canvas.Transform) {
		t.Translate(st.at(x, y))
		for i := 0; i < 4; i++ {
			t.RotatedEllipse(0, 0, st.len(18), st.len(6), angle-float64(i)*math.Pi/4)
		}
	})
}

func sweep(c *canvas.Canvas, n int) error {
	st := newStage(c)

	fast := (2 * math.Pi / 60) * float64(n)
	x, y := math.Cos(fast), math.Sin(fast)
	st.line(c, 50-x*5, 50-y*5, 50+x*30, 50+y*30)
	st.line(c, 50-y*3, 50-x*3, 50+y*10, 50+x*10)
	st.line(c, 70-y*5, 30-x*5, 20+y*10, 30+x*10)

	slow := (2 * math.Pi / 120) * float64(n)
	st.circle(c, 50+math.Cos(slow)*10, 50+math.Sin(slow)*10, 10)
	return nil
}
