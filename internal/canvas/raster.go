package canvas

import "math"

const (
	// snapEps absorbs float noise (e.g. sin(2*pi)) so integral coordinates
	// stay on their sub-cell.
	snapEps = 1e-9

	// maxRadius is the largest radius, in sub-cells, rasterized with the
	// midpoint algorithm; larger ellipses fall back to a clipped polyline.
	maxRadius = 1 << 16

	minSegments = 16
	maxSegments = 720
)

func snap(v float64) int {
	return int(math.Floor(v + snapEps))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (c *Canvas) plot(x, y float64) {
	x, y = x*float64(c.sx), y*float64(c.sy)
	if !finite(x, y) || x < -1 || y < -1 || x > float64(c.w)+1 || y > float64(c.h)+1 {
		return
	}
	c.set(snap(x), snap(y))
}

// line scales a cell-space segment to sub-cells, clips it to the buffer and
// walks it with Bresenham.
func (c *Canvas) line(x0, y0, x1, y1 float64) {
	sx, sy := float64(c.sx), float64(c.sy)
	x0, y0, x1, y1 = x0*sx, y0*sy, x1*sx, y1*sy
	if !finite(x0, y0, x1, y1) {
		return
	}
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, -1, -1, float64(c.w)+1, float64(c.h)+1)
	if !ok {
		return
	}
	c.bresenham(snap(x0), snap(y0), snap(x1), snap(y1))
}

// bresenham draws a line using Bresenham's algorithm
func (c *Canvas) bresenham(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment is Liang-Barsky clipping against [minX,maxX] x [minY,maxY].
func clipSegment(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	if t0 == 0 && t1 == 1 {
		return x0, y0, x1, y1, true
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// ellipse draws an ellipse turned by keel. Quarter turns are rasterized with
// the midpoint algorithm; any other angle is traced as a closed polyline.
func (c *Canvas) ellipse(cx, cy, rx, ry, keel float64) {
	if !finite(cx, cy, rx, ry, keel) {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)

	quarter := keel / (math.Pi / 2)
	turns := math.Round(quarter)
	if math.Abs(quarter-turns) > snapEps && rx != ry {
		c.polyEllipse(cx, cy, rx, ry, keel)
		return
	}
	if math.Mod(turns, 2) != 0 {
		rx, ry = ry, rx
	}

	sx, sy := float64(c.sx), float64(c.sy)
	a := int(math.Round(rx * sx))
	b := int(math.Round(ry * sy))
	if a > maxRadius || b > maxRadius {
		c.polyEllipse(cx, cy, rx, ry, 0)
		return
	}
	xc, yc := snap(cx*sx), snap(cy*sy)
	if xc+a < 0 || yc+b < 0 || xc-a >= c.w || yc-b >= c.h {
		return
	}
	c.midpointEllipse(xc, yc, a, b)
}

// midpointEllipse rasterizes an axis-aligned ellipse in sub-cell space,
// mirroring each computed point into all four quadrants. Decision variables
// are scaled by 4 to stay integral.
func (c *Canvas) midpointEllipse(xc, yc, a, b int) {
	if a == 0 || b == 0 {
		c.bresenham(xc-a, yc-b, xc+a, yc+b)
		return
	}

	a2, b2 := int64(a)*int64(a), int64(b)*int64(b)
	x, y := int64(0), int64(b)
	dx, dy := int64(0), 2*a2*y

	d1 := 4*b2 - 4*a2*int64(b) + a2
	for dx < dy {
		c.plot4(xc, yc, int(x), int(y))
		x++
		dx += 2 * b2
		if d1 < 0 {
			d1 += 4 * (dx + b2)
		} else {
			y--
			dy -= 2 * a2
			d1 += 4 * (dx - dy + b2)
		}
	}

	d2 := b2*(2*x+1)*(2*x+1) + 4*a2*(y-1)*(y-1) - 4*a2*b2
	tip := x
	for y >= 0 {
		c.plot4(xc, yc, int(x), int(y))
		tip = x
		y--
		dy -= 2 * a2
		if d2 > 0 {
			d2 += 4 * (a2 - dy)
		} else {
			x++
			dx += 2 * b2
			d2 += 4 * (dx - dy + a2)
		}
	}

	// Flat ellipses can leave region 2 short of the vertex.
	for tip++; tip <= int64(a); tip++ {
		c.plot4(xc, yc, int(tip), 0)
	}
}

func (c *Canvas) plot4(xc, yc, x, y int) {
	c.set(xc+x, yc+y)
	c.set(xc-x, yc+y)
	c.set(xc+x, yc-y)
	c.set(xc-x, yc-y)
}

// polyEllipse traces a rotated ellipse in cell space and joins the samples
// with clipped lines.
func (c *Canvas) polyEllipse(cx, cy, rx, ry, keel float64) {
	n := segments(rx*float64(c.sx), ry*float64(c.sy))
	sin, cos := math.Sincos(keel)

	px, py := cx+rx*cos, cy+rx*sin
	for i := 1; i <= n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		st, ct := math.Sincos(theta)
		x := cx + rx*ct*cos - ry*st*sin
		y := cy + rx*ct*sin + ry*st*cos
		c.line(px, py, x, y)
		px, py = x, y
	}
}

// segments picks a sample count of roughly one per two sub-cells of
// perimeter (Ramanujan's approximation).
func segments(a, b float64) int {
	h := (a - b) * (a - b) / ((a + b) * (a + b))
	if a+b == 0 {
		h = 0
	}
	perimeter := math.Pi * (a + b) * (1 + 3*h/(10+math.Sqrt(4-3*h)))
	n := int(math.Ceil(perimeter / 2))
	if n < minSegments {
		return minSegments
	}
	if n > maxSegments {
		return maxSegments
	}
	return n
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
