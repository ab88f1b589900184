package canvas

import "math"

// Transform rotates and then translates every coordinate before handing it
// to the surface it wraps:
//
//	P' = Rotate(P, angle) + (dx, dy)
//
// Transforms nest: a Transform borrowed from another maps its points first
// and the outer one maps the result.
type Transform struct {
	lender

	target   target
	owner    *lender
	released bool

	angle    float64
	sin, cos float64
	dx, dy   float64
}

// Rotate adds radians to the rotation.
func (t *Transform) Rotate(radians float64) *Transform {
	t.angle += radians
	t.sin, t.cos = math.Sincos(t.angle)
	return t
}

// Translate adds (dx, dy) to the translation.
func (t *Transform) Translate(dx, dy float64) *Transform {
	t.dx += dx
	t.dy += dy
	return t
}

func (t *Transform) Angle() float64           { return t.angle }
func (t *Transform) Offset() (dx, dy float64) { return t.dx, t.dy }
func (t *Transform) Released() bool           { return t.released }

// Apply maps a point through this transform only, not through any
// transform it is nested in.
func (t *Transform) Apply(x, y float64) (float64, float64) {
	return t.point(x, y)
}

func (t *Transform) point(x, y float64) (float64, float64) {
	return x*t.cos - y*t.sin + t.dx, x*t.sin + y*t.cos + t.dy
}

func (t *Transform) mustBeUsable() {
	if t.released {
		panic(panicReleased)
	}
	t.mustBeFree()
}

func (t *Transform) Line(x0, y0, x1, y1 float64) {
	t.mustBeUsable()
	t.line(x0, y0, x1, y1)
}

func (t *Transform) Ellipse(cx, cy, rx, ry float64) {
	t.mustBeUsable()
	t.ellipse(cx, cy, rx, ry, 0)
}

func (t *Transform) RotatedEllipse(cx, cy, rx, ry, keel float64) {
	t.mustBeUsable()
	t.ellipse(cx, cy, rx, ry, keel)
}

func (t *Transform) Circle(cx, cy, r float64) {
	t.mustBeUsable()
	t.ellipse(cx, cy, r, r, 0)
}

func (t *Transform) line(x0, y0, x1, y1 float64) {
	x0, y0 = t.point(x0, y0)
	x1, y1 = t.point(x1, y1)
	t.target.line(x0, y0, x1, y1)
}

// ellipse carries the transform's rotation into the ellipse's own keel.
func (t *Transform) ellipse(cx, cy, rx, ry, keel float64) {
	cx, cy = t.point(cx, cy)
	t.target.ellipse(cx, cy, rx, ry, keel+t.angle)
}

// Transform lends this transform to a nested identity Transform.
func (t *Transform) Transform() *Transform {
	if t.released {
		panic(panicReleased)
	}
	return t.lend(t)
}

// WithTransform runs fn with a nested Transform and releases it when fn
// returns or panics.
func (t *Transform) WithTransform(fn func(*Transform)) {
	inner := t.Transform()
	defer inner.Release()
	fn(inner)
}

// Release gives the wrapped surface back, along with anything borrowed from
// this transform. Releasing twice is a no-op.
func (t *Transform) Release() {
	if t.released {
		return
	}
	if t.child != nil {
		t.child.Release()
	}
	t.released = true
	if t.owner.child == t {
		t.owner.child = nil
	}
}
