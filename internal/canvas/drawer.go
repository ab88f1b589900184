package canvas

// Drawer is the set of shapes that can be drawn on a Canvas or through a
// Transform, so drawing code can take either.
type Drawer interface {
	// Line draws a segment from (x0, y0) to (x1, y1).
	Line(x0, y0, x1, y1 float64)
	// Ellipse draws an ellipse centered at (cx, cy) with radii rx and ry.
	Ellipse(cx, cy, rx, ry float64)
	// RotatedEllipse is Ellipse turned by keel radians about its center.
	RotatedEllipse(cx, cy, rx, ry, keel float64)
	// Circle draws a circle of radius r centered at (cx, cy).
	Circle(cx, cy, r float64)
}

// Surface is a Drawer that can lend itself to a nested Transform.
type Surface interface {
	Drawer
	Transform() *Transform
	WithTransform(fn func(*Transform))
}

var (
	_ Surface = (*Canvas)(nil)
	_ Surface = (*Transform)(nil)
)

// target is what a Transform forwards to once coordinates are mapped. It
// bypasses the borrow check, which the Transform itself has already passed.
type target interface {
	line(x0, y0, x1, y1 float64)
	ellipse(cx, cy, rx, ry, keel float64)
}

// lender tracks the one Transform allowed to borrow a surface at a time.
type lender struct {
	child *Transform
}

func (l *lender) lend(to target) *Transform {
	l.mustBeFree()
	t := &Transform{target: to, owner: l, cos: 1}
	l.child = t
	return t
}

func (l *lender) mustBeFree() {
	if l.child != nil {
		panic(panicBorrowed)
	}
}

// Borrowed reports whether a live Transform is holding this surface.
func (l *lender) Borrowed() bool {
	return l.child != nil
}
