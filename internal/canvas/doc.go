// Package canvas rasterizes lines, circles and ellipses into a character grid.
//
// A [Canvas] keeps one ink bit per sub-cell. Each printable character covers
// SubdivX x SubdivY sub-cells, and [Canvas.Render] turns every block of bits
// into a glyph through the configured tileset.
//
//   - [Canvas]: the sub-cell ink buffer
//   - [Transform]: rotation and translation applied before drawing
//   - [Drawer]: the drawing operations shared by both
//   - [Surface]: a Drawer that can lend itself to a nested Transform
//
// Coordinates are given in cell units: (0, 0) is the top-left corner and
// (Width(), Height()) the bottom-right. Anything outside the grid is clipped.
//
// # Example
//
//	c, _ := canvas.New(canvas.GridConfig{CellWidth: 40, CellHeight: 20, Tileset: tileset.Braille})
//	c.WithTransform(func(t *canvas.Transform) {
//		t.Translate(20, 10).Rotate(math.Pi / 4)
//		t.Circle(0, 0, 8)
//		t.Line(-8, 0, 8, 0)
//	})
//	fmt.Print(c)
//
// # Borrowing
//
// A Transform has exclusive use of what it wraps until it is released.
// Drawing on a Canvas (or Transform) while a Transform borrowed from it is
// still live panics, as does drawing through a released Transform. Prefer
// [Canvas.WithTransform], which releases on return.
//
// # Thread Safety
//
// Canvas and Transform are NOT safe for concurrent use.
package canvas
