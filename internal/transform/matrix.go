// Package transform implements the 2-D affine matrix algebra (C1) that
// every other component in this module builds on: CTM and text-matrix
// composition, point transforms, the unit-square bounding box used to
// place images, and the point-set bounds used for text runs.
package transform

// Matrix is a 2-D affine transform in the PDF imaging model, laid out as
// the six coefficients a, b, c, d, e, f such that
//
//	[x' y' 1] = [x y 1] . | a b 0 |
//	                      | c d 0 |
//	                      | e f 1 |
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// New builds a matrix from its six coefficients, in PDF content-stream
// operand order (a b c d e f).
func New(a, b, c, d, e, f float64) Matrix {
	return Matrix{A: a, B: b, C: c, D: d, E: e, F: f}
}

// Translation returns a matrix that translates by tx, ty.
func Translation(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Compose returns M = inner . outer: `inner` is the newly introduced local
// transform (e.g. a cm operand, or a text-position translation), `outer` is
// the already-accumulated transform it is being folded into (e.g. the
// current CTM, or the current text-line matrix). The same routine serves
// both CTM concatenation and text-matrix translation per spec.
func Compose(outer, inner Matrix) Matrix {
	return Matrix{
		A: inner.A*outer.A + inner.B*outer.C,
		B: inner.A*outer.B + inner.B*outer.D,
		C: inner.C*outer.A + inner.D*outer.C,
		D: inner.C*outer.B + inner.D*outer.D,
		E: inner.E*outer.A + inner.F*outer.C + outer.E,
		F: inner.E*outer.B + inner.F*outer.D + outer.F,
	}
}

// Point is a 2-D point in whatever space a Matrix transforms from or to.
type Point struct {
	X, Y float64
}

// Apply transforms `p` by `m`.
func Apply(m Matrix, p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Rect is an axis-aligned bounding box with x0 <= x1 and y0 <= y1.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// UnitSquareBounds transforms the four corners of the unit square by `m`
// and returns their component-wise min/max. This is the canonical bounding
// box used to place images; text-run boxes are computed with BoundsOf over
// their own sample points instead.
func UnitSquareBounds(m Matrix) Rect {
	corners := [4]Point{
		Apply(m, Point{0, 0}),
		Apply(m, Point{1, 0}),
		Apply(m, Point{0, 1}),
		Apply(m, Point{1, 1}),
	}
	return BoundsOf(corners[:])
}

// Union returns the smallest Rect containing both a and b.
func Union(a, b Rect) Rect {
	return Rect{
		X0: minF(a.X0, b.X0),
		Y0: minF(a.Y0, b.Y0),
		X1: maxF(a.X1, b.X1),
		Y1: maxF(a.Y1, b.Y1),
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// BoundsOf returns the component-wise min/max bounding box of `points`.
// Callers must pass at least one point.
func BoundsOf(points []Point) Rect {
	r := Rect{X0: points[0].X, Y0: points[0].Y, X1: points[0].X, Y1: points[0].Y}
	for _, p := range points[1:] {
		if p.X < r.X0 {
			r.X0 = p.X
		}
		if p.X > r.X1 {
			r.X1 = p.X
		}
		if p.Y < r.Y0 {
			r.Y0 = p.Y
		}
		if p.Y > r.Y1 {
			r.Y1 = p.Y
		}
	}
	return r
}
