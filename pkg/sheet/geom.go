package sheet

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Box returns the rectangle spanned by the two corners.
func Box(x1, y1, x2, y2 float64) rect.Rect {
	return rect.Rect{
		LLx: math.Min(x1, x2),
		LLy: math.Min(y1, y2),
		URx: math.Max(x1, x2),
		URy: math.Max(y1, y2),
	}
}

// Width returns the horizontal extent of r.
func Width(r rect.Rect) float64 { return r.URx - r.LLx }

// Height returns the vertical extent of r.
func Height(r rect.Rect) float64 { return r.URy - r.LLy }

// Center returns the centre point of r.
func Center(r rect.Rect) vec.Vec2 {
	return vec.Vec2{X: (r.LLx + r.URx) / 2, Y: (r.LLy + r.URy) / 2}
}

// Translation returns a matrix that moves points by (dx, dy).
func Translation(dx, dy float64) matrix.Matrix {
	return matrix.Identity.Translate(dx, dy)
}

// Rotation returns a matrix that rotates counter-clockwise by deg degrees
// about the origin.
func Rotation(deg float64) matrix.Matrix {
	return matrix.RotateDeg(deg)
}

// MirrorX returns a matrix that reflects points about the vertical line x = axis.
func MirrorX(axis float64) matrix.Matrix {
	return matrix.Matrix{-1, 0, 0, 1, 2 * axis, 0}
}

// Concat returns the matrix which applies a first and then b.
func Concat(a, b matrix.Matrix) matrix.Matrix {
	return matrix.Matrix{
		a[0]*b[0] + a[1]*b[2],
		a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2],
		a[2]*b[1] + a[3]*b[3],
		a[4]*b[0] + a[5]*b[2] + b[4],
		a[4]*b[1] + a[5]*b[3] + b[5],
	}
}

// Apply maps the point v through m.
func Apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

// TransformRect returns the axis-aligned bounding box of r mapped through m.
func TransformRect(m matrix.Matrix, r rect.Rect) rect.Rect {
	corners := [4]vec.Vec2{
		{X: r.LLx, Y: r.LLy},
		{X: r.URx, Y: r.LLy},
		{X: r.URx, Y: r.URy},
		{X: r.LLx, Y: r.URy},
	}
	first := Apply(m, corners[0])
	out := rect.Rect{LLx: first.X, LLy: first.Y, URx: first.X, URy: first.Y}
	for _, c := range corners[1:] {
		p := Apply(m, c)
		out.LLx = math.Min(out.LLx, p.X)
		out.LLy = math.Min(out.LLy, p.Y)
		out.URx = math.Max(out.URx, p.X)
		out.URy = math.Max(out.URy, p.Y)
	}
	return out
}
