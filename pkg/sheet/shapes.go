package sheet

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// kappa is the control point distance for a cubic quarter circle of radius 1.
const kappa = 0.5522847498

// Rect returns a closed rectangular path.
func Rect(x, y, w, h float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x, Y: y}).
		LineTo(vec.Vec2{X: x + w, Y: y}).
		LineTo(vec.Vec2{X: x + w, Y: y + h}).
		LineTo(vec.Vec2{X: x, Y: y + h}).
		Close()
}

// Circle returns a closed circular path made of four cubic segments.
func Circle(cx, cy, r float64) *path.Data {
	k := kappa * r
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: cx + r, Y: cy}).
		CubeTo(vec.Vec2{X: cx + r, Y: cy + k}, vec.Vec2{X: cx + k, Y: cy + r}, vec.Vec2{X: cx, Y: cy + r}).
		CubeTo(vec.Vec2{X: cx - k, Y: cy + r}, vec.Vec2{X: cx - r, Y: cy + k}, vec.Vec2{X: cx - r, Y: cy}).
		CubeTo(vec.Vec2{X: cx - r, Y: cy - k}, vec.Vec2{X: cx - k, Y: cy - r}, vec.Vec2{X: cx, Y: cy - r}).
		CubeTo(vec.Vec2{X: cx + k, Y: cy - r}, vec.Vec2{X: cx + r, Y: cy - k}, vec.Vec2{X: cx + r, Y: cy}).
		Close()
}

// Polyline returns a path through the given points. The path is closed when
// closed is true. Fewer than two points yield an empty path.
func Polyline(pts []vec.Vec2, closed bool) *path.Data {
	p := &path.Data{}
	if len(pts) < 2 {
		return p
	}
	p = p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p = p.LineTo(pt)
	}
	if closed {
		p = p.Close()
	}
	return p
}

// AppendPolygon adds a closed subpath through pts to p and returns p.
// It is used to build paths with holes for even-odd filling.
func AppendPolygon(p *path.Data, pts []vec.Vec2) *path.Data {
	if len(pts) < 2 {
		return p
	}
	p = p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p = p.LineTo(pt)
	}
	return p.Close()
}

// ControlBounds returns the bounding box of all points of p, control
// points included. It contains the painted area of p and is exact for
// polygons. An empty path yields the zero rectangle.
func ControlBounds(p *path.Data) rect.Rect {
	if p == nil || len(p.Coords) == 0 {
		return rect.Rect{}
	}
	r := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, c := range p.Coords {
		r.LLx = min(r.LLx, c.X)
		r.LLy = min(r.LLy, c.Y)
		r.URx = max(r.URx, c.X)
		r.URy = max(r.URy, c.Y)
	}
	return r
}
