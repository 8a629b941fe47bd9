package horizon

import (
	"context"
	"math"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"github.com/katyo/brd2tpl/pkg/errors"
	"github.com/katyo/brd2tpl/pkg/layer"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// arcStep is the largest angle, in radians, covered by one segment of a
// flattened arc.
const arcStep = math.Pi / 36

// Export draws the layers enabled in s. The media box is the bounding box
// of the board outline, so every export of a board has the same size.
func (b *Board) Export(_ context.Context, s layer.Settings) (*sheet.Page, error) {
	box, ok := b.OutlineBox()
	if !ok {
		return nil, errors.New(errors.ErrCodeExternalRender, "board %s has no outline on layer %d", b.Path, LayerOutline)
	}

	page := sheet.New(box)
	planeOutlines := make(map[uuid.UUID]bool, len(b.Planes))
	for _, pl := range b.Planes {
		planeOutlines[pl.Polygon] = true
	}

	for _, idx := range s.Enabled() {
		ls, _ := s.Layer(idx)
		st := newStyle(ls, s.MinLineWidth)

		if idx == LayerHoles {
			if err := b.drawHoles(page, st, s); err != nil {
				return nil, err
			}
			continue
		}

		for _, id := range sortedKeys(b.Polygons) {
			poly := b.Polygons[id]
			if poly.Layer != idx || planeOutlines[id] {
				continue
			}
			page.Draw(st.area(polygonPath(poly)))
		}

		for _, id := range sortedKeys(b.Planes) {
			pl := b.Planes[id]
			outline, ok := b.Polygons[pl.Polygon]
			if !ok {
				return nil, errors.New(errors.ErrCodeExternalRender, "plane %s: unknown polygon %s", id, pl.Polygon)
			}
			if outline.Layer != idx {
				continue
			}
			for _, f := range pl.Fragments {
				page.Draw(st.areaEvenOdd(fragmentPath(f)))
			}
		}

		for _, id := range sortedKeys(b.Tracks) {
			t := b.Tracks[id]
			if t.Layer != idx {
				continue
			}
			from, okFrom := b.junction(t.From)
			to, okTo := b.junction(t.To)
			if !okFrom || !okTo {
				continue
			}
			page.Draw(st.line(from, to, nmToPt(t.Width)))
		}

		if isCopper(idx) {
			for _, id := range sortedKeys(b.Vias) {
				v := b.Vias[id]
				j, ok := b.Junctions[v.Junction]
				if !ok {
					return nil, errors.New(errors.ErrCodeExternalRender, "via %s: unknown junction %s", id, v.Junction)
				}
				x, y := j.Position.Point()
				page.Draw(st.area(sheet.Circle(x, y, nmToPt(v.Parameters.ViaDiameter)/2)))
			}
		}
	}

	if s.Mirror {
		c := sheet.Center(box)
		page.Transform(sheet.MirrorX(c.X))
	}
	return page, nil
}

// OutlineBox returns the bounding box of all outline polygons in points.
func (b *Board) OutlineBox() (rect.Rect, bool) {
	box := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	found := false
	for _, poly := range b.Polygons {
		if poly.Layer != LayerOutline {
			continue
		}
		for _, pt := range flatten(poly.Vertices) {
			box.LLx = min(box.LLx, pt.X)
			box.LLy = min(box.LLy, pt.Y)
			box.URx = max(box.URx, pt.X)
			box.URy = max(box.URy, pt.Y)
			found = true
		}
	}
	if !found || box.URx <= box.LLx || box.URy <= box.LLy {
		return rect.Rect{}, false
	}
	return box, true
}

func (b *Board) drawHoles(page *sheet.Page, st style, s layer.Settings) error {
	draw := func(pl Placement, h Hole) {
		d := nmToPt(h.Diameter)
		if s.SetHolesSize {
			d = s.HolesDiameter
		}
		if h.Shape == "slot" && h.Length > h.Diameter && !s.SetHolesSize {
			half := (h.Length - h.Diameter) / 2
			a := pl.Apply(h.Placement.Apply(Coord{-half, 0}))
			z := pl.Apply(h.Placement.Apply(Coord{half, 0}))
			page.Draw(st.line(a, z, d))
			return
		}
		x, y := pl.Apply(h.Placement.Shift).Point()
		page.Draw(st.area(sheet.Circle(x, y, d/2)))
	}

	for _, id := range sortedKeys(b.Holes) {
		bh := b.Holes[id]
		for _, hid := range sortedKeys(bh.Padstack.Holes) {
			draw(bh.Placement, bh.Padstack.Holes[hid])
		}
	}
	for _, id := range sortedKeys(b.Vias) {
		v := b.Vias[id]
		j, ok := b.Junctions[v.Junction]
		if !ok {
			return errors.New(errors.ErrCodeExternalRender, "via %s: unknown junction %s", id, v.Junction)
		}
		draw(Placement{Shift: j.Position}, Hole{Diameter: v.Parameters.HoleDiameter, Shape: "round"})
	}
	return nil
}

func (b *Board) junction(c Connection) (Coord, bool) {
	if c.Junction == nil {
		return Coord{}, false
	}
	j, ok := b.Junctions[*c.Junction]
	return j.Position, ok
}

// isCopper reports whether idx is a copper layer. Inner layers lie
// between the top (0) and bottom (-100) copper.
func isCopper(idx int) bool {
	return idx <= 0 && idx >= -100
}

// style paints shapes of one layer.
type style struct {
	gray    float64
	fill    bool
	minLine float64
}

func newStyle(ls layer.LayerSettings, minLine float64) style {
	return style{gray: ls.Color.Gray(), fill: ls.Mode == layer.ModeFill, minLine: minLine}
}

func (s style) area(p *path.Data) sheet.Shape {
	if s.fill {
		return sheet.Shape{Path: p, Paint: sheet.Fill, Gray: s.gray}
	}
	return s.outline(p)
}

func (s style) areaEvenOdd(p *path.Data) sheet.Shape {
	if s.fill {
		return sheet.Shape{Path: p, Paint: sheet.FillEvenOdd, Gray: s.gray}
	}
	return s.outline(p)
}

func (s style) outline(p *path.Data) sheet.Shape {
	return sheet.Shape{
		Path:  p,
		Paint: sheet.Stroke,
		Gray:  s.gray,
		Width: s.minLine,
		Join:  graphics.LineJoinRound,
	}
}

// line draws a segment of the given width with round ends. In outline
// mode only its centre line is drawn.
func (s style) line(from, to Coord, width float64) sheet.Shape {
	x0, y0 := from.Point()
	x1, y1 := to.Point()
	p := sheet.Polyline([]vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y1}}, false)
	if !s.fill {
		width = s.minLine
	}
	return sheet.Shape{
		Path:  p,
		Paint: sheet.Stroke,
		Gray:  s.gray,
		Width: max(width, s.minLine),
		Cap:   graphics.LineCapRound,
		Join:  graphics.LineJoinRound,
	}
}

func polygonPath(poly Polygon) *path.Data {
	return sheet.Polyline(flatten(poly.Vertices), true)
}

func fragmentPath(f Fragment) *path.Data {
	p := &path.Data{}
	for _, contour := range f.Paths {
		pts := make([]vec.Vec2, len(contour))
		for i, c := range contour {
			x, y := c.Point()
			pts[i] = vec.Vec2{X: x, Y: y}
		}
		p = sheet.AppendPolygon(p, pts)
	}
	return p
}

// flatten converts the vertices of a closed polygon to points, replacing
// arcs by line segments.
func flatten(vs []Vertex) []vec.Vec2 {
	pts := make([]vec.Vec2, 0, len(vs))
	for i, v := range vs {
		x, y := v.Position.Point()
		pts = append(pts, vec.Vec2{X: x, Y: y})
		if v.Type != "arc" {
			continue
		}
		next := vs[(i+1)%len(vs)].Position
		pts = append(pts, arcPoints(v.Position, next, v.ArcCenter, v.ArcReverse)...)
	}
	return pts
}

// arcPoints returns the points strictly between from and to on the arc
// around center, counter-clockwise unless reverse is set.
func arcPoints(from, to, center Coord, reverse bool) []vec.Vec2 {
	cx, cy := center.Point()
	fx, fy := from.Point()
	tx, ty := to.Point()
	r := math.Hypot(fx-cx, fy-cy)
	a0 := math.Atan2(fy-cy, fx-cx)
	a1 := math.Atan2(ty-cy, tx-cx)
	if reverse {
		for a1 >= a0 {
			a1 -= 2 * math.Pi
		}
	} else {
		for a1 <= a0 {
			a1 += 2 * math.Pi
		}
	}

	n := int(math.Ceil(math.Abs(a1-a0) / arcStep))
	pts := make([]vec.Vec2, 0, max(n-1, 0))
	for k := 1; k < n; k++ {
		a := a0 + (a1-a0)*float64(k)/float64(n)
		pts = append(pts, vec.Vec2{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return pts
}
