package marker

import (
	"seehuhn.de/go/geom/vec"

	"github.com/katyo/brd2tpl/pkg/placement"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// Spec is a marker page and its distance from the composite corners,
// in points.
type Spec struct {
	Page   *sheet.Page
	Offset float64
}

// Stamper stamps one marker around placed composites.
// A nil *Stamper stamps nothing.
type Stamper struct {
	marker *sheet.Page
	offset float64
}

// NewStamper returns a stamper for spec. The marker page is copied and
// centred on the origin.
func NewStamper(spec Spec) *Stamper {
	m := spec.Page.Clone()
	c := sheet.Center(m.MediaBox)
	m.Transform(sheet.Translation(-c.X, -c.Y))
	return &Stamper{marker: m, offset: spec.Offset}
}

// Corners returns the marker centres relative to the composite's centre.
func (s *Stamper) Corners(pl *placement.Placement) []vec.Vec2 {
	dx := pl.Width/2 + s.offset
	dy := pl.Height/2 + s.offset
	return []vec.Vec2{
		{X: -dx, Y: -dy},
		{X: -dx, Y: dy},
		{X: dx, Y: dy},
		{X: dx, Y: -dy},
	}
}

// Stamp merges four copies of the marker into out, one per corner of pl.
func (s *Stamper) Stamp(out *sheet.Page, pl *placement.Placement) {
	if s == nil {
		return
	}
	for _, c := range s.Corners(pl) {
		out.MergeTransformed(s.marker, sheet.Concat(sheet.Translation(c.X, c.Y), pl.Transform))
	}
}
