// Package template lays composites out on an A4 sheet and stamps
// registration markers around each of them.
package template

import (
	"context"

	"seehuhn.de/go/geom/rect"

	"github.com/katyo/brd2tpl/pkg/composite"
	"github.com/katyo/brd2tpl/pkg/marker"
	"github.com/katyo/brd2tpl/pkg/observability"
	"github.com/katyo/brd2tpl/pkg/placement"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// Entry is a composite and the slot it goes into.
type Entry struct {
	Composite *composite.Composite
	Slot      placement.Slot
}

// Builder assembles the output page. A nil Stamper leaves out the markers.
type Builder struct {
	Paper   rect.Rect
	Engine  placement.Engine
	Stamper *marker.Stamper
}

// Result is the finished template.
type Result struct {
	Page       *sheet.Page
	Placements []*placement.Placement
}

// NewBuilder returns a builder for an A4 sheet.
func NewBuilder(e placement.Engine, s *marker.Stamper) *Builder {
	e.Paper = sheet.A4
	return &Builder{Paper: sheet.A4, Engine: e, Stamper: s}
}

// Build places the entries in order on a blank page. The markers of an
// entry are stamped before the next entry is placed, so later composites
// paint over earlier markers where they overlap.
func (b *Builder) Build(ctx context.Context, entries []Entry) (*Result, error) {
	hooks := observability.Pipeline()
	out := sheet.New(b.Paper)
	res := &Result{Page: out, Placements: make([]*placement.Placement, 0, len(entries))}

	for _, e := range entries {
		pl, err := b.Engine.Place(e.Composite.Page, e.Slot)
		if err != nil {
			return nil, err
		}
		out.MergeTransformed(pl.Page, pl.Transform)
		b.Stamper.Stamp(out, pl)

		res.Placements = append(res.Placements, pl)
		hooks.OnPlaceComplete(ctx, e.Composite.Name, e.Slot.X, e.Slot.Y, pl.Angle)
	}
	return res, nil
}
