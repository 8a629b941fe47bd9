// Package placement positions composites on the output page.
//
// The output page is split into a left and a right column. Slots stack
// downward from just below a top field, separated by a margin. A composite
// is rotated about its own centre, by -angle in the left column and
// +angle in the right one, so that the two columns mirror each other like
// the pages of an open book.
package placement

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"github.com/katyo/brd2tpl/pkg/errors"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// Slot is a grid cell on the output page. X selects the column (-1 left,
// +1 right), Y counts rows from the top starting at 0.
type Slot struct {
	X, Y int
}

// String returns the slot as "(x,y)".
func (s Slot) String() string { return fmt.Sprintf("(%d,%d)", s.X, s.Y) }

// side returns -1 for the left column and +1 for the right column.
func (s Slot) side() float64 {
	if s.X < 0 {
		return -1
	}
	return 1
}

// Engine computes placements. Lengths are in points, Rotate in degrees.
type Engine struct {
	Paper  rect.Rect
	Field  float64 // height of the free field at the top of the page
	Margin float64 // distance between neighbouring slots
	Rotate float64
}

// Placement describes where a composite ends up on the output page.
type Placement struct {
	Slot  Slot
	Angle float64

	// Page is the rotated composite, centred at the origin. Its media box
	// is the post-rotation bounding box.
	Page *sheet.Page

	// Transform maps the centred page onto the output page.
	Transform matrix.Matrix

	// Width and Height are the post-rotation size of the composite.
	Width, Height float64

	// BBox is the composite's bounding box on the output page.
	BBox rect.Rect
}

// Angle returns the rotation used for slot s.
func (e Engine) Angle(s Slot) float64 {
	if s.X < 0 {
		return -e.Rotate
	}
	return e.Rotate
}

// Place rotates a copy of page for slot s and computes the translation
// that puts it into the slot. The input page is not modified.
func (e Engine) Place(page *sheet.Page, s Slot) (*Placement, error) {
	if s.X == 0 {
		return nil, errors.New(errors.ErrCodeGeometry, "slot %s has no column", s)
	}
	if s.Y < 0 {
		return nil, errors.New(errors.ErrCodeGeometry, "slot %s has a negative row", s)
	}
	if sheet.Width(page.MediaBox) <= 0 || sheet.Height(page.MediaBox) <= 0 {
		return nil, errors.New(errors.ErrCodeGeometry, "cannot place a page with zero area at %s", s)
	}

	angle := e.Angle(s)
	c := sheet.Center(page.MediaBox)
	local := page.Clone()
	local.Transform(sheet.Concat(sheet.Translation(-c.X, -c.Y), sheet.Rotation(angle)))

	w := sheet.Width(local.MediaBox)
	h := sheet.Height(local.MediaBox)

	paper := sheet.Center(e.Paper)
	x := paper.X + s.side()*(w+e.Margin)/2
	y := e.Paper.URy - e.Field - h/2 - float64(s.Y)*(h+e.Margin)
	m := sheet.Translation(x, y)

	return &Placement{
		Slot:      s,
		Angle:     angle,
		Page:      local,
		Transform: m,
		Width:     w,
		Height:    h,
		BBox:      sheet.TransformRect(m, local.MediaBox),
	}, nil
}
