package sheet

import (
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"
)

// Paint selects how a shape's path is painted.
type Paint int

const (
	// Fill fills the path using the nonzero winding rule.
	Fill Paint = iota
	// FillEvenOdd fills the path using the even-odd rule.
	FillEvenOdd
	// Stroke strokes the path with the shape's line width.
	Stroke
)

// String returns the lowercase name of the paint operation.
func (p Paint) String() string {
	switch p {
	case Fill:
		return "fill"
	case FillEvenOdd:
		return "fill-evenodd"
	case Stroke:
		return "stroke"
	}
	return "unknown"
}

// Shape is a path together with the way it is painted.
// Shapes are treated as immutable once drawn onto a page.
type Shape struct {
	Path  *path.Data
	Paint Paint
	Gray  float64 // 0 is black, 1 is white
	Width float64 // line width for Stroke; 0 draws the thinnest line the device can render
	Cap   graphics.LineCapStyle
	Join  graphics.LineJoinStyle
}

// Item is a shape placed on a page with its transformation matrix.
type Item struct {
	Shape Shape
	CTM   matrix.Matrix
}

// Page is a single vector page. The zero value is an empty page with an
// empty media box.
//
// A Page is not safe for concurrent use.
type Page struct {
	// MediaBox is the visible extent of the page in page coordinates.
	MediaBox rect.Rect

	items []Item
}

// New returns an empty page with the given media box.
func New(box rect.Rect) *Page {
	return &Page{MediaBox: box}
}

// Draw appends a shape in page coordinates.
func (p *Page) Draw(s Shape) {
	p.items = append(p.items, Item{Shape: s, CTM: matrix.Identity})
}

// Items returns the page content in painting order.
func (p *Page) Items() []Item {
	return slices.Clone(p.items)
}

// Len returns the number of shapes on the page.
func (p *Page) Len() int { return len(p.items) }

// Clone returns an independent copy of the page. Paths are shared since
// shapes are never modified in place.
func (p *Page) Clone() *Page {
	return &Page{MediaBox: p.MediaBox, items: slices.Clone(p.items)}
}

// Merge paints the content of src over the content of p, in the same
// coordinate space. The media box of p is unchanged.
func (p *Page) Merge(src *Page) {
	p.items = append(p.items, src.items...)
}

// MergeTransformed paints the content of src over p after mapping it through m.
// The media box of p is unchanged.
func (p *Page) MergeTransformed(src *Page, m matrix.Matrix) {
	for _, it := range src.items {
		p.items = append(p.items, Item{Shape: it.Shape, CTM: Concat(it.CTM, m)})
	}
}

// Transform maps all content of p through m and replaces the media box by
// the bounding box of the transformed media box.
func (p *Page) Transform(m matrix.Matrix) {
	for i := range p.items {
		p.items[i].CTM = Concat(p.items[i].CTM, m)
	}
	p.MediaBox = TransformRect(m, p.MediaBox)
}
