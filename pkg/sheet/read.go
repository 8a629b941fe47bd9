package sheet

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// ReadFile reads the first page of a PDF file. The painted paths of the
// page keep their colour, line style and transformation; text, images and
// XObjects are dropped. A page without a media box gets the bounding box
// of its content.
func ReadFile(fileName string) (*Page, error) {
	r, err := pdf.Open(fileName, nil)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fileName, err)
	}
	defer r.Close()

	_, dict, err := pagetree.GetPage(r, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: first page: %w", fileName, err)
	}

	content, err := pageContent(r, dict["Contents"])
	if err != nil {
		return nil, fmt.Errorf("%s: content: %w", fileName, err)
	}
	items, err := parseContent(content)
	if err != nil {
		return nil, fmt.Errorf("%s: content: %w", fileName, err)
	}
	p := &Page{items: items}

	box, err := pdf.GetRectangle(r, dict["MediaBox"])
	if err != nil {
		return nil, fmt.Errorf("%s: media box: %w", fileName, err)
	}
	if box == nil {
		p.MediaBox = contentBounds(items)
	} else {
		p.MediaBox = Box(box.LLx, box.LLy, box.URx, box.URy)
	}
	return p, nil
}

// pageContent concatenates the decoded content streams of a page.
func pageContent(r pdf.Getter, obj pdf.Object) ([]byte, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	var streams []pdf.Object
	switch c := obj.(type) {
	case nil:
		return nil, nil
	case *pdf.Stream:
		streams = []pdf.Object{c}
	case pdf.Array:
		streams = c
	default:
		return nil, fmt.Errorf("unexpected /Contents of type %T", obj)
	}

	var buf bytes.Buffer
	for _, o := range streams {
		stm, err := pdf.GetStream(r, o)
		if err != nil {
			return nil, err
		}
		if stm == nil {
			continue
		}
		body, err := pdf.DecodeStream(r, stm, 0)
		if err != nil {
			return nil, err
		}
		_, err = io.Copy(&buf, body)
		if c, ok := body.(io.Closer); ok {
			c.Close()
		}
		if err != nil {
			return nil, err
		}
		// streams are split at token boundaries only
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// contentBounds returns the bounding box of the control points of all
// items, mapped to page space.
func contentBounds(items []Item) rect.Rect {
	if len(items) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, it := range items {
		r := TransformRect(it.CTM, ControlBounds(it.Shape.Path))
		b.LLx = min(b.LLx, r.LLx)
		b.LLy = min(b.LLy, r.LLy)
		b.URx = max(b.URx, r.URx)
		b.URy = max(b.URy, r.URy)
	}
	return b
}
