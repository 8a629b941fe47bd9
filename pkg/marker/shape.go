package marker

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"github.com/katyo/brd2tpl/pkg/errors"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// shapeFile is the TOML layout of a marker resource. Lengths are in mm.
type shapeFile struct {
	Width  float64    `toml:"width"`
	Height float64    `toml:"height"`
	Shapes []shapeDef `toml:"shape"`
}

type shapeDef struct {
	Paint     string       `toml:"paint"` // fill, fill-evenodd or stroke
	Gray      float64      `toml:"gray"`
	LineWidth float64      `toml:"line_width"`
	Points    [][2]float64 `toml:"points"`
	Closed    bool         `toml:"closed"`
	Circle    *circleDef   `toml:"circle"`
}

type circleDef struct {
	Center [2]float64 `toml:"center"`
	Radius float64    `toml:"radius"`
}

// LoadFile reads a marker resource. PDF files, recognised by their header
// or extension, contribute the paths painted on their first page; anything
// else is decoded as a shape file.
func LoadFile(path string) (*sheet.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarkerNotFound, err, "read marker %s", path)
	}
	if isPDF(path, data) {
		p, err := sheet.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMarker, err, "marker %s", path)
		}
		if sheet.Width(p.MediaBox) <= 0 || sheet.Height(p.MediaBox) <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidMarker, "marker %s has an empty page", path)
		}
		return p, nil
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMarker, err, "marker %s", path)
	}
	return p, nil
}

// Parse decodes a marker shape file into a page whose media box is
// width×height with the lower left corner at the origin.
func Parse(data []byte) (*sheet.Page, error) {
	var f shapeFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMarker, err, "decode marker")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidMarker, "unknown marker keys: %s", strings.Join(keys, ", "))
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidMarker, "marker size must be positive (got %g×%g mm)", f.Width, f.Height)
	}

	p := sheet.New(sheet.Box(0, 0, sheet.FromMM(f.Width), sheet.FromMM(f.Height)))
	for i, def := range f.Shapes {
		s, err := def.shape()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMarker, err, "shape %d", i+1)
		}
		p.Draw(s)
	}
	return p, nil
}

// isPDF reports whether a marker file is a PDF document. The header may
// follow up to 1024 bytes of junk.
func isPDF(path string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(path), PDFExt) {
		return true
	}
	return bytes.Contains(data[:min(len(data), 1024)], []byte("%PDF-"))
}

func (d shapeDef) shape() (sheet.Shape, error) {
	s := sheet.Shape{
		Gray:  d.Gray,
		Width: sheet.FromMM(d.LineWidth),
		Cap:   graphics.LineCapRound,
		Join:  graphics.LineJoinRound,
	}

	switch d.Paint {
	case "", "stroke":
		s.Paint = sheet.Stroke
	case "fill":
		s.Paint = sheet.Fill
	case "fill-evenodd":
		s.Paint = sheet.FillEvenOdd
	default:
		return s, errors.New(errors.ErrCodeInvalidMarker, "unknown paint %q", d.Paint)
	}

	switch {
	case d.Circle != nil && len(d.Points) > 0:
		return s, errors.New(errors.ErrCodeInvalidMarker, "shape has both points and circle")
	case d.Circle != nil:
		if d.Circle.Radius <= 0 {
			return s, errors.New(errors.ErrCodeInvalidMarker, "circle radius must be positive")
		}
		s.Path = sheet.Circle(sheet.FromMM(d.Circle.Center[0]), sheet.FromMM(d.Circle.Center[1]), sheet.FromMM(d.Circle.Radius))
	case len(d.Points) >= 2:
		pts := make([]vec.Vec2, len(d.Points))
		for i, pt := range d.Points {
			pts[i] = vec.Vec2{X: sheet.FromMM(pt[0]), Y: sheet.FromMM(pt[1])}
		}
		s.Path = sheet.Polyline(pts, d.Closed || s.Paint != sheet.Stroke)
	default:
		return s, errors.New(errors.ErrCodeInvalidMarker, "shape needs a circle or at least two points")
	}
	return s, nil
}
