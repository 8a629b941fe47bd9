// Package sheet is a small in-memory vector page model with PDF output.
//
// A [Page] is a media box plus an ordered list of painted shapes. Shapes are
// painted in order, so content merged later covers content merged earlier
// (painter's algorithm). Every shape carries its own transformation matrix,
// which makes merging a page into another page with an affine transform a
// matter of composing matrices; no content is ever rasterized.
//
// # Coordinates
//
// All lengths are in PDF points (1/72 inch). Use [FromMM] and [ToMM] to
// convert from and to millimetres. Matrices follow the PDF convention used
// by seehuhn.de/go/geom/matrix: a point (x, y) maps to
// (a·x + c·y + e, b·x + d·y + f).
//
// # Usage
//
//	p := sheet.New(sheet.Box(0, 0, 100, 50))
//	p.Draw(sheet.Shape{Path: sheet.Rect(0, 0, 100, 50), Paint: sheet.Fill, Gray: sheet.Black})
//	p.Transform(sheet.Rotation(15))
//	err := p.WriteFile("out.pdf")
//
// [ReadFile] goes the other way and reads the painted paths of the first
// page of a PDF file, reducing colours to gray.
package sheet
