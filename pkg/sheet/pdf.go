package sheet

import (
	"fmt"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
)

// WriteFile writes p as a single-page PDF file.
func (p *Page) WriteFile(fileName string) error {
	paper := &pdf.Rectangle{
		LLx: p.MediaBox.LLx,
		LLy: p.MediaBox.LLy,
		URx: p.MediaBox.URx,
		URy: p.MediaBox.URy,
	}

	out, err := document.CreateSinglePage(fileName, paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("create %s: %w", fileName, err)
	}

	for _, it := range p.items {
		s := it.Shape
		if s.Path == nil {
			continue
		}

		out.PushGraphicsState()
		out.Transform(it.CTM)

		g := color.DeviceGray(s.Gray)
		if s.Paint == Stroke {
			out.SetStrokeColor(g)
			out.SetLineWidth(s.Width)
			out.SetLineCap(s.Cap)
			out.SetLineJoin(s.Join)
		} else {
			out.SetFillColor(g)
		}

		// PDF has no quadratic segments
		for cmd, pts := range s.Path.Iter().ToCubic() {
			switch cmd {
			case path.CmdMoveTo:
				out.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				out.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				out.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				out.ClosePath()
			}
		}

		switch s.Paint {
		case Fill:
			out.Fill()
		case FillEvenOdd:
			out.FillEvenOdd()
		case Stroke:
			out.Stroke()
		}

		out.PopGraphicsState()
	}

	return out.Close()
}
