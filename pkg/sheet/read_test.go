package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"
)

func TestReadFileRoundTrip(t *testing.T) {
	p := New(Box(0, 0, 100, 50))
	p.Draw(Shape{Path: Rect(10, 10, 20, 10), Paint: Fill, Gray: Black})
	p.Draw(Shape{Path: Circle(70, 25, 10), Paint: Stroke, Gray: 0.5, Width: 2, Cap: graphics.LineCapRound})
	hole := New(Box(0, 0, 100, 50))
	hole.Draw(Shape{Path: Rect(0, 0, 4, 4), Paint: FillEvenOdd, Gray: White})
	p.MergeTransformed(hole, Translation(40, 20))

	name := filepath.Join(t.TempDir(), "marker.pdf")
	require.NoError(t, p.WriteFile(name))

	got, err := ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, p.MediaBox, got.MediaBox)
	require.Equal(t, p.Len(), got.Len())

	const delta = 1e-3
	for i, it := range got.Items() {
		want := p.Items()[i]
		assert.Equal(t, want.Shape.Paint, it.Shape.Paint, "item %d", i)
		assert.InDelta(t, want.Shape.Gray, it.Shape.Gray, delta, "item %d", i)

		wb := TransformRect(want.CTM, ControlBounds(want.Shape.Path))
		gb := TransformRect(it.CTM, ControlBounds(it.Shape.Path))
		assert.InDelta(t, wb.LLx, gb.LLx, delta, "item %d", i)
		assert.InDelta(t, wb.LLy, gb.LLy, delta, "item %d", i)
		assert.InDelta(t, wb.URx, gb.URx, delta, "item %d", i)
		assert.InDelta(t, wb.URy, gb.URy, delta, "item %d", i)
	}

	stroke := got.Items()[1].Shape
	assert.InDelta(t, 2, stroke.Width, delta)
	assert.Equal(t, graphics.LineCapRound, stroke.Cap)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()
	notPDF := filepath.Join(dir, "marker.pdf")
	require.NoError(t, os.WriteFile(notPDF, []byte("width = 1\n"), 0o644))

	for _, name := range []string{filepath.Join(dir, "missing.pdf"), notPDF} {
		_, err := ReadFile(name)
		assert.Error(t, err, name)
	}
}

func TestContentBounds(t *testing.T) {
	items := []Item{
		{Shape: Shape{Path: Rect(0, 0, 2, 2)}, CTM: Translation(5, 5)},
		{Shape: Shape{Path: Circle(0, 0, 1)}, CTM: Translation(-1, 0)},
	}
	assert.Equal(t, Box(-2, -1, 7, 7), contentBounds(items))
	assert.Equal(t, rect.Rect{}, contentBounds(nil))
}
