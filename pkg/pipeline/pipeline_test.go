package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katyo/brd2tpl/pkg/errors"
	"github.com/katyo/brd2tpl/pkg/layer"
	"github.com/katyo/brd2tpl/pkg/placement"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// fakeBoard exports a fixed-size page with one shape per render.
type fakeBoard struct {
	calls int
	fail  error
	size  func(call int) (w, h float64)
}

func (b *fakeBoard) Export(_ context.Context, s layer.Settings) (*sheet.Page, error) {
	b.calls++
	if b.fail != nil {
		return nil, b.fail
	}
	w, h := 100.0, 50.0
	if b.size != nil {
		w, h = b.size(b.calls)
	}
	p := sheet.New(sheet.Box(0, 0, w, h))
	idx := s.Enabled()[0]
	ls, _ := s.Layer(idx)
	p.Draw(sheet.Shape{Path: sheet.Rect(0, 0, w, h), Paint: sheet.Fill, Gray: ls.Color.Gray()})
	return p, nil
}

func fakeRunner(b *fakeBoard, opened *int) *Runner {
	return &Runner{
		Catalog: layer.Horizon(),
		Opener: OpenerFunc(func(string) (layer.Exporter, error) {
			*opened++
			return b, nil
		}),
	}
}

func testOptions(t *testing.T) Options {
	t.Helper()
	opts := DefaultOptions()
	opts.Input = "board.hprj"
	opts.Output = filepath.Join(t.TempDir(), "template.pdf")
	return opts
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Field != 10 || o.Margin != 10 || o.Border != 0.5 || o.Hole != 0.1 || o.Rotate != 0 || o.MarkerOffset != 2 {
		t.Errorf("DefaultOptions() = %+v", o)
	}
	if o.Marker != "" {
		t.Errorf("Marker = %q, want none", o.Marker)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"valid", func(*Options) {}, ""},
		{"zero lengths", func(o *Options) { o.Field, o.Margin, o.Border, o.Hole, o.MarkerOffset = 0, 0, 0, 0, 0 }, ""},
		{"no input", func(o *Options) { o.Input = "" }, errors.ErrCodeInvalidInput},
		{"no output", func(o *Options) { o.Output = "" }, errors.ErrCodeInvalidInput},
		{"negative margin", func(o *Options) { o.Margin = -1 }, errors.ErrCodeInvalidInput},
		{"negative hole", func(o *Options) { o.Hole = -0.1 }, errors.ErrCodeInvalidInput},
		{"infinite field", func(o *Options) { o.Field = math.Inf(1) }, errors.ErrCodeInvalidInput},
		{"nan rotate", func(o *Options) { o.Rotate = math.NaN() }, errors.ErrCodeInvalidInput},
		{"negative rotate", func(o *Options) { o.Rotate = -15 }, ""},
		{"no layers", func(o *Options) { o.Composites = []Recipe{{Name: "x", Slot: [2]int{1, 0}}} }, errors.ErrCodeInvalidInput},
		{"centre slot", func(o *Options) { o.Composites[0].Slot = [2]int{0, 0} }, errors.ErrCodeInvalidInput},
		{"negative row", func(o *Options) { o.Composites[0].Slot = [2]int{-1, -1} }, errors.ErrCodeInvalidInput},
		{"shared slot", func(o *Options) { o.Composites[1].Slot = o.Composites[0].Slot }, errors.ErrCodeInvalidInput},
		{"duplicate name", func(o *Options) { o.Composites[1].Name = o.Composites[0].Name }, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := testOptions(t)
			o.SetDefaults()
			tt.modify(&o)
			err := o.Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.code, errors.GetCode(err), "got %v", err)
		})
	}
}

func TestValidateOutputDirectory(t *testing.T) {
	o := testOptions(t)
	o.Output = t.TempDir()
	assert.True(t, errors.Is(o.ValidateAndSetDefaults(), errors.ErrCodeInvalidInput))
}

func TestDefaultRecipes(t *testing.T) {
	rs := DefaultRecipes()
	require.Len(t, rs, 4)
	require.NoError(t, ValidateRecipes(rs))
	require.NoError(t, ValidateRecipeLayers(layer.Horizon(), rs))

	want := []struct {
		name   string
		slot   placement.Slot
		layers []string
		mirror bool
	}{
		{"top_copper", placement.Slot{X: -1, Y: 0}, []string{layer.Outline, layer.Outline, layer.TopCopper, layer.Holes}, true},
		{"bottom_copper", placement.Slot{X: 1, Y: 0}, []string{layer.Outline, layer.Outline, layer.BottomCopper, layer.Holes}, false},
		{"top_mask", placement.Slot{X: -1, Y: 1}, []string{layer.Outline, layer.Outline, layer.TopMask}, true},
		{"bottom_mask", placement.Slot{X: 1, Y: 1}, []string{layer.Outline, layer.Outline, layer.BottomMask}, false},
	}
	for i, w := range want {
		assert.Equal(t, w.name, rs[i].Name)
		assert.Equal(t, w.slot, rs[i].Placement())
		assert.Equal(t, w.layers, rs[i].LayerNames())
		for _, l := range rs[i].Layers {
			assert.Equal(t, w.mirror, l.Mirror, "%s %s", w.name, l.Layer)
		}
	}

	// Copper is inverted over the filled outline, masks are not.
	assert.True(t, rs[0].Layers[2].Invert)
	assert.False(t, rs[2].Layers[2].Invert)
	assert.True(t, rs[2].Layers[1].Invert)
	assert.True(t, rs[0].Layers[3].Hole)
}

func TestLayerRecipeSpec(t *testing.T) {
	o := DefaultOptions()
	s := LayerRecipe{Layer: layer.Outline, Outline: true, Border: true}.Spec(&o)
	assert.InDelta(t, sheet.FromMM(0.5), s.BorderWidth, 1e-12)
	assert.Zero(t, s.HoleDiameter)

	s = LayerRecipe{Layer: layer.Holes, Hole: true}.Spec(&o)
	assert.InDelta(t, sheet.FromMM(0.1), s.HoleDiameter, 1e-12)
	assert.Zero(t, s.BorderWidth)
}

func TestValidateRecipeLayers(t *testing.T) {
	rs := DefaultRecipes()
	rs[1].Layers[2].Layer = "TOP_GOLD"
	err := ValidateRecipeLayers(layer.Horizon(), rs)
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownLayer), "got %v", err)
}

func TestRenderCompositesChecksCatalog(t *testing.T) {
	c, err := layer.NewCatalog(layer.Layer{Name: layer.Outline, Index: 100})
	require.NoError(t, err)
	b := &fakeBoard{}
	opts := testOptions(t)
	opts.SetDefaults()

	_, err = RenderComposites(context.Background(), layer.NewRenderer(c, b), opts)
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownLayer), "got %v", err)
	assert.Zero(t, b.calls)
}

func TestExecute(t *testing.T) {
	b := &fakeBoard{}
	opened := 0
	opts := testOptions(t)

	res, err := fakeRunner(b, &opened).Execute(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, opened)
	assert.Equal(t, 14, b.calls)
	assert.Equal(t, 4, res.Stats.Composites)
	assert.Equal(t, 14, res.Stats.Renders)
	assert.Equal(t, sheet.A4, res.Template.Page.MediaBox)
	assert.Equal(t, 14, res.Template.Page.Len())
	require.Len(t, res.Template.Placements, 4)
	for i, want := range []placement.Slot{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: 1}, {X: 1, Y: 1}} {
		assert.Equal(t, want, res.Template.Placements[i].Slot)
	}

	info, err := os.Stat(opts.Output)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExecuteWithMarker(t *testing.T) {
	opts := testOptions(t)
	opts.Marker = "cross"
	opts.MarkerDir = t.TempDir()
	opts.Rotate = 15
	opened := 0

	res, err := fakeRunner(&fakeBoard{}, &opened).Execute(context.Background(), opts)
	require.NoError(t, err)

	// The built-in cross has three shapes, stamped at four corners of
	// four composites.
	assert.Equal(t, 14+3*4*4, res.Template.Page.Len())
	assert.Equal(t, -15.0, res.Template.Placements[0].Angle)
	assert.Equal(t, 15.0, res.Template.Placements[1].Angle)
}

func TestExecuteFailsBeforeOpening(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"unknown layer", func(o *Options) {
			o.Composites = DefaultRecipes()
			o.Composites[3].Layers[2].Layer = "BOTTOM_GOLD"
		}, errors.ErrCodeUnknownLayer},
		{"missing marker", func(o *Options) {
			o.Marker = "no-such-marker"
			o.MarkerDir = t.TempDir()
		}, errors.ErrCodeMarkerNotFound},
		{"invalid options", func(o *Options) { o.Border = -1 }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBoard{}
			opened := 0
			opts := testOptions(t)
			tt.modify(&opts)

			_, err := fakeRunner(b, &opened).Execute(context.Background(), opts)
			assert.Equal(t, tt.code, errors.GetCode(err), "got %v", err)
			assert.Zero(t, opened)
			assert.Zero(t, b.calls)
			assert.NoFileExists(t, opts.Output)
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	t.Run("open failure", func(t *testing.T) {
		r := &Runner{
			Catalog: layer.Horizon(),
			Opener: OpenerFunc(func(path string) (layer.Exporter, error) {
				return nil, fmt.Errorf("no such project")
			}),
		}
		_, err := r.Execute(context.Background(), testOptions(t))
		assert.True(t, errors.Is(err, errors.ErrCodeProjectOpen), "got %v", err)
	})

	t.Run("export failure", func(t *testing.T) {
		cause := errors.New(errors.ErrCodeExternalRender, "exporter crashed")
		b := &fakeBoard{fail: cause}
		opened := 0
		opts := testOptions(t)
		_, err := fakeRunner(b, &opened).Execute(context.Background(), opts)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, 1, b.calls)
		assert.NoFileExists(t, opts.Output)
	})

	t.Run("size mismatch", func(t *testing.T) {
		b := &fakeBoard{size: func(call int) (float64, float64) {
			if call == 2 {
				return 90, 50
			}
			return 100, 50
		}}
		opened := 0
		_, err := fakeRunner(b, &opened).Execute(context.Background(), testOptions(t))
		assert.True(t, errors.Is(err, errors.ErrCodeGeometry), "got %v", err)
	})
}

func TestExecuteHorizonBoard(t *testing.T) {
	opts := testOptions(t)
	opts.Input = filepath.Join("..", "horizon", "testdata", "project", "fixture.hprj")
	opts.Marker = "target"

	res, err := NewRunner(nil).Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Stats.Composites)

	// 20×10 mm board without rotation
	pl := res.Template.Placements[0]
	assert.InDelta(t, sheet.FromMM(20), pl.Width, 1e-6)
	assert.InDelta(t, sheet.FromMM(10), pl.Height, 1e-6)
	assert.FileExists(t, opts.Output)
}
