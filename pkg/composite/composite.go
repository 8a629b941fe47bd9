// Package composite merges rendered board layers into a single page.
//
// Layers are superposed in order: every layer is painted over the layers
// before it. An inverted copper render therefore has to come after the
// board outline it cuts into, otherwise the gaps would be filled again.
package composite

import (
	"context"
	"math"
	"time"

	"github.com/katyo/brd2tpl/pkg/errors"
	"github.com/katyo/brd2tpl/pkg/layer"
	"github.com/katyo/brd2tpl/pkg/observability"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// sizeTolerance is the largest media box difference, in points, that
// still counts as the same page size.
const sizeTolerance = 1e-6

// Composite is a named single page built from several layer renders.
type Composite struct {
	Name   string
	Page   *sheet.Page
	Layers []layer.Spec
}

// Merge superposes the pages of layers in order and returns the result.
// The input pages are not modified.
//
// An empty list and pages of different sizes are geometry errors.
func Merge(ctx context.Context, name string, layers []*layer.Rendered) (*Composite, error) {
	start := time.Now()
	c, err := merge(name, layers)
	observability.Pipeline().OnCompositeComplete(ctx, name, len(layers), time.Since(start), err)
	return c, err
}

func merge(name string, layers []*layer.Rendered) (*Composite, error) {
	if len(layers) == 0 {
		return nil, errors.New(errors.ErrCodeGeometry, "composite %q has no layers", name)
	}

	base := layers[0].Page
	if base == nil {
		return nil, errors.New(errors.ErrCodeGeometry, "composite %q: layer %s has no page", name, layers[0].Spec)
	}
	page := base.Clone()
	specs := []layer.Spec{layers[0].Spec}

	for _, l := range layers[1:] {
		if l.Page == nil {
			return nil, errors.New(errors.ErrCodeGeometry, "composite %q: layer %s has no page", name, l.Spec)
		}
		if !sameSize(base, l.Page) {
			return nil, errors.New(errors.ErrCodeGeometry,
				"composite %q: layer %s is %.2f×%.2fpt, expected %.2f×%.2fpt", name, l.Spec,
				sheet.Width(l.Page.MediaBox), sheet.Height(l.Page.MediaBox),
				sheet.Width(base.MediaBox), sheet.Height(base.MediaBox))
		}
		page.Merge(l.Page)
		specs = append(specs, l.Spec)
	}

	return &Composite{Name: name, Page: page, Layers: specs}, nil
}

func sameSize(a, b *sheet.Page) bool {
	return math.Abs(sheet.Width(a.MediaBox)-sheet.Width(b.MediaBox)) <= sizeTolerance &&
		math.Abs(sheet.Height(a.MediaBox)-sheet.Height(b.MediaBox)) <= sizeTolerance
}
