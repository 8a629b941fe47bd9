package pipeline

import (
	"context"

	"github.com/katyo/brd2tpl/pkg/composite"
	"github.com/katyo/brd2tpl/pkg/layer"
	"github.com/katyo/brd2tpl/pkg/template"
)

// RenderComposites renders the layers of every recipe in opts and merges
// them into composites. The entries keep the recipe order and slots.
// Recipe layers are checked against the renderer's catalog before the
// first export. The first failing render aborts the run.
func RenderComposites(ctx context.Context, r *layer.Renderer, opts Options) ([]template.Entry, error) {
	if err := ValidateRecipeLayers(r.Catalog(), opts.Composites); err != nil {
		return nil, err
	}
	entries := make([]template.Entry, 0, len(opts.Composites))
	for _, rc := range opts.Composites {
		c, err := RenderComposite(ctx, r, rc, &opts)
		if err != nil {
			return nil, err
		}
		entries = append(entries, template.Entry{Composite: c, Slot: rc.Placement()})
	}
	return entries, nil
}

// RenderComposite renders and merges the layers of a single recipe.
func RenderComposite(ctx context.Context, r *layer.Renderer, rc Recipe, opts *Options) (*composite.Composite, error) {
	renders := make([]*layer.Rendered, 0, len(rc.Layers))
	for _, lr := range rc.Layers {
		out, err := r.Render(ctx, lr.Spec(opts))
		if err != nil {
			return nil, err
		}
		renders = append(renders, out)
	}
	if opts.Logger != nil {
		opts.Logger.Debug("merging composite", "name", rc.Name, "layers", len(renders))
	}
	return composite.Merge(ctx, rc.Name, renders)
}
