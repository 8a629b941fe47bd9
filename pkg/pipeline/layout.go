package pipeline

import (
	"context"

	"github.com/katyo/brd2tpl/pkg/marker"
	"github.com/katyo/brd2tpl/pkg/template"
)

// Layout places the composites on an A4 sheet. A nil stamper leaves out
// the markers.
func Layout(ctx context.Context, entries []template.Entry, opts Options, s *marker.Stamper) (*template.Result, error) {
	return template.NewBuilder(opts.Engine(), s).Build(ctx, entries)
}
