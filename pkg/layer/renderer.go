package layer

import (
	"context"
	"time"

	"github.com/katyo/brd2tpl/pkg/observability"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// Exporter is a board backend that renders the layers enabled in the
// settings to a single vector page. All renders of one board must share
// the same media box.
type Exporter interface {
	Export(ctx context.Context, s Settings) (*sheet.Page, error)
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(ctx context.Context, s Settings) (*sheet.Page, error)

// Export calls f.
func (f ExporterFunc) Export(ctx context.Context, s Settings) (*sheet.Page, error) {
	return f(ctx, s)
}

// Rendered is the output of one render: the request, the settings sent to
// the exporter and the page it produced.
type Rendered struct {
	Spec     Spec
	Settings Settings
	Page     *sheet.Page
}

// Renderer renders single catalog layers through an Exporter.
// It does not cache: every call results in one export.
type Renderer struct {
	catalog  *Catalog
	exporter Exporter
}

// NewRenderer returns a renderer for the layers of c exported by e.
func NewRenderer(c *Catalog, e Exporter) *Renderer {
	return &Renderer{catalog: c, exporter: e}
}

// Catalog returns the catalog the renderer resolves names against.
func (r *Renderer) Catalog() *Catalog { return r.catalog }

// Settings builds the export settings for spec. Every catalog layer is
// disabled except the requested one, which gets the background colour if
// spec.Invert is set and the foreground colour otherwise.
func (r *Renderer) Settings(spec Spec) (Settings, error) {
	l, err := r.catalog.Lookup(spec.Name)
	if err != nil {
		return Settings{}, err
	}

	s := defaultSettings(r.catalog)
	s.MinLineWidth = spec.BorderWidth
	s.HolesDiameter = spec.HoleDiameter
	s.SetHolesSize = spec.HoleDiameter > 0
	s.Mirror = spec.Mirror

	ls := LayerSettings{Color: Black, Enabled: true, Mode: ModeFill}
	if spec.Invert {
		ls.Color = White
	}
	if spec.Outline {
		ls.Mode = ModeOutline
	}
	s.Layers[l.Index] = ls
	return s, nil
}

// Render exports the layer described by spec. Exporter errors are
// returned unchanged.
func (r *Renderer) Render(ctx context.Context, spec Spec) (*Rendered, error) {
	s, err := r.Settings(spec)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, spec.String())
	start := time.Now()

	page, err := r.exporter.Export(ctx, s.Clone())
	hooks.OnRenderComplete(ctx, spec.String(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &Rendered{Spec: spec, Settings: s, Page: page}, nil
}
