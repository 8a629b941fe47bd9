package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katyo/brd2tpl/pkg/errors"
	"github.com/katyo/brd2tpl/pkg/horizon"
	"github.com/katyo/brd2tpl/pkg/layer"
	"github.com/katyo/brd2tpl/pkg/marker"
	"github.com/katyo/brd2tpl/pkg/observability"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// Opener opens a board project and returns its layer exporter.
type Opener interface {
	Open(path string) (layer.Exporter, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (layer.Exporter, error)

// Open calls f.
func (f OpenerFunc) Open(path string) (layer.Exporter, error) { return f(path) }

// HorizonOpener opens Horizon EDA projects and boards.
var HorizonOpener = OpenerFunc(func(path string) (layer.Exporter, error) {
	b, err := horizon.Open(path)
	if err != nil {
		return nil, err
	}
	return b, nil
})

// Runner executes template runs.
//
// The Runner holds no per-run state. Multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Catalog *layer.Catalog
	Opener  Opener
	Logger  *log.Logger
}

// NewRunner creates a runner for Horizon EDA projects.
// If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Catalog: layer.Horizon(),
		Opener:  HorizonOpener,
		Logger:  logger,
	}
}

// Execute runs the complete pipeline and writes the template to
// opts.Output. Options and recipes are validated before any file is read.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ValidateRecipeLayers(r.Catalog, opts.Composites); err != nil {
		return nil, err
	}

	stamper, err := r.LoadMarker(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Open
	openStart := time.Now()
	exporter, err := r.Opener.Open(opts.Input)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeProjectOpen, err, "open %s", opts.Input)
		}
		return nil, err
	}
	result.Stats.OpenTime = time.Since(openStart)
	opts.Logger.Debug("opened project", "path", opts.Input, "duration", result.Stats.OpenTime)

	// Stage 2: Render
	renderStart := time.Now()
	renderer := layer.NewRenderer(r.Catalog, exporter)
	composites, err := RenderComposites(ctx, renderer, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.Composites = len(composites)
	for _, c := range composites {
		result.Stats.Renders += len(c.Composite.Layers)
	}
	opts.Logger.Info("rendered composites",
		"composites", result.Stats.Composites,
		"renders", result.Stats.Renders,
		"duration", result.Stats.RenderTime)

	// Stage 3: Lay out
	layoutStart := time.Now()
	tpl, err := Layout(ctx, composites, opts, stamper)
	if err != nil {
		return nil, err
	}
	result.Template = tpl
	result.Stats.LayoutTime = time.Since(layoutStart)
	opts.Logger.Debug("laid out template", "rotate", opts.Rotate, "markers", stamper != nil)

	// Stage 4: Write
	writeStart := time.Now()
	err = tpl.Page.WriteFile(opts.Output)
	result.Stats.WriteTime = time.Since(writeStart)
	observability.Output().OnWrite(ctx, opts.Output, len(composites), result.Stats.WriteTime, err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutputWrite, err, "write %s", opts.Output)
	}
	opts.Logger.Info("wrote template", "path", opts.Output, "duration", result.Stats.WriteTime)

	return result, nil
}

// LoadMarker resolves and loads the configured marker. It returns a nil
// stamper when no marker is configured.
func (r *Runner) LoadMarker(opts Options) (*marker.Stamper, error) {
	if opts.Marker == "" {
		return nil, nil
	}
	f := marker.Finder{DataDir: opts.MarkerDir}
	page, err := f.Load(opts.Marker)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		opts.Logger.Debug("loaded marker", "name", opts.Marker, "shapes", page.Len())
	}
	return marker.NewStamper(marker.Spec{Page: page, Offset: sheet.FromMM(opts.MarkerOffset)}), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
