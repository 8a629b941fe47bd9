package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katyo/brd2tpl/pkg/observability"
)

// logHooks reports pipeline events at debug level and keeps the spinner
// message up to date.
type logHooks struct {
	logger  *log.Logger
	spinner *Spinner
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.OutputHooks   = (*logHooks)(nil)
)

func newLogHooks(l *log.Logger, s *Spinner) *logHooks {
	return &logHooks{logger: l, spinner: s}
}

func (h *logHooks) status(msg string) {
	if h.spinner != nil {
		h.spinner.SetMessage(msg)
	}
}

func (h *logHooks) OnRenderStart(_ context.Context, layer string) {
	h.status("Rendering " + layer + "...")
}

func (h *logHooks) OnRenderComplete(_ context.Context, layer string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "layer", layer, "error", err)
		return
	}
	h.logger.Debug("rendered layer", "layer", layer, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnCompositeComplete(_ context.Context, name string, layers int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("merge failed", "composite", name, "error", err)
		return
	}
	h.logger.Debug("merged composite", "composite", name, "layers", layers, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnPlaceComplete(_ context.Context, name string, x, y int, angle float64) {
	h.status("Placing " + name + "...")
	h.logger.Debug("placed composite", "composite", name, "x", x, "y", y, "angle", angle)
}

func (h *logHooks) OnWrite(_ context.Context, path string, composites int, d time.Duration, err error) {
	h.status("Writing " + path + "...")
	if err != nil {
		h.logger.Debug("write failed", "path", path, "error", err)
		return
	}
	h.logger.Debug("wrote file", "path", path, "composites", composites, "duration", d.Round(time.Microsecond))
}
