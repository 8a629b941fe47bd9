package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katyo/brd2tpl/pkg/buildinfo"
	"github.com/katyo/brd2tpl/pkg/observability"
	"github.com/katyo/brd2tpl/pkg/pipeline"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"field":         pipeline.KeyField,
	"margin":        pipeline.KeyMargin,
	"border":        pipeline.KeyBorder,
	"hole":          pipeline.KeyHole,
	"rotate":        pipeline.KeyRotate,
	"marker-pdf":    pipeline.KeyMarker,
	"marker-offset": pipeline.KeyMarkerOffset,
	"marker-dir":    pipeline.KeyMarkerDir,
}

// templateCommand creates the command that builds a template. It is the
// root command of the CLI.
func (c *CLI) templateCommand() *cobra.Command {
	opts := pipeline.DefaultOptions()
	var config string

	cmd := &cobra.Command{
		Use:   "brd2tpl [flags] <input> <output>",
		Short: "Export a Horizon EDA board to a photo exposure template",
		Long: `brd2tpl renders the copper and solder mask layers of a Horizon EDA board
and lays them out on a single A4 PDF page for photographic exposure.

The input is a project file (*.hprj) or a board file (board.json). Top side
layers are mirrored; the left column is rotated by -rotate and the right one
by +rotate degrees. Lengths are in millimetres.`,
		Example: `  brd2tpl board.hprj template.pdf
  brd2tpl -r 15 -c cross board.hprj template.pdf
  brd2tpl --config brd2tpl.toml board/board.json template.pdf`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input, opts.Output = args[0], args[1]
			return c.runTemplate(cmd, opts, config)
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&opts.Field, "field", "f", pipeline.DefaultField, "top field height (mm)")
	f.Float64VarP(&opts.Margin, "margin", "m", pipeline.DefaultMargin, "distance between composites (mm)")
	f.Float64VarP(&opts.Border, "border", "b", pipeline.DefaultBorder, "outline stroke width (mm)")
	f.Float64VarP(&opts.Hole, "hole", "d", pipeline.DefaultHole, "drill hole diameter (mm)")
	f.Float64VarP(&opts.Rotate, "rotate", "r", pipeline.DefaultRotate, "rotation angle (deg)")
	f.StringVarP(&opts.Marker, "marker-pdf", "c", "", "registration marker PDF, shape file or built-in name")
	f.Float64VarP(&opts.MarkerOffset, "marker-offset", "p", pipeline.DefaultMarkerOffset, "marker to corner distance (mm)")
	f.StringVar(&opts.MarkerDir, "marker-dir", "", "directory searched for markers (default: data next to the executable)")
	f.StringVar(&config, "config", "", "TOML config file (default: ~/.config/brd2tpl/config.toml if present)")

	return cmd
}

func (c *CLI) runTemplate(cmd *cobra.Command, opts pipeline.Options, config string) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	logger := loggerFromContext(ctx)
	logger.Debug(buildinfo.String())

	if config == "" {
		config, _ = userConfig()
	}
	if config != "" {
		cfg, err := applyConfig(&opts, config, cmd.Flags().Changed)
		if err != nil {
			return err
		}
		logger.Debug("loaded config", "path", cfg.Path)
	}
	opts.Logger = logger
	opts.SetDefaults()

	var spinner *Spinner
	runLogger := logger
	if logger.GetLevel() > LogDebug {
		spinner = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Building template...")
		spinner.Start()
		// log lines must not land in the middle of a spinner frame
		runLogger = logger.With()
		runLogger.SetOutput(spinner.Writer())
	}
	opts.Logger = runLogger
	hooks := newLogHooks(runLogger, spinner)
	observability.SetPipelineHooks(hooks)
	observability.SetOutputHooks(hooks)
	defer observability.Reset()

	prog := newProgress(logger)
	res, err := pipeline.NewRunner(runLogger).Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if ctx.Err() != nil {
		return context.Cause(ctx)
	}
	if err != nil {
		return err
	}
	prog.done("Built template")

	w := c.Out
	printSuccess(w, "Template written")
	printFile(w, opts.Output)
	printKeyValue(w, "composites", fmt.Sprintf("%d (%d layer renders)", res.Stats.Composites, res.Stats.Renders))
	printKeyValue(w, "rotation", fmt.Sprintf("±%g°", opts.Rotate))
	marker := "none"
	if opts.Marker != "" {
		marker = fmt.Sprintf("%s, %g mm from the corners", opts.Marker, opts.MarkerOffset)
	}
	printKeyValue(w, "markers", marker)
	for i, pl := range res.Template.Placements {
		printDetail(w, "%-14s %s  %.1f×%.1f mm  %+g°",
			opts.Composites[i].Name, pl.Slot, sheet.ToMM(pl.Width), sheet.ToMM(pl.Height), pl.Angle)
	}
	return nil
}

// applyConfig loads the config file at path into opts. Options whose flag
// was given on the command line keep their flag value.
func applyConfig(opts *pipeline.Options, path string, changed func(flag string) bool) (*pipeline.Config, error) {
	cfg, err := pipeline.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.Apply(opts, func(key string) bool {
		for flag, k := range flagKeys {
			if k == key && changed(flag) {
				return true
			}
		}
		return false
	})
	return cfg, nil
}
