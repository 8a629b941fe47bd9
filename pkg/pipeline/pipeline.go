// Package pipeline turns a board project into an exposure template.
//
// This package implements the complete open → render → compose → lay out
// → write pipeline behind the brd2tpl command. Keeping it out of the CLI
// lets tests run the whole flow against an in-memory exporter.
//
// # Stages
//
//  1. Open: load the board project through an [Opener]
//  2. Render: export every layer of every [Recipe] and merge the renders
//     into composites
//  3. Lay out: place the composites on an A4 sheet and stamp markers
//  4. Write: save the sheet as a single-page PDF
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.DefaultOptions()
//	opts.Input = "board.hprj"
//	opts.Output = "template.pdf"
//	opts.Rotate = 15
//	result, err := runner.Execute(ctx, opts)
//
// Lengths in [Options] are millimetres; everything past the options works
// in PDF points.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katyo/brd2tpl/pkg/errors"
	"github.com/katyo/brd2tpl/pkg/placement"
	"github.com/katyo/brd2tpl/pkg/sheet"
	"github.com/katyo/brd2tpl/pkg/template"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config
// =============================================================================

const (
	// DefaultField is the height of the free field at the top of the sheet in mm.
	DefaultField = 10.0

	// DefaultMargin is the distance between neighbouring composites in mm.
	DefaultMargin = 10.0

	// DefaultBorder is the stroke width of outline renders in mm.
	DefaultBorder = 0.5

	// DefaultHole is the forced drill hole diameter in mm.
	DefaultHole = 0.1

	// DefaultRotate is the composite rotation in degrees.
	DefaultRotate = 0.0

	// DefaultMarkerOffset is the distance from a composite corner to the
	// marker centre in mm.
	DefaultMarkerOffset = 2.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a template run.
type Options struct {
	Input  string `toml:"-"`
	Output string `toml:"-"`

	// Layout options, in mm and degrees
	Field  float64 `toml:"field"`
	Margin float64 `toml:"margin"`
	Rotate float64 `toml:"rotate"`

	// Render options, in mm
	Border float64 `toml:"border"`
	Hole   float64 `toml:"hole"`

	// Marker options. An empty Marker disables markers.
	Marker       string  `toml:"marker"`
	MarkerOffset float64 `toml:"marker_offset"`
	MarkerDir    string  `toml:"marker_dir"`

	// Composites to build; nil means [DefaultRecipes].
	Composites []Recipe `toml:"composite"`

	// Runtime options
	Logger *log.Logger `toml:"-"`
}

// DefaultOptions returns options with every length at its default.
func DefaultOptions() Options {
	return Options{
		Field:        DefaultField,
		Margin:       DefaultMargin,
		Rotate:       DefaultRotate,
		Border:       DefaultBorder,
		Hole:         DefaultHole,
		MarkerOffset: DefaultMarkerOffset,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Template is the finished sheet with its placements.
	Template *template.Result

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Composites int
	Renders    int
	OpenTime   time.Duration
	RenderTime time.Duration
	LayoutTime time.Duration
	WriteTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in the recipes and the logger when they are unset.
// Lengths are left alone since zero is a meaningful value for all of them.
func (o *Options) SetDefaults() {
	if o.Composites == nil {
		o.Composites = DefaultRecipes()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options. It does not touch the file system except
// to make sure the output is not a directory.
func (o *Options) Validate() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input project is required")
	}
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	for _, l := range []struct {
		name string
		v    float64
	}{
		{"field", o.Field},
		{"margin", o.Margin},
		{"border", o.Border},
		{"hole", o.Hole},
		{"marker offset", o.MarkerOffset},
	} {
		if err := errors.ValidateLength(l.name, l.v); err != nil {
			return err
		}
	}
	if err := errors.ValidateAngle("rotate", o.Rotate); err != nil {
		return err
	}
	return ValidateRecipes(o.Composites)
}

// ValidateAndSetDefaults applies defaults and validates the options.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// Engine returns the placement engine for the options.
func (o *Options) Engine() placement.Engine {
	return placement.Engine{
		Paper:  sheet.A4,
		Field:  sheet.FromMM(o.Field),
		Margin: sheet.FromMM(o.Margin),
		Rotate: o.Rotate,
	}
}
