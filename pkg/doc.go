// Package pkg provides the libraries behind brd2tpl, a tool that turns a
// printed circuit board design into a printable template for photographic
// exposure of etch resist and solder mask.
//
// # Overview
//
// A template run renders single board layers, superposes them into one
// composite per physical side and process, and lays the composites out on
// an A4 sheet with optional registration markers:
//
//	Horizon EDA project
//	         ↓
//	    [horizon] (open the board, export one layer per call)
//	         ↓
//	    [layer] (settings per render, catalog of layer names)
//	         ↓
//	    [composite] (merge renders in order)
//	         ↓
//	    [placement] + [marker] (slot geometry, corner markers)
//	         ↓
//	    [template] (A4 sheet)
//	         ↓
//	    [sheet] (single-page PDF)
//
// [pipeline] drives the whole flow from a set of options and composite
// recipes and is what the command line uses.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil)
//	opts := pipeline.DefaultOptions()
//	opts.Input = "board.hprj"
//	opts.Output = "template.pdf"
//	opts.Marker = "cross"
//	if _, err := runner.Execute(ctx, opts); err != nil {
//	    log.Fatal(err)
//	}
//
// # Supporting Packages
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hooks for render, merge, placement and write events.
//
// [buildinfo] - Version information set at link time.
//
// Lengths are PDF points (1/72 inch) everywhere except in pipeline options
// and marker files, which use millimetres.
//
// [horizon]: https://pkg.go.dev/github.com/katyo/brd2tpl/pkg/horizon
// [layer]: https://pkg.go.dev/github.com/katyo/brd2tpl/pkg/layer
// [composite]: https://pkg.go.dev/github.com/katyo/brd2tpl/pkg/composite
// [placement]: https://pkg.go.dev/github.com/katyo/brd2tpl/pkg/placement
// [marker]: https://pkg.go.dev/github.com/katyo/brd2tpl/pkg/marker
// [template]: https://pkg.go.dev/github.com/katyo/brd2tpl/pkg/template
// [sheet]: https://pkg.go.dev/github.com/katyo/brd2tpl/pkg/sheet
// [pipeline]: https://pkg.go.dev/github.com/katyo/brd2tpl/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/katyo/brd2tpl/pkg/errors
// [observability]: https://pkg.go.dev/github.com/katyo/brd2tpl/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/katyo/brd2tpl/pkg/buildinfo
package pkg
