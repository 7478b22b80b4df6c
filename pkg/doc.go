// Package pkg provides the core libraries for plotgrid figure composition.
//
// # Overview
//
// plotgrid arranges independently rendered plots on a grid and negotiates a
// figure size at which every panel renders at exactly its assigned region.
// The pkg directory is organized into these areas:
//
//  1. Layout: [design] (grid specs), [area] (regions), [layout] (placement
//     and reading order)
//  2. Composition: [patch] (the composition tree) and [annotation] (titles,
//     captions and panel tags)
//  3. Sizing: [correct] (per-leaf render correction) and [negotiate]
//     (figure-wide allocation with rescale retries)
//  4. Output: [plot] (leaf types), [backend] (renderers), [compose] (SVG
//     assembly and export)
//  5. Infrastructure: [cache], [config], [errors], [fonts], [units],
//     [observability], [figure] (YAML figure files)
//  6. [pipeline] - Orchestration (negotiate → compose → serialize)
//
// # Architecture
//
// The typical data flow through plotgrid:
//
//	figure.yaml
//	     ↓
//	[figure] package (composition tree)
//	     ↓
//	[negotiate] package (minimum size, allocation, leaf correction)
//	     ↓
//	[compose] package (one SVG canvas)
//	     ↓
//	SVG/PNG/PDF/PS/EPS/JPEG output
//
// # Quick Start
//
// Build a tree in code and save it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/plotgrid/pkg/patch"
//	    "github.com/matzehuels/plotgrid/pkg/pipeline"
//	    "github.com/matzehuels/plotgrid/pkg/plot"
//	)
//
//	a := plot.DOT{Source: "digraph { a -> b }"}
//	b := plot.Text{Label: "notes"}
//	fig := patch.Beside(patch.Leaf(a), patch.Leaf(b))
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	_, err := runner.Save(context.Background(), fig, "fig.pdf", pipeline.SaveOptions{
//	    Width: pipeline.Inches(6),
//	})
//
// [design]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/design
// [area]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/area
// [layout]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/layout
// [patch]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/patch
// [annotation]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/annotation
// [correct]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/correct
// [negotiate]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/negotiate
// [plot]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/plot
// [backend]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/backend
// [compose]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/compose
// [cache]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/errors
// [fonts]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/fonts
// [units]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/units
// [observability]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/observability
// [figure]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/figure
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/plotgrid/pkg/pipeline
package pkg
