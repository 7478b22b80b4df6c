// Package pipeline provides the top-level figure pipeline for plotgrid.
//
// This package implements the complete size → compose → serialize pipeline
// used by the CLI and the preview server. By centralizing this logic, every
// entry point resolves defaults, caches and writes output the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Negotiate: pick the figure size and correct every leaf rendering
//  2. Compose: place fragments and annotations on one SVG canvas
//  3. Serialize: encode the canvas as SVG, PNG, PDF, PS, EPS or JPEG
//
// # Usage
//
// Create a Runner and save a figure:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Save(ctx, root, "figure.png", pipeline.SaveOptions{
//	    Width: pipeline.Inches(6),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Stats.Attempts)
//
// Nothing is written when any stage fails.
package pipeline

import (
	"time"

	"github.com/matzehuels/plotgrid/pkg/compose"
	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// SaveOptions controls the size and encoding of a saved figure.
type SaveOptions struct {
	// Width and Height are in inches. Nil derives the missing side from
	// the figure's minimum size.
	Width  *float64
	Height *float64
	// DPI is the pixel density; zero uses the runner's config (96 by
	// default).
	DPI float64
	// Format overrides the format inferred from the output path.
	Format compose.Format
	// Refresh skips the figure cache lookup.
	Refresh bool
}

// ShowOptions controls an on-screen preview.
type ShowOptions struct {
	Width  *float64
	Height *float64
	DPI    float64
}

// Inches returns a pointer to v for use as a SaveOptions dimension.
func Inches(v float64) *float64 { return &v }

// Validate checks explicit dimensions, dpi and format.
func (o SaveOptions) Validate() error {
	if o.Width != nil {
		if err := errors.ValidateDimension("width", *o.Width); err != nil {
			return err
		}
	}
	if o.Height != nil {
		if err := errors.ValidateDimension("height", *o.Height); err != nil {
			return err
		}
	}
	if o.DPI != 0 {
		if err := errors.ValidateDimension("dpi", o.DPI); err != nil {
			return err
		}
	}
	if o.Format != "" {
		if err := compose.ValidateFormat(string(o.Format)); err != nil {
			return err
		}
	}
	return nil
}

// Result is a serialized figure.
type Result struct {
	Data   []byte
	Format compose.Format
	// Size is the final figure size in inches.
	Size     units.Size
	Stats    Stats
	CacheHit bool
}

// Stats describes the work done for one figure.
type Stats struct {
	Leaves        int
	Attempts      int
	Renders       int
	NegotiateTime time.Duration
	ComposeTime   time.Duration
	SerializeTime time.Duration
	Duration      time.Duration
}
