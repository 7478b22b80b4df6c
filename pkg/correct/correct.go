// Package correct drives a rendering backend to a requested output size.
//
// Backends often miss the size they are asked for: they pad, crop to the
// drawn content or refuse to shrink below a minimum. [Correct] treats the
// backend as a black box and rescales its request by desired/actual until
// the rendered size matches the target within a tolerance.
//
// For a backend whose output is proportional to its input the first
// correction is exact, so convergence takes one correction. Backends that
// ignore their input never converge; the loop gives up after a bounded
// number of renders or once the request shrinks below a pixel floor.
package correct

import (
	"context"
	"fmt"
	"math"

	"github.com/matzehuels/plotgrid/pkg/backend"
	"github.com/matzehuels/plotgrid/pkg/config"
	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/plot"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// Options are the convergence tolerances.
type Options struct {
	// Eps is the tolerated |Δw|+|Δh| between actual and desired, in inches.
	Eps float64
	// MaxIter bounds the number of backend renders.
	MaxIter int
	// MinSizePx is the smallest request, in pixels at the given dpi, the
	// loop will try before giving up.
	MinSizePx float64
	// Strict makes failures return a *errors.ConvergenceError. Otherwise a
	// failure is reported through Result.Converged and Result.Ratio.
	Strict bool
}

// FromConfig takes the tolerances from cfg.
func FromConfig(cfg config.Config, strict bool) Options {
	return Options{Eps: cfg.Eps, MaxIter: cfg.MaxIter, MinSizePx: cfg.MinSizePx, Strict: strict}
}

// Result describes a correction run.
type Result struct {
	// Converged is false only in non-strict mode after a failure.
	Converged bool
	// Request is the size to ask the backend for to get the desired size.
	// On failure it is the last candidate tried.
	Request units.Size
	// Fragment is the last rendering.
	Fragment backend.Fragment
	// Ratio is desired/actual for the render at the desired size. Values
	// below 1 mean the leaf needs more room than it was given.
	Ratio units.Size
	// Iterations counts corrections applied; Renders counts backend calls.
	Iterations int
	Renders    int
	// Reason is set when Converged is false.
	Reason errors.Code
}

// Correct renders leaf at desired (inches) and corrects the request until
// the backend reports the desired size.
func Correct(ctx context.Context, r backend.Renderer, leaf plot.Leaf, desired units.Size, dpi float64, opts Options) (Result, error) {
	if err := validate(desired, dpi, opts); err != nil {
		return Result{}, err
	}

	current := desired
	res := Result{}
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		frag, err := r.Render(ctx, leaf, current.W, current.H, dpi)
		res.Renders++
		if err != nil {
			return res, fmt.Errorf("render %s at %s: %w", plot.Describe(leaf), current, err)
		}
		actual := frag.Size()
		if actual.W <= 0 || actual.H <= 0 || math.IsNaN(actual.W) || math.IsNaN(actual.H) {
			return res, errors.New(errors.ErrCodeRenderFailed, "backend reported size %s for %s", actual, plot.Describe(leaf))
		}
		res.Fragment = frag
		if res.Renders == 1 {
			res.Ratio = desired.Div(actual)
		}

		delta := math.Abs(actual.W-desired.W) + math.Abs(actual.H-desired.H)
		if delta < opts.Eps {
			res.Converged = true
			res.Request = current
			return res, nil
		}

		current = current.Mul(desired.Div(actual))
		res.Iterations++
		res.Request = current

		switch {
		case res.Renders >= opts.MaxIter:
			return fail(res, errors.ErrCodeTooManyIterations, desired, opts)
		case units.InToPx(current.W, dpi) < opts.MinSizePx || units.InToPx(current.H, dpi) < opts.MinSizePx:
			return fail(res, errors.ErrCodeBelowMinimumSize, desired, opts)
		}
	}
}

func fail(res Result, reason errors.Code, desired units.Size, opts Options) (Result, error) {
	if opts.Strict {
		return res, &errors.ConvergenceError{
			Reason:     reason,
			Iterations: res.Iterations,
			Desired:    errors.Size{Width: desired.W, Height: desired.H},
			Last:       errors.Size{Width: res.Request.W, Height: res.Request.H},
		}
	}
	res.Converged = false
	res.Reason = reason
	return res, nil
}

func validate(desired units.Size, dpi float64, opts Options) error {
	if err := errors.ValidateDimension("width", desired.W); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", desired.H); err != nil {
		return err
	}
	if err := errors.ValidateDimension("dpi", dpi); err != nil {
		return err
	}
	if opts.MaxIter < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "max iterations must be at least 1, got %d", opts.MaxIter)
	}
	if opts.Eps <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "eps must be positive, got %v", opts.Eps)
	}
	return nil
}
