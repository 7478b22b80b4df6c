package negotiate

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/plotgrid/pkg/annotation"
	"github.com/matzehuels/plotgrid/pkg/area"
	"github.com/matzehuels/plotgrid/pkg/correct"
	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/layout"
	"github.com/matzehuels/plotgrid/pkg/observability"
	"github.com/matzehuels/plotgrid/pkg/patch"
	"github.com/matzehuels/plotgrid/pkg/plot"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// job is one leaf to correct in a pass.
type job struct {
	leaf plot.Leaf
	path []int
	box  area.Area
}

// pass is the outcome of one allocation pass.
type pass struct {
	leaves   []PlacedLeaf
	texts    []annotation.Placement
	renders  int
	failures []failure
}

type failure struct {
	leaf    plot.Leaf
	path    []int
	desired units.Size
	result  correct.Result
}

// Allocate sizes the tree on a width×height canvas (inches) and renders
// every leaf. If some leaves cannot be rendered at their share, the canvas
// is scaled by a single factor (see rescaleFactor) and the whole tree is allocated again, up to
// NumAttempts passes in total.
func (n *Negotiator) Allocate(ctx context.Context, root *patch.Node, width, height, dpi float64) (*Plan, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeUnsupportedChild, "nil figure")
	}
	if err := n.cfg.Validate(); err != nil {
		return nil, err
	}
	size := units.Size{W: width, H: height}
	if err := validSize(size); err != nil {
		return nil, err
	}
	if err := errors.ValidateDimension("dpi", dpi); err != nil {
		return nil, err
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Sizing()
	renders := 0
	for attempt := 1; ; attempt++ {
		n.logger.Debug("allocating figure", "attempt", attempt, "width", size.W, "height", size.H)
		hooks.OnAttemptStart(ctx, attempt, size.W, size.H)
		start := time.Now()
		p, err := n.allocateOnce(ctx, root, size.ToPt(), dpi)
		hooks.OnAttemptComplete(ctx, attempt, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		renders += p.renders

		if len(p.failures) == 0 {
			return &Plan{
				Size:     size.ToPt(),
				Attempts: attempt,
				Renders:  renders,
				Leaves:   p.leaves,
				Texts:    p.texts,
			}, nil
		}

		first := p.failures[0]
		cause := &errors.ConvergenceError{
			Reason:     first.result.Reason,
			Iterations: first.result.Iterations,
			Desired:    toErrSize(first.desired),
			Last:       toErrSize(first.result.Request),
		}
		n.logger.Debug("leaves did not fit", "attempt", attempt, "failed", len(p.failures),
			"leaf", plot.Describe(first.leaf), "reason", first.result.Reason)

		if attempt >= n.cfg.NumAttempts {
			return nil, &errors.AllocationError{Attempts: attempt, Last: toErrSize(size), Cause: cause}
		}

		factor, err := rescaleFactor(p.failures)
		if err != nil {
			return nil, &errors.AllocationError{Attempts: attempt, Last: toErrSize(size), Cause: err}
		}
		hooks.OnRescale(ctx, attempt, factor)
		n.logger.Info("rescaling figure", "attempt", attempt, "factor", factor,
			"width", size.W*factor, "height", size.H*factor)
		size = size.Scale(factor)
	}
}

func toErrSize(s units.Size) errors.Size {
	return errors.Size{Width: s.W, Height: s.H}
}

// rescaleFactor returns the single factor that would have given the worst
// failing leaf at least the size its backend reported, in both directions.
func rescaleFactor(fs []failure) (float64, error) {
	if len(fs) == 0 {
		return 1, nil
	}
	minW, minH := math.Inf(1), math.Inf(1)
	for _, f := range fs {
		minW = min(minW, f.result.Ratio.W)
		minH = min(minH, f.result.Ratio.H)
	}
	factor := max(1/minW, 1/minH)
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return 0, errors.New(errors.ErrCodeInternal, "invalid rescale factor %v", factor)
	}
	return factor, nil
}

// allocateOnce lays out the tree on a canvas in points and corrects every
// leaf. Leaf failures are collected, not returned as errors.
func (n *Negotiator) allocateOnce(ctx context.Context, root *patch.Node, canvas units.Size, dpi float64) (pass, error) {
	box, err := area.NewAbsolute(0, 0, canvas.W, canvas.H)
	if err != nil {
		return pass{}, err
	}

	var p pass
	var jobs []job
	if err := n.place(root, root.Annotation(), nil, box, &jobs, &p.texts); err != nil {
		return pass{}, err
	}

	results := make([]correct.Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.workers)
	opts := n.correctOptions()
	for i, j := range jobs {
		g.Go(func() error {
			req := units.Size{W: j.box.Width(), H: j.box.Height()}.ToIn()
			res, err := correct.Correct(gctx, n.renderer, j.leaf, req, dpi, opts)
			if err != nil {
				return fmt.Errorf("leaf %s at %v: %w", plot.Describe(j.leaf), j.path, err)
			}
			observability.Sizing().OnLeafCorrected(gctx, j.leaf.Kind(), res.Iterations, res.Converged)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return pass{}, err
	}

	for i, j := range jobs {
		res := results[i]
		p.renders += res.Renders
		if !res.Converged {
			req := units.Size{W: j.box.Width(), H: j.box.Height()}.ToIn()
			p.failures = append(p.failures, failure{leaf: j.leaf, path: j.path, desired: req, result: res})
			continue
		}
		p.leaves = append(p.leaves, PlacedLeaf{
			Leaf:       j.leaf,
			Path:       j.path,
			Box:        j.box,
			Request:    res.Request,
			Fragment:   res.Fragment,
			Iterations: res.Iterations,
		})
	}
	return p, nil
}

// place lays out node inside box, appending leaf jobs and text placements
// in depth-first child order.
func (n *Negotiator) place(node *patch.Node, ann annotation.Annotation, path []int, box area.Area, jobs *[]job, texts *[]annotation.Placement) error {
	*texts = append(*texts, ann.Placements(box, n.measurer)...)

	inner, err := box.Inset(ann.Margins(n.measurer).Inset)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArea, err, "decorations at %s do not fit in %.1fx%.1fpt",
			pathLabel(path), box.Width(), box.Height())
	}

	spec, err := node.Design()
	if err != nil {
		return err
	}
	areas, err := layout.Locate(spec, inner.Width(), inner.Height())
	if err != nil {
		return err
	}
	pos, err := tagPositions(ann, spec)
	if err != nil {
		return err
	}

	for i := range node.Len() {
		c := node.Child(i)
		childPath := append(slices.Clone(path), i)
		cbox, err := areas[i].Translate(inner.X(), inner.Y())
		if err != nil {
			return err
		}

		tag, rest, tagged, err := ann.TagPlacement(pos[i], c.IsLeaf(), cbox, n.measurer)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidArea, err, "tag at %s does not fit", pathLabel(childPath))
		}
		if tagged {
			*texts = append(*texts, tag)
			cbox = rest
		}

		if c.IsLeaf() {
			*jobs = append(*jobs, job{leaf: c.Leaf(), path: childPath, box: cbox})
			continue
		}
		if err := n.place(c.Node(), childAnnotation(ann, pos[i], c.Node()), childPath, cbox, jobs, texts); err != nil {
			return err
		}
	}
	return nil
}

func pathLabel(path []int) string {
	if len(path) == 0 {
		return "root"
	}
	return fmt.Sprint(path)
}
