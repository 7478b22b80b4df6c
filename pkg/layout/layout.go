// Package layout turns a resolved design into concrete item regions.
//
// [Locate] computes one [area.Area] per item in output points, and
// [Yokogaki] returns the canonical reading order of the items: top to
// bottom, then left to right within a row.
//
// Item footprints are the bounding box of the cells assigned to them. Boxes
// are not checked for overlap with other items, so an item may span gaps or
// even cells nominally owned by another item.
package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/plotgrid/pkg/area"
	"github.com/matzehuels/plotgrid/pkg/design"
	"github.com/matzehuels/plotgrid/pkg/errors"
)

// Footprints returns the Design-kind bounding box of every item, in index
// order.
func Footprints(spec design.Spec) ([]area.Area, error) {
	if spec.Deferred() || spec.IsZero() {
		return nil, errors.New(errors.ErrCodeDeferredLayout, "design must be resolved before layout")
	}

	type bounds struct{ minR, maxR, minC, maxC int }
	n := spec.NumItems()
	bs := make([]bounds, n)
	found := make([]bool, n)
	for r := range spec.NRow() {
		for c := range spec.NCol() {
			i, ok := spec.Cell(r, c).Get()
			if !ok {
				continue
			}
			if !found[i] {
				bs[i] = bounds{r, r, c, c}
				found[i] = true
				continue
			}
			b := &bs[i]
			b.minR, b.maxR = min(b.minR, r), max(b.maxR, r)
			b.minC, b.maxC = min(b.minC, c), max(b.maxC, c)
		}
	}

	out := make([]area.Area, n)
	for i, b := range bs {
		a, err := area.NewDesign(b.minC, b.minR, b.maxC-b.minC+1, b.maxR-b.minR+1)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "footprint of item %d", i)
		}
		out[i] = a
	}
	return out, nil
}

// Relative returns every item's region as a fraction of the canvas.
func Relative(spec design.Spec) ([]area.Area, error) {
	fps, err := Footprints(spec)
	if err != nil {
		return nil, err
	}
	ws, hs := spec.RelWidths(), spec.RelHeights()
	out := make([]area.Area, len(fps))
	for i, fp := range fps {
		if out[i], err = fp.ToRelative(ws, hs); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Locate returns every item's region in points on a width×height canvas,
// in index order.
func Locate(spec design.Spec, width, height float64) ([]area.Area, error) {
	rels, err := Relative(spec)
	if err != nil {
		return nil, err
	}
	out := make([]area.Area, len(rels))
	for i, r := range rels {
		if out[i], err = r.ToAbsolute(width, height); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Yokogaki returns item indices in reading order: grouped by top edge from
// the top down, and left to right within a group.
//
// Relative top and left edges are strictly increasing functions of the
// footprint's first row and column, so ordering by cell coordinates gives
// the same result as ordering by relative position while staying exact for
// any weights.
func Yokogaki(spec design.Spec) ([]int, error) {
	fps, err := Footprints(spec)
	if err != nil {
		return nil, err
	}
	order := make([]int, len(fps))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		xa, ya, _, _ := fps[a].Cells()
		xb, yb, _, _ := fps[b].Cells()
		if c := cmp.Compare(ya, yb); c != 0 {
			return c
		}
		return cmp.Compare(xa, xb)
	})
	return order, nil
}
