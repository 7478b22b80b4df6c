package design

import (
	"math"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

// Default returns the arrangement used when a node has no explicit design:
// fewer than four children stack in a single column, larger sets fill a
// near-square grid row by row.
func Default(n int) (Spec, error) {
	g, err := Grid(0, 0)
	if err != nil {
		return Spec{}, err
	}
	return g.Resolve(n)
}

// defaultShape returns (nrow, ncol) for n children with no constraints.
func defaultShape(n int) (int, int) {
	if n < 4 {
		return n, 1
	}
	nrow := int(math.Ceil(math.Sqrt(float64(n))))
	return nrow, ceilDiv(n, nrow)
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// Resolve materializes a deferred spec for n children. For a resolved spec
// it only checks that the item count matches n.
func (s Spec) Resolve(n int) (Spec, error) {
	if n < 1 {
		return Spec{}, errors.New(errors.ErrCodeChildCount, "cannot lay out %d children", n)
	}
	if !s.deferred {
		if s.numItems != n {
			return Spec{}, errors.New(errors.ErrCodeChildCount,
				"design has %d items but node has %d children", s.numItems, n)
		}
		return s, nil
	}

	nrow, ncol := s.nrow, s.ncol
	switch {
	case nrow == 0 && ncol == 0:
		nrow, ncol = defaultShape(n)
	case nrow == 0:
		nrow = ceilDiv(n, ncol)
	case ncol == 0:
		ncol = ceilDiv(n, nrow)
	}
	if nrow*ncol < n {
		return Spec{}, errors.New(errors.ErrCodeChildCount,
			"%dx%d grid cannot hold %d children", nrow, ncol, n)
	}

	cells := make([][]Cell, nrow)
	for r := range cells {
		cells[r] = make([]Cell, ncol)
		for c := range cells[r] {
			i := r*ncol + c
			if s.byCol {
				i = c*nrow + r
			}
			if i < n {
				cells[r][c] = Index(i)
			}
		}
	}

	opts := []Option{}
	if s.relWidths != nil {
		opts = append(opts, WithRelWidths(s.relWidths...))
	}
	if s.relHeights != nil {
		opts = append(opts, WithRelHeights(s.relHeights...))
	}
	return FromMatrix(cells, opts...)
}
