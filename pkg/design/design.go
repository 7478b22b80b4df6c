package design

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

// Spec is an immutable grid arrangement. Use [FromMatrix], [FromInts],
// [Parse] or [Grid] to construct one.
type Spec struct {
	cells [][]Cell // nil when deferred

	// deferred form
	deferred bool
	ncol     int
	nrow     int
	byCol    bool

	relWidths  []float64
	relHeights []float64
	numItems   int
}

// Option configures optional properties of a Spec.
type Option func(*options)

type options struct {
	relWidths  []float64
	relHeights []float64
	byCol      bool
}

// WithRelWidths sets relative column widths.
func WithRelWidths(ws ...float64) Option {
	return func(o *options) { o.relWidths = slices.Clone(ws) }
}

// WithRelHeights sets relative row heights.
func WithRelHeights(hs ...float64) Option {
	return func(o *options) { o.relHeights = slices.Clone(hs) }
}

// ByColumn fills deferred grids column by column instead of row by row.
func ByColumn() Option {
	return func(o *options) { o.byCol = true }
}

func buildOptions(opts []Option) (options, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := errors.ValidateWeights("rel_widths", o.relWidths); err != nil {
		return o, err
	}
	if err := errors.ValidateWeights("rel_heights", o.relHeights); err != nil {
		return o, err
	}
	return o, nil
}

// FromMatrix builds a resolved spec from rows of cells.
func FromMatrix(rows [][]Cell, opts ...Option) (Spec, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return Spec{}, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Spec{}, errors.New(errors.ErrCodeDesignMatrix, "design matrix is empty")
	}
	ncol := len(rows[0])
	cells := make([][]Cell, len(rows))
	for r, row := range rows {
		if len(row) != ncol {
			return Spec{}, errors.New(errors.ErrCodeDesignMatrix,
				"design row %d has %d cells, want %d", r, len(row), ncol)
		}
		cells[r] = slices.Clone(row)
	}

	n, err := countItems(cells)
	if err != nil {
		return Spec{}, err
	}
	s := Spec{
		cells:      cells,
		ncol:       ncol,
		nrow:       len(cells),
		relWidths:  o.relWidths,
		relHeights: o.relHeights,
		numItems:   n,
	}
	if err := s.checkWeights(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// FromRow builds a single-row resolved spec.
func FromRow(cells []Cell, opts ...Option) (Spec, error) {
	return FromMatrix([][]Cell{cells}, opts...)
}

// FromInts builds a resolved spec from an integer matrix. Negative values
// are rejected; use [FromOptional] or [Parse] to express gaps.
func FromInts(rows [][]int, opts ...Option) (Spec, error) {
	cells := make([][]Cell, len(rows))
	for r, row := range rows {
		cells[r] = make([]Cell, len(row))
		for c, v := range row {
			if v < 0 {
				return Spec{}, errors.New(errors.ErrCodeDesignMatrix,
					"negative index %d at row %d, column %d", v, r, c)
			}
			cells[r][c] = Index(v)
		}
	}
	return FromMatrix(cells, opts...)
}

// FromOptional builds a resolved spec where nil entries are gaps.
func FromOptional(rows [][]*int, opts ...Option) (Spec, error) {
	cells := make([][]Cell, len(rows))
	for r, row := range rows {
		cells[r] = make([]Cell, len(row))
		for c, v := range row {
			if v == nil {
				continue
			}
			if *v < 0 {
				return Spec{}, errors.New(errors.ErrCodeDesignMatrix,
					"negative index %d at row %d, column %d", *v, r, c)
			}
			cells[r][c] = Index(*v)
		}
	}
	return FromMatrix(cells, opts...)
}

// Grid builds a deferred spec with the given column and row counts.
// Zero means "derive from the child count"; weights imply a count when
// the corresponding argument is zero.
func Grid(ncol, nrow int, opts ...Option) (Spec, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return Spec{}, err
	}
	if ncol < 0 || nrow < 0 {
		return Spec{}, errors.New(errors.ErrCodeInvalidInput, "ncol and nrow cannot be negative")
	}
	if ncol == 0 {
		ncol = len(o.relWidths)
	}
	if nrow == 0 {
		nrow = len(o.relHeights)
	}
	s := Spec{
		deferred:   true,
		ncol:       ncol,
		nrow:       nrow,
		byCol:      o.byCol,
		relWidths:  o.relWidths,
		relHeights: o.relHeights,
	}
	if err := s.checkWeights(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// countItems enforces that non-gap indices form 0..n-1 and returns n.
func countItems(cells [][]Cell) (int, error) {
	seen := map[int]bool{}
	for r, row := range cells {
		for c, cell := range row {
			i, ok := cell.Get()
			if !ok {
				continue
			}
			if i < 0 {
				return 0, errors.New(errors.ErrCodeDesignMatrix,
					"negative index %d at row %d, column %d", i, r, c)
			}
			seen[i] = true
		}
	}
	if len(seen) == 0 {
		return 0, errors.New(errors.ErrCodeDesignMatrix, "design matrix has no items")
	}
	for i := range len(seen) {
		if !seen[i] {
			idx := slices.Sorted(maps.Keys(seen))
			return 0, errors.New(errors.ErrCodeDesignMatrix,
				"design indices %v are not contiguous from 0: missing %d", idx, i)
		}
	}
	return len(seen), nil
}

func (s Spec) checkWeights() error {
	if s.relWidths != nil && s.ncol != 0 && len(s.relWidths) != s.ncol {
		return errors.New(errors.ErrCodeLayoutMismatch,
			"rel_widths has %d entries for %d columns", len(s.relWidths), s.ncol)
	}
	if s.relHeights != nil && s.nrow != 0 && len(s.relHeights) != s.nrow {
		return errors.New(errors.ErrCodeLayoutMismatch,
			"rel_heights has %d entries for %d rows", len(s.relHeights), s.nrow)
	}
	return nil
}

// Deferred reports whether the spec still waits for a child count.
func (s Spec) Deferred() bool { return s.deferred }

// IsZero reports whether s is the zero Spec.
func (s Spec) IsZero() bool { return s.cells == nil && !s.deferred }

// NumItems returns the number of distinct items, or 0 when deferred.
func (s Spec) NumItems() int { return s.numItems }

// NCol returns the column count; 0 if still unknown.
func (s Spec) NCol() int { return s.ncol }

// NRow returns the row count; 0 if still unknown.
func (s Spec) NRow() int { return s.nrow }

// ByColumn reports the fill direction of a deferred spec.
func (s Spec) ByColumn() bool { return s.byCol }

// Cell returns the cell at row r, column c of a resolved spec.
func (s Spec) Cell(r, c int) Cell { return s.cells[r][c] }

// Matrix returns a copy of the cell matrix; nil when deferred.
func (s Spec) Matrix() [][]Cell {
	if s.cells == nil {
		return nil
	}
	out := make([][]Cell, len(s.cells))
	for i, row := range s.cells {
		out[i] = slices.Clone(row)
	}
	return out
}

// RelWidths returns the column weights, uniform when unset.
func (s Spec) RelWidths() []float64 { return weightsOrOnes(s.relWidths, s.ncol) }

// RelHeights returns the row weights, uniform when unset.
func (s Spec) RelHeights() []float64 { return weightsOrOnes(s.relHeights, s.nrow) }

func weightsOrOnes(ws []float64, n int) []float64 {
	if ws != nil {
		return slices.Clone(ws)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// Equal reports structural equality of cells, shape, fill mode and weights.
func (s Spec) Equal(o Spec) bool {
	if s.deferred != o.deferred || s.ncol != o.ncol || s.nrow != o.nrow || s.byCol != o.byCol {
		return false
	}
	if !slices.Equal(s.RelWidths(), o.RelWidths()) || !slices.Equal(s.RelHeights(), o.RelHeights()) {
		return false
	}
	for r := range s.cells {
		if !slices.EqualFunc(s.cells[r], o.cells[r], Cell.Equal) {
			return false
		}
	}
	return true
}

// String returns the text-form rendering for resolved specs with at most
// 26 items, and a short description otherwise.
func (s Spec) String() string {
	if s.deferred {
		dir := "byrow"
		if s.byCol {
			dir = "bycol"
		}
		return fmt.Sprintf("grid(ncol=%d, nrow=%d, %s)", s.ncol, s.nrow, dir)
	}
	if txt, err := s.Text(); err == nil {
		return txt
	}
	var b strings.Builder
	for _, row := range s.cells {
		for c, cell := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cell.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
