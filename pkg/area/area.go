// Package area models rectangles in the three coordinate systems used by
// figure layout.
//
// A [Design] area counts grid cells, a [Relative] area is a fraction of the
// whole canvas, and an [Absolute] area is measured in output points.
// Conversion only runs forward: Design to Relative to Absolute.
package area

import (
	"fmt"
	"math"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

// Kind identifies the coordinate system of an Area.
type Kind int

const (
	// Design areas are integer cell coordinates and extents.
	Design Kind = iota
	// Relative areas are fractions of the canvas in [0, 1].
	Relative
	// Absolute areas are in output points.
	Absolute
)

func (k Kind) String() string {
	switch k {
	case Design:
		return "design"
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// tolerance absorbs float error in cumulative weight sums.
const tolerance = 1e-9

// Area is an immutable rectangle anchored at its top-left corner.
type Area struct {
	kind Kind
	x, y float64
	w, h float64
}

// NewDesign returns a Design area covering w×h cells starting at (x, y).
func NewDesign(x, y, w, h int) (Area, error) {
	if x < 0 || y < 0 {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "design origin (%d, %d) is negative", x, y)
	}
	if w < 1 || h < 1 {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "design extent %dx%d must be at least 1x1", w, h)
	}
	return Area{kind: Design, x: float64(x), y: float64(y), w: float64(w), h: float64(h)}, nil
}

// NewRelative returns a Relative area; every coordinate lies in [0, 1].
func NewRelative(x, y, w, h float64) (Area, error) {
	if !finite(x, y, w, h) {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "relative area has non-finite coordinates")
	}
	if x < -tolerance || y < -tolerance {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "relative origin (%g, %g) is negative", x, y)
	}
	if w <= 0 || h <= 0 {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "relative extent %gx%g must be positive", w, h)
	}
	if x+w > 1+tolerance || y+h > 1+tolerance {
		return Area{}, errors.New(errors.ErrCodeInvalidArea,
			"relative area (%g, %g, %g, %g) exceeds the unit square", x, y, w, h)
	}
	return Area{kind: Relative, x: clamp01(x), y: clamp01(y), w: min(w, 1), h: min(h, 1)}, nil
}

// NewAbsolute returns an Absolute area in points.
func NewAbsolute(x, y, w, h float64) (Area, error) {
	if !finite(x, y, w, h) {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "absolute area has non-finite coordinates")
	}
	if x < 0 || y < 0 {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "absolute origin (%g, %g) is negative", x, y)
	}
	if w <= 0 || h <= 0 {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "absolute extent %gx%g must be positive", w, h)
	}
	return Area{kind: Absolute, x: x, y: y, w: w, h: h}, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 { return min(max(v, 0), 1) }

// Kind returns the coordinate system.
func (a Area) Kind() Kind { return a.kind }

// X returns the left edge.
func (a Area) X() float64 { return a.x }

// Y returns the top edge.
func (a Area) Y() float64 { return a.y }

// Width returns the horizontal extent.
func (a Area) Width() float64 { return a.w }

// Height returns the vertical extent.
func (a Area) Height() float64 { return a.h }

// Right returns x + width.
func (a Area) Right() float64 { return a.x + a.w }

// Bottom returns y + height.
func (a Area) Bottom() float64 { return a.y + a.h }

// Cells returns the integer cell bounds of a Design area.
func (a Area) Cells() (x, y, w, h int) {
	return int(a.x), int(a.y), int(a.w), int(a.h)
}

func (a Area) String() string {
	return fmt.Sprintf("%s(x=%g, y=%g, w=%g, h=%g)", a.kind, a.x, a.y, a.w, a.h)
}

// Equal reports whether two areas share kind and coordinates within eps.
func (a Area) Equal(o Area, eps float64) bool {
	return a.kind == o.kind &&
		math.Abs(a.x-o.x) <= eps && math.Abs(a.y-o.y) <= eps &&
		math.Abs(a.w-o.w) <= eps && math.Abs(a.h-o.h) <= eps
}
