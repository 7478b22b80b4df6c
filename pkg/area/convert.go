package area

import (
	"github.com/matzehuels/plotgrid/pkg/errors"
)

// ToRelative converts a Design area to a Relative one. Boundaries are sums
// of normalized weight slices, so unequal column widths and row heights are
// respected.
func (a Area) ToRelative(relWidths, relHeights []float64) (Area, error) {
	if a.kind != Design {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "ToRelative requires a design area, got %s", a.kind)
	}
	x, y, w, h := a.Cells()
	if x+w > len(relWidths) || y+h > len(relHeights) {
		return Area{}, errors.New(errors.ErrCodeLayoutMismatch,
			"%s does not fit %d columns and %d rows", a, len(relWidths), len(relHeights))
	}
	if err := errors.ValidateWeights("rel_widths", relWidths); err != nil {
		return Area{}, err
	}
	if err := errors.ValidateWeights("rel_heights", relHeights); err != nil {
		return Area{}, err
	}
	xs := Offsets(relWidths)
	ys := Offsets(relHeights)
	return NewRelative(xs[x], ys[y], xs[x+w]-xs[x], ys[y+h]-ys[y])
}

// ToAbsolute converts a Relative area to points on a width×height canvas.
func (a Area) ToAbsolute(width, height float64) (Area, error) {
	if a.kind != Relative {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "ToAbsolute requires a relative area, got %s", a.kind)
	}
	if err := errors.ValidateDimension("canvas width", width); err != nil {
		return Area{}, err
	}
	if err := errors.ValidateDimension("canvas height", height); err != nil {
		return Area{}, err
	}
	return NewAbsolute(a.x*width, a.y*height, a.w*width, a.h*height)
}

// DesignToAbsolute chains ToRelative and ToAbsolute.
func (a Area) DesignToAbsolute(relWidths, relHeights []float64, width, height float64) (Area, error) {
	rel, err := a.ToRelative(relWidths, relHeights)
	if err != nil {
		return Area{}, err
	}
	return rel.ToAbsolute(width, height)
}

// Offsets returns the normalized cumulative sums of weights, starting at 0
// and ending at exactly 1.
func Offsets(weights []float64) []float64 {
	var total float64
	for _, w := range weights {
		total += w
	}
	out := make([]float64, len(weights)+1)
	var acc float64
	for i, w := range weights {
		acc += w
		out[i+1] = acc / total
	}
	if len(weights) > 0 {
		out[len(weights)] = 1
	}
	return out
}

// Margins are distances in points reserved on each side of an area.
type Margins struct {
	Left, Right, Top, Bottom float64
}

// Horizontal returns Left + Right.
func (m Margins) Horizontal() float64 { return m.Left + m.Right }

// Vertical returns Top + Bottom.
func (m Margins) Vertical() float64 { return m.Top + m.Bottom }

// Add sums two margin sets side by side.
func (m Margins) Add(o Margins) Margins {
	return Margins{
		Left:   m.Left + o.Left,
		Right:  m.Right + o.Right,
		Top:    m.Top + o.Top,
		Bottom: m.Bottom + o.Bottom,
	}
}

// Inset shrinks an Absolute area by the margins. It fails when nothing
// usable remains.
func (a Area) Inset(m Margins) (Area, error) {
	if a.kind != Absolute {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "Inset requires an absolute area, got %s", a.kind)
	}
	w := a.w - m.Horizontal()
	h := a.h - m.Vertical()
	if w <= 0 || h <= 0 {
		return Area{}, errors.New(errors.ErrCodeInvalidArea,
			"margins %+v leave no room in %s", m, a)
	}
	return NewAbsolute(a.x+m.Left, a.y+m.Top, w, h)
}

// Translate moves an Absolute area by (dx, dy).
func (a Area) Translate(dx, dy float64) (Area, error) {
	if a.kind != Absolute {
		return Area{}, errors.New(errors.ErrCodeInvalidArea, "Translate requires an absolute area, got %s", a.kind)
	}
	return NewAbsolute(a.x+dx, a.y+dy, a.w, a.h)
}
