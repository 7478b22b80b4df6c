// Package units converts between the length units used by figures.
//
// Sizes handed to rendering backends are in inches; layout works in points
// (1/72 inch), and pixel checks use a dots-per-inch resolution.
package units

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

// PointsPerInch is the number of typographic points in an inch.
const PointsPerInch = 72.0

const (
	cmPerInch = 2.54
	mmPerInch = 25.4
)

// InToPt converts inches to points.
func InToPt(in float64) float64 { return in * PointsPerInch }

// PtToIn converts points to inches.
func PtToIn(pt float64) float64 { return pt / PointsPerInch }

// InToPx converts inches to pixels at the given resolution.
func InToPx(in, dpi float64) float64 { return in * dpi }

// Size is a width and height pair. The unit depends on context and is
// stated at each use.
type Size struct {
	W float64
	H float64
}

// Scale multiplies both extents by f.
func (s Size) Scale(f float64) Size { return Size{W: s.W * f, H: s.H * f} }

// Mul multiplies component-wise.
func (s Size) Mul(o Size) Size { return Size{W: s.W * o.W, H: s.H * o.H} }

// Div divides component-wise.
func (s Size) Div(o Size) Size { return Size{W: s.W / o.W, H: s.H / o.H} }

// ToPt converts a size in inches to points.
func (s Size) ToPt() Size { return s.Scale(PointsPerInch) }

// ToIn converts a size in points to inches.
func (s Size) ToIn() Size { return Size{W: s.W / PointsPerInch, H: s.H / PointsPerInch} }

// Max returns the component-wise maximum.
func (s Size) Max(o Size) Size { return Size{W: max(s.W, o.W), H: max(s.H, o.H)} }

func (s Size) String() string {
	return fmt.Sprintf("%.4gx%.4g", s.W, s.H)
}

// ParseLength parses a length such as "6in", "12cm", "80mm", "400pt" or a
// bare number (inches) and returns inches.
func ParseLength(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	factor := 1.0
	for _, u := range []struct {
		suffix string
		perIn  float64
	}{
		{"in", 1},
		{"cm", cmPerInch},
		{"mm", mmPerInch},
		{"pt", PointsPerInch},
	} {
		if strings.HasSuffix(s, u.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			factor = 1 / u.perIn
			break
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid length %q", s)
	}
	in := v * factor
	if err := errors.ValidateDimension("length", in); err != nil {
		return 0, err
	}
	return in, nil
}
