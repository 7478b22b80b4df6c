package backend

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/fonts"
	"github.com/matzehuels/plotgrid/pkg/plot"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// DefaultTextPad is the padding around a text panel in points.
const DefaultTextPad = 6.0

// Text renders text panels. A panel fills any requested size that can hold
// its label and grows to the label extent otherwise.
type Text struct {
	measurer fonts.Measurer
	pad      float64
}

// NewText creates a text renderer. A nil measurer uses [fonts.Default].
func NewText(m fonts.Measurer) *Text {
	if m == nil {
		m = fonts.Default
	}
	return &Text{measurer: m, pad: DefaultTextPad}
}

// MinSize returns the smallest size in inches the panel renders at.
func (t *Text) MinSize(leaf plot.Text) units.Size {
	ext := t.measurer.Measure(leaf.Label, leaf.Size())
	return units.Size{W: ext.Width + 2*t.pad, H: ext.Height + 2*t.pad}.ToIn()
}

// Render draws the label centered in the panel.
func (t *Text) Render(ctx context.Context, leaf plot.Leaf, width, height, dpi float64) (Fragment, error) {
	tl, ok := leaf.(plot.Text)
	if !ok {
		return Fragment{}, errors.New(errors.ErrCodeUnsupportedChild, "text renderer cannot render %s leaves", leaf.Kind())
	}
	if err := checkRequest(ctx, width, height); err != nil {
		return Fragment{}, err
	}

	size := units.Size{W: width, H: height}.Max(t.MinSize(tl))
	pt := size.ToPt()
	vb := ViewBox{W: pt.W, H: pt.H}

	lines := strings.Split(tl.Label, "\n")
	lineH := tl.Size() * 1.2
	top := pt.H/2 - lineH*float64(len(lines))/2

	var body bytes.Buffer
	fmt.Fprintf(&body, `<text font-family="%s" font-size="%g" text-anchor="middle">`, fonts.FallbackFontFamily, tl.Size())
	for i, line := range lines {
		// Baseline sits at roughly 0.8 of the line box.
		y := top + lineH*float64(i) + lineH*0.8
		fmt.Fprintf(&body, `<tspan x="%.2f" y="%.2f">`, pt.W/2, y)
		if err := xml.EscapeText(&body, []byte(line)); err != nil {
			return Fragment{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "escape label")
		}
		body.WriteString("</tspan>")
	}
	body.WriteString("</text>")

	return Fragment{SVG: Standalone(vb, size.W, size.H, body.Bytes()), Width: size.W, Height: size.H}, nil
}
