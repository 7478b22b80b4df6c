// Package compose assembles a sized figure into one SVG document and
// serializes it to the export formats.
//
// Every leaf fragment becomes a nested <svg> element stretched to its box,
// and every title, caption and tag becomes a <text> element centered in its
// placement. Raster and print formats are produced from the SVG with
// rsvg-convert; JPEG output is re-encoded from PNG.
package compose

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/plotgrid/pkg/annotation"
	"github.com/matzehuels/plotgrid/pkg/backend"
	"github.com/matzehuels/plotgrid/pkg/fonts"
	"github.com/matzehuels/plotgrid/pkg/negotiate"
)

// Document is a composed figure.
type Document struct {
	// SVG is a standalone SVG document.
	SVG []byte
	// Width and Height are in points.
	Width  float64
	Height float64
}

// Options controls composition.
type Options struct {
	// Background is a CSS color painted behind the figure; empty for none.
	Background string
	// EmbedFont embeds the Go Regular font so text renders the same size it
	// was measured at.
	EmbedFont bool
}

// DefaultOptions returns a white background with the font embedded.
func DefaultOptions() Options {
	return Options{Background: "white", EmbedFont: true}
}

// Compose places every leaf fragment and text of plan on one canvas.
func Compose(plan *negotiate.Plan, opts Options) (Document, error) {
	w, h := plan.Size.W, plan.Size.H

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%.2fpt" height="%.2fpt" viewBox="0 0 %.2f %.2f">`+"\n",
		w, h, w, h)
	if opts.EmbedFont {
		fmt.Fprintf(&buf, "<defs><style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style></defs>\n",
			fonts.FontFamily, fonts.RegularBase64())
	}
	if opts.Background != "" {
		fmt.Fprintf(&buf, `<rect x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n", w, h, escape(opts.Background))
	}

	for _, l := range plan.Leaves {
		b := l.Box
		nested, err := backend.Nest(l.Fragment, b.X(), b.Y(), b.Width(), b.Height())
		if err != nil {
			return Document{}, fmt.Errorf("leaf at %v: %w", l.Path, err)
		}
		buf.Write(nested)
	}
	for _, t := range plan.Texts {
		writeText(&buf, t)
	}
	buf.WriteString("</svg>\n")

	return Document{SVG: buf.Bytes(), Width: w, Height: h}, nil
}

// writeText draws a placement centered in its box. Left side text reads
// bottom to top and right side text top to bottom.
func writeText(buf *bytes.Buffer, p annotation.Placement) {
	cx, cy := p.X+p.W/2, p.Y+p.H/2
	transform := ""
	if p.Rotated() {
		angle := -90
		if p.Side == annotation.Right {
			angle = 90
		}
		transform = fmt.Sprintf(` transform="rotate(%d %.2f %.2f)"`, angle, cx, cy)
	}
	fmt.Fprintf(buf, `<text class="%s" x="%.2f" y="%.2f" font-family="%s" font-size="%g" text-anchor="middle" dominant-baseline="central"%s>`,
		p.Kind, cx, cy, fonts.FallbackFontFamily, p.Size, transform)
	buf.WriteString(escape(p.Label))
	buf.WriteString("</text>\n")
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
