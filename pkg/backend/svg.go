package backend

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/units"
)

var (
	svgTagRe  = regexp.MustCompile(`<svg\b[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="\s*([-0-9.eE]+)[\s,]+([-0-9.eE]+)[\s,]+([-0-9.eE]+)[\s,]+([-0-9.eE]+)\s*"`)
	widthRe   = regexp.MustCompile(`\swidth="([0-9.eE+-]+)\s*(pt|px|in|cm|mm)?"`)
	heightRe  = regexp.MustCompile(`\sheight="([0-9.eE+-]+)\s*(pt|px|in|cm|mm)?"`)
)

// ViewBox is an SVG user-space rectangle.
type ViewBox struct {
	X, Y, W, H float64
}

func (v ViewBox) String() string {
	return fmt.Sprintf("%g %g %g %g", v.X, v.Y, v.W, v.H)
}

// Document is a parsed standalone SVG: its root tag, the markup inside it,
// and the declared geometry.
type Document struct {
	ViewBox ViewBox
	// Width and Height are the declared root size in inches; zero when the
	// root does not declare it.
	Width  float64
	Height float64
	Body   []byte
}

// ParseDocument splits an SVG document into its root geometry and body.
// The XML prolog, doctype and comments before the root are dropped. A
// missing viewBox is derived from the declared size.
func ParseDocument(svg []byte) (Document, error) {
	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "no <svg> root element")
	}
	root := svg[loc[0]:loc[1]]
	end := bytes.LastIndex(svg, []byte("</svg>"))
	var body []byte
	switch {
	case bytes.HasSuffix(root, []byte("/>")):
		body = nil
	case end < loc[1]:
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unterminated <svg> element")
	default:
		body = svg[loc[1]:end]
	}

	doc := Document{Body: body}
	doc.Width, _ = attrLength(widthRe, root)
	doc.Height, _ = attrLength(heightRe, root)

	if m := viewBoxRe.FindSubmatch(root); m != nil {
		var vals [4]float64
		for i := range vals {
			v, err := strconv.ParseFloat(string(m[i+1]), 64)
			if err != nil {
				return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "bad viewBox")
			}
			vals[i] = v
		}
		doc.ViewBox = ViewBox{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}
	} else if doc.Width > 0 && doc.Height > 0 {
		// User units without a viewBox are CSS pixels.
		doc.ViewBox = ViewBox{W: doc.Width * 96, H: doc.Height * 96}
	}

	if doc.ViewBox.W <= 0 || doc.ViewBox.H <= 0 {
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "svg has neither a viewBox nor a size")
	}
	return doc, nil
}

// attrLength reads a root width or height attribute in inches.
func attrLength(re *regexp.Regexp, root []byte) (float64, bool) {
	m := re.FindSubmatch(root)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	switch string(m[2]) {
	case "pt":
		return units.PtToIn(v), true
	case "in":
		return v, true
	case "cm":
		return v / 2.54, true
	case "mm":
		return v / 25.4, true
	default:
		return v / 96, true
	}
}

// Standalone wraps body markup into a root element sized in points.
func Standalone(vb ViewBox, width, height float64, body []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%.2fpt" height="%.2fpt" viewBox="%s" preserveAspectRatio="none">`,
		units.InToPt(width), units.InToPt(height), vb)
	buf.Write(body)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Nest returns the fragment as a nested <svg> element placed at x, y with
// size w by h, all in points of the enclosing document.
func Nest(f Fragment, x, y, w, h float64) ([]byte, error) {
	doc, err := ParseDocument(f.SVG)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg x="%.3f" y="%.3f" width="%.3f" height="%.3f" viewBox="%s" preserveAspectRatio="none" overflow="hidden">`,
		x, y, w, h, doc.ViewBox)
	buf.Write(doc.Body)
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}
