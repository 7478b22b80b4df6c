package backend

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/plot"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// Graphviz renders DOT leaves. The requested size is forced onto the graph
// with size="w,h!" and ratio=fill; Graphviz then adds its page padding, so
// the result is slightly larger than requested.
type Graphviz struct{}

// Render lays out and draws the graph.
func (Graphviz) Render(ctx context.Context, leaf plot.Leaf, width, height, dpi float64) (Fragment, error) {
	d, ok := leaf.(plot.DOT)
	if !ok {
		return Fragment{}, errors.New(errors.ErrCodeUnsupportedChild, "graphviz cannot render %s leaves", leaf.Kind())
	}
	if err := checkRequest(ctx, width, height); err != nil {
		return Fragment{}, err
	}

	src, err := sizeDOT(d.Source, width, height)
	if err != nil {
		return Fragment{}, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return Fragment{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(src)
	if err != nil {
		return Fragment{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return Fragment{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "render DOT")
	}

	doc, err := ParseDocument(buf.Bytes())
	if err != nil {
		return Fragment{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "graphviz output")
	}
	w, h := doc.Width, doc.Height
	if w == 0 || h == 0 {
		// Graphviz user units are points.
		w, h = units.PtToIn(doc.ViewBox.W), units.PtToIn(doc.ViewBox.H)
	}
	return Fragment{SVG: Standalone(doc.ViewBox, w, h, doc.Body), Width: w, Height: h}, nil
}

// sizeDOT injects graph size attributes right after the opening brace.
// Attributes set later in the source still win, so a graph that fixes its
// own size renders at that size and the corrector reports it.
func sizeDOT(src string, width, height float64) ([]byte, error) {
	i := strings.IndexByte(src, '{')
	if i < 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "DOT source has no graph body")
	}
	var buf bytes.Buffer
	buf.WriteString(src[:i+1])
	fmt.Fprintf(&buf, "\n  graph [size=\"%.4f,%.4f!\", ratio=\"fill\"];\n", width, height)
	buf.WriteString(src[i+1:])
	return buf.Bytes(), nil
}
