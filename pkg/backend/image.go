package backend

import (
	"context"

	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/plot"
)

// Image renders pre-rendered SVG leaves by stretching them to the request.
// It always hits the requested size exactly.
type Image struct{}

// Render rewrites the root element to the requested size.
func (Image) Render(ctx context.Context, leaf plot.Leaf, width, height, dpi float64) (Fragment, error) {
	img, ok := leaf.(plot.Image)
	if !ok {
		return Fragment{}, errors.New(errors.ErrCodeUnsupportedChild, "image renderer cannot render %s leaves", leaf.Kind())
	}
	if err := checkRequest(ctx, width, height); err != nil {
		return Fragment{}, err
	}
	doc, err := ParseDocument(img.SVG)
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{SVG: Standalone(doc.ViewBox, width, height, doc.Body), Width: width, Height: height}, nil
}
