package negotiate

import (
	"fmt"

	"github.com/matzehuels/plotgrid/pkg/annotation"
	"github.com/matzehuels/plotgrid/pkg/backend"
	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/layout"
	"github.com/matzehuels/plotgrid/pkg/patch"
	"github.com/matzehuels/plotgrid/pkg/plot"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// DefaultSize returns the figure size in inches. Given dimensions are kept;
// a missing one follows the aspect ratio of the tree's minimum size, and
// with neither given the minimum size itself is used.
func (n *Negotiator) DefaultSize(root *patch.Node, width, height *float64) (units.Size, error) {
	if width != nil && height != nil {
		s := units.Size{W: *width, H: *height}
		return s, validSize(s)
	}
	minPt, err := n.MinSize(root)
	if err != nil {
		return units.Size{}, err
	}
	m := minPt.ToIn()
	var s units.Size
	switch {
	case width != nil:
		s = units.Size{W: *width, H: *width * m.H / m.W}
	case height != nil:
		s = units.Size{W: *height * m.W / m.H, H: *height}
	default:
		s = m
	}
	return s, validSize(s)
}

func validSize(s units.Size) error {
	if err := errors.ValidateDimension("width", s.W); err != nil {
		return err
	}
	return errors.ValidateDimension("height", s.H)
}

// MinSize returns the smallest canvas, in points, that gives every leaf its
// default size and every decoration room for its text.
func (n *Negotiator) MinSize(root *patch.Node) (units.Size, error) {
	if root == nil {
		return units.Size{}, errors.New(errors.ErrCodeUnsupportedChild, "nil figure")
	}
	return n.nodeMin(root, root.Annotation())
}

func (n *Negotiator) leafMin(l plot.Leaf) units.Size {
	base := units.Size{W: n.cfg.Base.Width(), H: n.cfg.Base.Height}
	if t, ok := l.(plot.Text); ok {
		base = base.Max(backend.NewText(n.measurer).MinSize(t))
	}
	return base.ToPt()
}

func (n *Negotiator) nodeMin(node *patch.Node, ann annotation.Annotation) (units.Size, error) {
	spec, err := node.Design()
	if err != nil {
		return units.Size{}, err
	}
	rels, err := layout.Relative(spec)
	if err != nil {
		return units.Size{}, err
	}
	pos, err := tagPositions(ann, spec)
	if err != nil {
		return units.Size{}, err
	}

	var inner units.Size
	for i := range node.Len() {
		c := node.Child(i)
		var cm units.Size
		if c.IsLeaf() {
			cm = n.leafMin(c.Leaf())
		} else {
			cm, err = n.nodeMin(c.Node(), childAnnotation(ann, pos[i], c.Node()))
			if err != nil {
				return units.Size{}, fmt.Errorf("child %d: %w", i, err)
			}
		}
		cm = withMargins(cm, ann.TagMargins(pos[i], c.IsLeaf(), n.measurer))

		// The child gets a fixed fraction of the inner box, so the box
		// must be large enough for every child's share.
		inner = inner.Max(units.Size{W: cm.W / rels[i].Width(), H: cm.H / rels[i].Height()})
	}
	return withMargins(inner, ann.Margins(n.measurer)), nil
}
