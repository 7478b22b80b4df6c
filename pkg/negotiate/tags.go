package negotiate

import (
	"github.com/matzehuels/plotgrid/pkg/annotation"
	"github.com/matzehuels/plotgrid/pkg/design"
	"github.com/matzehuels/plotgrid/pkg/layout"
	"github.com/matzehuels/plotgrid/pkg/patch"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// tagPositions maps each child index to its position in the tag sequence.
func tagPositions(ann annotation.Annotation, spec design.Spec) ([]int, error) {
	n := spec.NumItems()
	pos := make([]int, n)
	if ann.TagsOrder() != annotation.OrderYokogaki {
		for i := range pos {
			pos[i] = i
		}
		return pos, nil
	}
	order, err := layout.Yokogaki(spec)
	if err != nil {
		return nil, err
	}
	for rank, i := range order {
		pos[i] = rank
	}
	return pos, nil
}

// childAnnotation returns the decorations a nested node is sized and drawn
// with: its own, combined with the tag levels its parent hands down.
func childAnnotation(parent annotation.Annotation, pos int, child *patch.Node) annotation.Annotation {
	own := child.Annotation()
	if !parent.HasTags() || parent.Tagged(false) {
		return own
	}
	stepped, ok := parent.StepDown(pos)
	if !ok {
		return own
	}
	return annotation.InheritFrom(own, stepped)
}

// withMargins grows an inner size by decoration margins.
func withMargins(s units.Size, m annotation.Margins) units.Size {
	w := max(s.W, m.MinInnerWidth) + m.ExtraWidth
	return units.Size{
		W: max(w, m.MinFullWidth),
		H: max(s.H, m.MinInnerHeight) + m.ExtraHeight,
	}
}
