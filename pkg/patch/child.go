package patch

import (
	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/plot"
)

// Child is either a leaf or a nested node. The zero Child is invalid.
type Child struct {
	leaf plot.Leaf
	node *Node
}

// Leaf wraps a plot leaf.
func Leaf(l plot.Leaf) Child { return Child{leaf: l} }

// Sub wraps a nested node.
func Sub(n *Node) Child { return Child{node: n} }

// IsLeaf reports whether c holds a leaf.
func (c Child) IsLeaf() bool { return c.leaf != nil }

// Leaf returns the leaf, or nil for a node child.
func (c Child) Leaf() plot.Leaf { return c.leaf }

// Node returns the nested node, or nil for a leaf child.
func (c Child) Node() *Node { return c.node }

// Valid reports whether c holds exactly one of a leaf or a node.
func (c Child) Valid() bool { return (c.leaf != nil) != (c.node != nil) }

// ChildOf converts a leaf, node or Child into a Child.
func ChildOf(v any) (Child, error) {
	switch x := v.(type) {
	case Child:
		if !x.Valid() {
			return Child{}, errors.New(errors.ErrCodeUnsupportedChild, "empty child")
		}
		return x, nil
	case *Node:
		if x == nil {
			return Child{}, errors.New(errors.ErrCodeUnsupportedChild, "nil node")
		}
		return Sub(x), nil
	case plot.Leaf:
		if x == nil {
			return Child{}, errors.New(errors.ErrCodeUnsupportedChild, "nil leaf")
		}
		return Leaf(x), nil
	default:
		return Child{}, errors.New(errors.ErrCodeUnsupportedChild, "cannot arrange %T", v)
	}
}
