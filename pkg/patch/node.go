package patch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/plotgrid/pkg/annotation"
	"github.com/matzehuels/plotgrid/pkg/cache"
	"github.com/matzehuels/plotgrid/pkg/design"
	"github.com/matzehuels/plotgrid/pkg/errors"
)

// Node is an arrangement of children on a grid.
type Node struct {
	children   []Child
	design     design.Spec
	hasDesign  bool
	annotation annotation.Annotation
}

// New creates a node from children. Invalid children are rejected.
func New(children ...Child) (*Node, error) {
	for i, c := range children {
		if !c.Valid() {
			return nil, errors.New(errors.ErrCodeUnsupportedChild, "child %d is neither a leaf nor a node", i)
		}
	}
	return &Node{children: slices.Clone(children)}, nil
}

// Of creates a node from leaves, nodes or Child values.
func Of(items ...any) (*Node, error) {
	children := make([]Child, 0, len(items))
	for i, it := range items {
		c, err := ChildOf(it)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		children = append(children, c)
	}
	return &Node{children: children}, nil
}

// MustOf is like Of but panics on error. It is intended for literals in
// tests and examples.
func MustOf(items ...any) *Node {
	n, err := Of(items...)
	if err != nil {
		panic(err)
	}
	return n
}

func (n *Node) clone() *Node {
	c := *n
	c.children = slices.Clone(n.children)
	return &c
}

// Len returns the number of direct children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) Child { return n.children[i] }

// Children returns a copy of the child list.
func (n *Node) Children() []Child { return slices.Clone(n.children) }

// Layout returns the attached design, if any.
func (n *Node) Layout() (design.Spec, bool) { return n.design, n.hasDesign }

// Annotation returns the node's decorations.
func (n *Node) Annotation() annotation.Annotation { return n.annotation }

// WithLayout returns a copy of n arranged by spec.
func (n *Node) WithLayout(spec design.Spec) *Node {
	c := n.clone()
	c.design, c.hasDesign = spec, !spec.IsZero()
	return c
}

// WithAnnotation returns a copy of n with a merged into its decorations.
// Fields set in a replace existing ones.
func (n *Node) WithAnnotation(a annotation.Annotation) *Node {
	c := n.clone()
	c.annotation = annotation.Merge(n.annotation, a)
	return c
}

// WithChildren returns a copy of n with a new child list. The design is
// kept; Validate reports a mismatch.
func (n *Node) WithChildren(children ...Child) (*Node, error) {
	m, err := New(children...)
	if err != nil {
		return nil, err
	}
	m.design, m.hasDesign, m.annotation = n.design, n.hasDesign, n.annotation
	return m, nil
}

// Add returns a copy of n with c appended. A deferred design keeps
// applying; a concrete matrix no longer fits and is dropped in favour of
// the default arrangement.
func (n *Node) Add(c Child) (*Node, error) {
	if !c.Valid() {
		return nil, errors.New(errors.ErrCodeUnsupportedChild, "cannot add an empty child")
	}
	m := n.clone()
	m.children = append(m.children, c)
	if m.hasDesign && !m.design.Deferred() {
		m.design, m.hasDesign = design.Spec{}, false
	}
	return m, nil
}

// row reports whether n is a plain row that a further Beside may extend.
func (n *Node) row() bool {
	if !n.annotation.IsZero() {
		return false
	}
	if !n.hasDesign {
		return len(n.children) == 1
	}
	d := n.design
	return d.Deferred() && d.NRow() == 1 && d.NCol() == len(n.children) && uniform(d.RelWidths())
}

// column is the vertical counterpart of row. Without a layout, fewer than
// four children already stack in one column.
func (n *Node) column() bool {
	if !n.annotation.IsZero() {
		return false
	}
	if !n.hasDesign {
		return len(n.children) < 4
	}
	d := n.design
	return d.Deferred() && d.NCol() == 1 && d.NRow() == len(n.children) && uniform(d.RelHeights())
}

func uniform(ws []float64) bool {
	for _, w := range ws {
		if w != ws[0] {
			return false
		}
	}
	return true
}

// Beside places b to the right of a. A plain row on the left is continued;
// anything else is nested as a single cell.
func Beside(a, b Child) *Node {
	children := []Child{a, b}
	if a.node != nil && a.node.row() {
		children = append(slices.Clone(a.node.children), b)
	}
	spec, _ := design.Grid(len(children), 1)
	return &Node{children: children, design: spec, hasDesign: true}
}

// Stack places b below a. A plain column on top is continued; anything
// else is nested as a single cell.
func Stack(a, b Child) *Node {
	children := []Child{a, b}
	if a.node != nil && a.node.column() {
		children = append(slices.Clone(a.node.children), b)
	}
	spec, _ := design.Grid(1, len(children))
	return &Node{children: children, design: spec, hasDesign: true}
}

// Design returns the node's design resolved for its child count. Nodes
// without a layout use design.Default.
func (n *Node) Design() (design.Spec, error) {
	if !n.hasDesign {
		return design.Default(len(n.children))
	}
	return n.design.Resolve(len(n.children))
}

// Validate checks the whole tree: every child is valid and every design
// resolves to exactly as many items as its node has children.
func (n *Node) Validate() error {
	return n.Walk(func(path []int, c Child) error {
		if !c.Valid() {
			return errors.New(errors.ErrCodeUnsupportedChild, "invalid child at %s", pathString(path))
		}
		if c.node != nil {
			if _, err := c.node.Design(); err != nil {
				return fmt.Errorf("node at %s: %w", pathString(path), err)
			}
		}
		return nil
	})
}

// Walk visits n and its descendants depth-first in child order. The root
// is visited with an empty path; fn returning an error stops the walk.
func (n *Node) Walk(fn func(path []int, c Child) error) error {
	return walk(Sub(n), nil, fn)
}

func walk(c Child, path []int, fn func([]int, Child) error) error {
	if err := fn(path, c); err != nil {
		return err
	}
	if c.node == nil {
		return nil
	}
	for i, ch := range c.node.children {
		if err := walk(ch, append(slices.Clone(path), i), fn); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns the number of leaves in the tree.
func (n *Node) Leaves() int {
	count := 0
	_ = n.Walk(func(_ []int, c Child) error {
		if c.IsLeaf() {
			count++
		}
		return nil
	})
	return count
}

// Fingerprint hashes the tree structure, designs, decorations and leaf
// fingerprints.
func (n *Node) Fingerprint() string {
	var b strings.Builder
	n.describe(&b)
	return cache.Hash([]byte(b.String()))
}

func (n *Node) describe(b *strings.Builder) {
	b.WriteString("node(")
	if n.hasDesign {
		fmt.Fprintf(b, "design=%s;byCol=%v;w=%v;h=%v;", n.design, n.design.ByColumn(), n.design.RelWidths(), n.design.RelHeights())
	}
	fmt.Fprintf(b, "ann=%+v;", n.annotation)
	for _, c := range n.children {
		if c.leaf != nil {
			b.WriteString(c.leaf.Kind() + ":" + c.leaf.Fingerprint() + ";")
		} else if c.node != nil {
			c.node.describe(b)
		}
	}
	b.WriteString(")")
}

func pathString(path []int) string {
	if len(path) == 0 {
		return "root"
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ".")
}
