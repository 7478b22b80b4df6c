// Package patch builds composition trees: nodes that arrange plot leaves and
// nested nodes on a grid.
//
// Nodes are persistent. Every combinator ([Beside], [Stack], [Node.Add],
// [Node.WithLayout], [Node.WithAnnotation]) returns a new node and shares
// its operands read-only, so a subtree combined into two larger trees is
// never changed by either combination.
//
//	a := patch.Leaf(plot.DOT{Source: src})
//	b := patch.Leaf(plot.Text{Label: "notes"})
//	row := patch.Beside(a, b)                  // a | b
//	fig := patch.Stack(patch.Sub(row), c)      // (a | b) / c
package patch
