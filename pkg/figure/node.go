package figure

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/plotgrid/pkg/design"
	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/patch"
	"github.com/matzehuels/plotgrid/pkg/plot"
)

// nodeFile is either a leaf (exactly one of the leaf keys) or a nested
// node (children).
type nodeFile struct {
	DOT      string  `yaml:"dot"`
	DOTFile  string  `yaml:"dot_file"`
	Text     string  `yaml:"text"`
	FontSize float64 `yaml:"font_size"`
	SVGFile  string  `yaml:"svg_file"`

	Children   []*nodeFile     `yaml:"children"`
	Design     yaml.Node       `yaml:"design"`
	NCol       int             `yaml:"ncol"`
	NRow       int             `yaml:"nrow"`
	ByRow      *bool           `yaml:"byrow"`
	RelWidths  []float64       `yaml:"rel_widths"`
	RelHeights []float64       `yaml:"rel_heights"`
	Annotation *annotationFile `yaml:"annotation"`
}

func (n *nodeFile) leafKeys() int {
	c := 0
	for _, s := range []string{n.DOT, n.DOTFile, n.Text, n.SVGFile} {
		if s != "" {
			c++
		}
	}
	return c
}

func (n *nodeFile) hasLayout() bool {
	return !n.Design.IsZero() || n.NCol > 0 || n.NRow > 0 || n.ByRow != nil ||
		len(n.RelWidths) > 0 || len(n.RelHeights) > 0
}

type builder struct {
	dir string
}

func (b builder) child(n *nodeFile, where string) (patch.Child, error) {
	if n == nil {
		return patch.Child{}, errors.New(errors.ErrCodeInvalidInput, "%s: empty entry", where)
	}
	switch k := n.leafKeys(); {
	case k > 1:
		return patch.Child{}, errors.New(errors.ErrCodeInvalidInput, "%s: set only one of dot, dot_file, text or svg_file", where)
	case k == 1 && (len(n.Children) > 0 || n.hasLayout() || n.Annotation != nil):
		return patch.Child{}, errors.New(errors.ErrCodeInvalidInput, "%s: a plot entry cannot have children, a layout or annotations", where)
	case k == 1:
		leaf, err := b.leaf(n, where)
		if err != nil {
			return patch.Child{}, err
		}
		return patch.Leaf(leaf), nil
	}
	node, err := b.node(n, where)
	if err != nil {
		return patch.Child{}, err
	}
	return patch.Sub(node), nil
}

func (b builder) leaf(n *nodeFile, where string) (plot.Leaf, error) {
	switch {
	case n.DOT != "":
		return plot.DOT{Source: n.DOT}, nil
	case n.DOTFile != "":
		data, err := b.read(n.DOTFile, where)
		if err != nil {
			return nil, err
		}
		return plot.DOT{Source: string(data)}, nil
	case n.Text != "":
		if n.FontSize < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: font_size must be positive", where)
		}
		return plot.Text{Label: n.Text, FontSize: n.FontSize}, nil
	default:
		data, err := b.read(n.SVGFile, where)
		if err != nil {
			return nil, err
		}
		return plot.Image{SVG: data}, nil
	}
}

func (b builder) read(ref, where string) ([]byte, error) {
	if err := errors.ValidateAssetPath(ref); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", where)
	}
	path := filepath.Join(b.dir, filepath.FromSlash(ref))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s: %s", where, ref)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: read %s", where, ref)
	}
	return data, nil
}

func (b builder) node(n *nodeFile, where string) (*patch.Node, error) {
	if n.leafKeys() > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: the figure root must have children, not a plot", where)
	}
	if len(n.Children) == 0 {
		return nil, errors.New(errors.ErrCodeChildCount, "%s: needs at least one child", where)
	}
	children := make([]patch.Child, len(n.Children))
	for i, cf := range n.Children {
		c, err := b.child(cf, fmt.Sprintf("%s.children[%d]", where, i))
		if err != nil {
			return nil, err
		}
		children[i] = c
	}
	node, err := patch.New(children...)
	if err != nil {
		return nil, err
	}

	if n.hasLayout() {
		spec, err := n.layout()
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "%s", where)
		}
		node = node.WithLayout(spec)
	}
	if n.Annotation != nil {
		ann, err := n.Annotation.build()
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "%s.annotation", where)
		}
		node = node.WithAnnotation(ann)
	}
	return node, nil
}

// layout builds the node's design. A design key gives a resolved matrix,
// either as text or as rows of indices with null for gaps; otherwise the
// grid is deferred until the child count is known.
func (n *nodeFile) layout() (design.Spec, error) {
	var opts []design.Option
	if len(n.RelWidths) > 0 {
		opts = append(opts, design.WithRelWidths(n.RelWidths...))
	}
	if len(n.RelHeights) > 0 {
		opts = append(opts, design.WithRelHeights(n.RelHeights...))
	}
	if n.ByRow != nil && !*n.ByRow {
		opts = append(opts, design.ByColumn())
	}

	switch n.Design.Kind {
	case 0:
		return design.Grid(n.NCol, n.NRow, opts...)
	case yaml.ScalarNode:
		return design.Parse(n.Design.Value, opts...)
	case yaml.SequenceNode:
		rows, err := decodeRows(&n.Design)
		if err != nil {
			return design.Spec{}, errors.Wrap(errors.ErrCodeDesignParse, err, "design must be text or rows of integers")
		}
		// Figure files number panels from 1; 0 or null marks a gap.
		for _, row := range rows {
			for j, v := range row {
				switch {
				case v == nil:
				case *v == 0:
					row[j] = nil
				default:
					idx := *v - 1
					row[j] = &idx
				}
			}
		}
		return design.FromOptional(rows, opts...)
	default:
		return design.Spec{}, errors.New(errors.ErrCodeDesignParse, "design must be text or rows of integers")
	}
}

// decodeRows reads a design matrix. A flat list of integers is one row.
func decodeRows(n *yaml.Node) ([][]*int, error) {
	if len(n.Content) > 0 && n.Content[0].Kind == yaml.ScalarNode {
		var row []*int
		if err := n.Decode(&row); err != nil {
			return nil, err
		}
		return [][]*int{row}, nil
	}
	var rows [][]*int
	if err := n.Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}
