// Package figure loads figure descriptions from YAML files.
//
// A figure file describes a composition tree and, optionally, how to save
// it:
//
//	width: 6in
//	height: 4in
//	dpi: 300
//	figure:
//	  design: |
//	    AAB
//	    CCB
//	  annotation:
//	    title: {top: Pipeline overview}
//	    tags: {levels: [A]}
//	  children:
//	    - dot_file: graphs/build.dot
//	    - text: "stage 2"
//	    - children:
//	        - svg_file: plots/latency.svg
//	        - dot: "digraph { a -> b }"
//
// File references are resolved relative to the figure file and must stay
// inside its directory.
package figure

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/patch"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// Figure is a loaded figure file.
type Figure struct {
	Root *patch.Node
	// Width and Height are in inches; nil when the file leaves them open.
	Width  *float64
	Height *float64
	// DPI is zero when unset.
	DPI float64
	// Format is the export format name, empty when unset.
	Format string
}

type file struct {
	Width  length    `yaml:"width"`
	Height length    `yaml:"height"`
	DPI    float64   `yaml:"dpi"`
	Format string    `yaml:"format"`
	Figure *nodeFile `yaml:"figure"`
}

// length accepts a bare number (inches) or a string with a unit suffix.
type length struct {
	in  float64
	set bool
}

func (l *length) UnmarshalYAML(n *yaml.Node) error {
	v, err := units.ParseLength(n.Value)
	if err != nil {
		return err
	}
	l.in, l.set = v, true
	return nil
}

func (l length) ptr() *float64 {
	if !l.set {
		return nil
	}
	v := l.in
	return &v
}

// Load reads and parses a figure file.
func Load(path string) (*Figure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "figure file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse parses figure YAML. File references are resolved against dir.
func Parse(data []byte, dir string) (*Figure, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse figure")
	}
	if f.Figure == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "figure file has no 'figure' section")
	}
	if f.DPI < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %v", f.DPI)
	}

	b := builder{dir: dir}
	root, err := b.node(f.Figure, "figure")
	if err != nil {
		return nil, err
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	return &Figure{
		Root:   root,
		Width:  f.Width.ptr(),
		Height: f.Height.ptr(),
		DPI:    f.DPI,
		Format: f.Format,
	}, nil
}
