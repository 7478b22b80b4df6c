// Package plot defines the leaves of a figure: opaque plot objects that a
// rendering backend turns into SVG fragments.
//
// Leaves carry only what a backend needs to draw them. They are immutable
// values, so rendering the same leaf twice at the same size must give the
// same result, which is what makes size correction and caching sound.
package plot

import (
	"strconv"

	"github.com/matzehuels/plotgrid/pkg/cache"
)

// Leaf kinds understood by the bundled backends.
const (
	KindDOT   = "dot"
	KindText  = "text"
	KindImage = "image"
)

// Leaf is a plot object rendered by an external backend.
type Leaf interface {
	// Kind selects the backend.
	Kind() string
	// Fingerprint is a stable content hash used for caching.
	Fingerprint() string
}

// DOT is a Graphviz graph. Graphviz pads and rounds its output, so the
// rendered size differs from the requested one.
type DOT struct {
	Source string
}

// Kind returns KindDOT.
func (d DOT) Kind() string { return KindDOT }

// Fingerprint hashes the DOT source.
func (d DOT) Fingerprint() string { return cache.Hash([]byte("dot\x00" + d.Source)) }

// Text is a panel holding a block of text. It stretches to any size but
// never renders smaller than the text itself.
type Text struct {
	Label    string
	FontSize float64 // points; 0 means 12
}

// DefaultFontSize is the size of a Text leaf without FontSize.
const DefaultFontSize = 12.0

// Kind returns KindText.
func (t Text) Kind() string { return KindText }

// Size returns the font size with the default applied.
func (t Text) Size() float64 {
	if t.FontSize > 0 {
		return t.FontSize
	}
	return DefaultFontSize
}

// Fingerprint hashes the label and size.
func (t Text) Fingerprint() string {
	return cache.Hash([]byte("text\x00" + t.Label + "\x00" + strconv.FormatFloat(t.Size(), 'g', -1, 64)))
}

// Image is a pre-rendered SVG document scaled to whatever size is
// requested.
type Image struct {
	SVG []byte
}

// Kind returns KindImage.
func (i Image) Kind() string { return KindImage }

// Fingerprint hashes the SVG bytes.
func (i Image) Fingerprint() string { return cache.Hash(append([]byte("image\x00"), i.SVG...)) }

// Describe returns a short human-readable label for logs.
func Describe(l Leaf) string {
	fp := l.Fingerprint()
	if len(fp) > 8 {
		fp = fp[:8]
	}
	return l.Kind() + ":" + fp
}
