package fonts

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Extent is the bounding box of a text block in points.
type Extent struct {
	Width  float64
	Height float64
}

// Measurer reports the extent of text set at a font size in points.
type Measurer interface {
	Measure(text string, size float64) Extent
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string, size float64) Extent

// Measure calls f.
func (f MeasurerFunc) Measure(text string, size float64) Extent { return f(text, size) }

// GoRegular measures text with the Go Regular font. Faces are created per
// size on first use and shared afterwards; it is safe for concurrent use.
type GoRegular struct {
	once  sync.Once
	font  *opentype.Font
	err   error
	mu    sync.Mutex
	faces map[float64]font.Face
}

// Default is the shared Go Regular measurer.
var Default = &GoRegular{}

func (g *GoRegular) face(size float64) font.Face {
	g.once.Do(func() {
		g.font, g.err = opentype.Parse(goregular.TTF)
		g.faces = make(map[float64]font.Face)
	})
	if g.err != nil {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if f, ok := g.faces[size]; ok {
		return f
	}
	// DPI 72 makes one font pixel equal one point.
	f, err := opentype.NewFace(g.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	g.faces[size] = f
	return f
}

// Measure returns the width of the widest line and the total line height.
// Faces are not safe for concurrent use, so measurement holds the lock.
func (g *GoRegular) Measure(text string, size float64) Extent {
	if text == "" || size <= 0 {
		return Extent{}
	}
	face := g.face(size)
	if face == nil {
		return Approximate(text, size)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	lines := strings.Split(text, "\n")
	var width float64
	for _, l := range lines {
		w := float64(font.MeasureString(face, l)) / 64
		width = max(width, w)
	}
	lineHeight := float64(face.Metrics().Height) / 64
	return Extent{Width: width, Height: lineHeight * float64(len(lines))}
}

// Approximate estimates an extent from character counts. It is used when
// the font cannot be loaded and by tests that need exact arithmetic.
func Approximate(text string, size float64) Extent {
	if text == "" {
		return Extent{}
	}
	lines := strings.Split(text, "\n")
	var longest int
	for _, l := range lines {
		longest = max(longest, len([]rune(l)))
	}
	return Extent{
		Width:  0.6 * size * float64(longest),
		Height: 1.2 * size * float64(len(lines)),
	}
}
