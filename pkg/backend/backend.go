// Package backend renders plot leaves into SVG fragments.
//
// A [Renderer] receives a leaf and a requested size in inches and returns
// the drawing together with the size it actually came out at. Backends may
// miss the request (Graphviz pads its canvas, a text panel refuses to shrink
// below its label), which is what the size corrector in package correct
// compensates for.
//
// # Bundled Renderers
//
//   - [Graphviz]: DOT leaves through go-graphviz
//   - [Text]: text panels measured with the Go fonts
//   - [Image]: pre-rendered SVG scaled to the request
//
// [NewMux] dispatches by leaf kind and [Cached] adds a fragment cache in
// front of any renderer.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/observability"
	"github.com/matzehuels/plotgrid/pkg/plot"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// Fragment is a rendered leaf. Width and Height are the size the backend
// actually produced, in inches.
type Fragment struct {
	SVG    []byte  `json:"svg"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size returns the fragment size in inches.
func (f Fragment) Size() units.Size {
	return units.Size{W: f.Width, H: f.Height}
}

// Renderer draws a leaf at a requested size in inches. dpi is the output
// resolution the figure will be rasterized at, if any.
//
// Implementations must be deterministic for a given leaf and size and safe
// for concurrent use.
type Renderer interface {
	Render(ctx context.Context, leaf plot.Leaf, width, height, dpi float64) (Fragment, error)
}

// Func adapts a function to the Renderer interface.
type Func func(ctx context.Context, leaf plot.Leaf, width, height, dpi float64) (Fragment, error)

// Render calls f.
func (f Func) Render(ctx context.Context, leaf plot.Leaf, width, height, dpi float64) (Fragment, error) {
	return f(ctx, leaf, width, height, dpi)
}

// Mux routes leaves to renderers by kind.
type Mux struct {
	mu     sync.RWMutex
	byKind map[string]Renderer
}

// NewMux creates an empty mux.
func NewMux() *Mux {
	return &Mux{byKind: make(map[string]Renderer)}
}

// Default returns a mux with the bundled renderers registered.
func Default() *Mux {
	m := NewMux()
	m.Handle(plot.KindDOT, Graphviz{})
	m.Handle(plot.KindText, NewText(nil))
	m.Handle(plot.KindImage, Image{})
	return m
}

// Handle registers r for a leaf kind, replacing any previous renderer.
func (m *Mux) Handle(kind string, r Renderer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byKind[kind] = r
}

// Supports reports whether a renderer is registered for kind.
func (m *Mux) Supports(kind string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byKind[kind]
	return ok
}

// Render dispatches to the renderer registered for the leaf kind.
func (m *Mux) Render(ctx context.Context, leaf plot.Leaf, width, height, dpi float64) (Fragment, error) {
	if leaf == nil {
		return Fragment{}, errors.New(errors.ErrCodeUnsupportedChild, "nil leaf")
	}
	m.mu.RLock()
	r, ok := m.byKind[leaf.Kind()]
	m.mu.RUnlock()
	if !ok {
		return Fragment{}, errors.New(errors.ErrCodeUnsupportedChild, "no renderer for leaf kind %q", leaf.Kind())
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, leaf.Kind())
	start := time.Now()
	frag, err := r.Render(ctx, leaf, width, height, dpi)
	hooks.OnRenderComplete(ctx, leaf.Kind(), time.Since(start), err)
	return frag, err
}

func checkRequest(ctx context.Context, width, height float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := errors.ValidateDimension("width", width); err != nil {
		return err
	}
	return errors.ValidateDimension("height", height)
}
