// Package negotiate sizes a composition tree.
//
// Sizing runs in two phases. [Negotiator.DefaultSize] works bottom-up and
// estimates how large the figure must be so that every leaf gets at least
// the default leaf size and no decoration is clipped. [Negotiator.Allocate]
// works top-down: it lays out each node inside its box, reserves room for
// titles, captions and tags, and asks the size corrector to render each leaf
// at the space it received.
//
// When a leaf cannot be rendered at its allocated size (a text panel that
// needs more room, a backend with a fixed minimum), the whole figure is
// scaled up by a single factor and allocated again from the root. The
// number of passes is bounded by [config.Config.NumAttempts].
package negotiate

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotgrid/pkg/annotation"
	"github.com/matzehuels/plotgrid/pkg/area"
	"github.com/matzehuels/plotgrid/pkg/backend"
	"github.com/matzehuels/plotgrid/pkg/config"
	"github.com/matzehuels/plotgrid/pkg/correct"
	"github.com/matzehuels/plotgrid/pkg/fonts"
	"github.com/matzehuels/plotgrid/pkg/plot"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// Negotiator sizes trees against one renderer and configuration. It holds no
// per-call state and is safe for concurrent use.
type Negotiator struct {
	renderer backend.Renderer
	cfg      config.Config
	logger   *log.Logger
	workers  int
	measurer fonts.Measurer
}

// Option configures a Negotiator.
type Option func(*Negotiator)

// WithLogger sets the logger for attempt and rescale events.
func WithLogger(l *log.Logger) Option {
	return func(n *Negotiator) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithWorkers sets how many leaves may be corrected concurrently within one
// pass. Values below 1 mean 1.
func WithWorkers(w int) Option {
	return func(n *Negotiator) { n.workers = max(w, 1) }
}

// WithMeasurer sets the text measurer used for decoration margins and text
// leaf minimum sizes.
func WithMeasurer(m fonts.Measurer) Option {
	return func(n *Negotiator) {
		if m != nil {
			n.measurer = m
		}
	}
}

// New creates a negotiator.
func New(r backend.Renderer, cfg config.Config, opts ...Option) *Negotiator {
	n := &Negotiator{
		renderer: r,
		cfg:      cfg,
		logger:   log.New(io.Discard),
		workers:  1,
		measurer: fonts.Default,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Config returns the negotiator's configuration.
func (n *Negotiator) Config() config.Config { return n.cfg }

// PlacedLeaf is a leaf with its final box and rendering.
type PlacedLeaf struct {
	Leaf plot.Leaf
	// Path is the child index at each level from the root.
	Path []int
	// Box is the region the leaf occupies, in points on the figure canvas.
	Box area.Area
	// Request is the size (inches) the backend was asked for.
	Request units.Size
	// Fragment is the rendering at Request.
	Fragment backend.Fragment
	// Iterations is the number of corrections the leaf needed.
	Iterations int
}

// Plan is a fully sized figure, ready for composition.
type Plan struct {
	// Size is the canvas size in points.
	Size units.Size
	// Attempts is the number of allocation passes used.
	Attempts int
	// Renders is the number of backend calls over all passes.
	Renders int
	// Leaves are in depth-first child order.
	Leaves []PlacedLeaf
	// Texts are titles, subtitles, captions and tags in placement order.
	Texts []annotation.Placement
}

// SizeInches returns the canvas size in inches.
func (p *Plan) SizeInches() units.Size { return p.Size.ToIn() }

func (n *Negotiator) correctOptions() correct.Options {
	return correct.FromConfig(n.cfg, false)
}
