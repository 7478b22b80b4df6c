package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotgrid/pkg/backend"
	"github.com/matzehuels/plotgrid/pkg/cache"
	"github.com/matzehuels/plotgrid/pkg/compose"
	"github.com/matzehuels/plotgrid/pkg/config"
	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/negotiate"
	"github.com/matzehuels/plotgrid/pkg/patch"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the preview server use it to avoid duplicating sizing
// and caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	// Renderer replaces the leaf backends. When nil, the default backends
	// are wrapped in a fragment cache built from Cache and Keyer on every
	// call, so reassigning either field affects fragments and figures alike.
	Renderer backend.Renderer
	Config   config.Config
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	// Workers bounds concurrent leaf renders within one allocation pass.
	Workers int
	// Compose controls background and font embedding.
	Compose compose.Options
}

// NewRunner creates a runner that renders leaves with the default backends.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Config:  config.Default(),
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Workers: 1,
		Compose: compose.DefaultOptions(),
	}
}

func (r *Runner) renderer() backend.Renderer {
	if r.Renderer != nil {
		return r.Renderer
	}
	return backend.NewCached(backend.Default(), r.Cache,
		backend.WithKeyer(r.Keyer), backend.WithCacheLogger(r.Logger))
}

func (r *Runner) negotiator() *negotiate.Negotiator {
	return negotiate.New(r.renderer(), r.Config,
		negotiate.WithLogger(r.Logger), negotiate.WithWorkers(r.Workers))
}

// Size returns the figure size (inches) that Save would start from.
func (r *Runner) Size(root *patch.Node, width, height *float64) (units.Size, error) {
	return r.negotiator().DefaultSize(root, width, height)
}

// Render runs the complete pipeline and returns the encoded figure.
func (r *Runner) Render(ctx context.Context, root *patch.Node, format compose.Format, opts SaveOptions) (*Result, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "figure is nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := compose.ValidateFormat(string(format)); err != nil {
		return nil, err
	}
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	dpi := opts.DPI
	if dpi == 0 {
		dpi = r.Config.DPI
	}

	start := time.Now()
	neg := r.negotiator()
	size, err := neg.DefaultSize(root, opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("size: %w", err)
	}

	cacheKey := r.figureKey(root, size, dpi, format)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if res, err := decodeResult(data); err == nil {
				r.Logger.Debug("figure cache hit", "format", format)
				res.CacheHit = true
				res.Stats.Duration = time.Since(start)
				return res, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}

	res := &Result{Format: format}

	// Stage 1: Negotiate
	stageStart := time.Now()
	plan, err := neg.Allocate(ctx, root, size.W, size.H, dpi)
	if err != nil {
		return nil, fmt.Errorf("negotiate: %w", err)
	}
	res.Size = plan.SizeInches()
	res.Stats.Leaves = len(plan.Leaves)
	res.Stats.Attempts = plan.Attempts
	res.Stats.Renders = plan.Renders
	res.Stats.NegotiateTime = time.Since(stageStart)

	r.Logger.Info("sized figure",
		"width", fmt.Sprintf("%.3gin", res.Size.W),
		"height", fmt.Sprintf("%.3gin", res.Size.H),
		"leaves", res.Stats.Leaves,
		"attempts", res.Stats.Attempts,
		"renders", res.Stats.Renders,
		"duration", res.Stats.NegotiateTime)

	// Stage 2: Compose
	stageStart = time.Now()
	doc, err := compose.Compose(plan, r.Compose)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	res.Stats.ComposeTime = time.Since(stageStart)

	// Stage 3: Serialize
	stageStart = time.Now()
	res.Data, err = compose.Serialize(ctx, doc, format, dpi)
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	res.Stats.SerializeTime = time.Since(stageStart)
	res.Stats.Duration = time.Since(start)

	r.Logger.Debug("encoded figure",
		"format", format,
		"bytes", len(res.Data),
		"duration", res.Stats.SerializeTime)

	if data, err := encodeResult(res); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLFigure)
	}
	return res, nil
}

// Save renders root and writes it to path. The format comes from
// opts.Format or else the path's extension. The file is replaced
// atomically, and nothing is written when any stage fails.
func (r *Runner) Save(ctx context.Context, root *patch.Node, path string, opts SaveOptions) (*Result, error) {
	format := opts.Format
	if format == "" {
		f, err := compose.FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = f
	}
	res, err := r.Render(ctx, root, format, opts)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(path, res.Data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	r.Logger.Info("saved figure", "path", path, "format", format)
	return res, nil
}

// Write renders root and writes it to w. The format defaults to SVG. w is
// untouched when any stage fails.
func (r *Runner) Write(ctx context.Context, root *patch.Node, w io.Writer, opts SaveOptions) (*Result, error) {
	format := opts.Format
	if format == "" {
		format = compose.FormatSVG
	}
	res, err := r.Render(ctx, root, format, opts)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(res.Data); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	return res, nil
}

// Show renders root as SVG for on-screen display.
func (r *Runner) Show(ctx context.Context, root *patch.Node, opts ShowOptions) (*Result, error) {
	return r.Render(ctx, root, compose.FormatSVG, SaveOptions{
		Width:  opts.Width,
		Height: opts.Height,
		DPI:    opts.DPI,
	})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// figureKey covers everything that changes the encoded output: the tree,
// the sizing config, the starting size, dpi and format.
func (r *Runner) figureKey(root *patch.Node, size units.Size, dpi float64, format compose.Format) string {
	tree := cache.Hash(fmt.Appendf(nil, "%s\x00%+v\x00%+v", root.Fingerprint(), r.Config, r.Compose))
	return r.Keyer.FigureKey(tree, cache.FigureKeyOpts{
		Width:  size.W,
		Height: size.H,
		DPI:    dpi,
		Format: string(format),
	})
}

type cachedResult struct {
	Data   []byte         `json:"data"`
	Format compose.Format `json:"format"`
	Size   units.Size     `json:"size"`
	Stats  Stats          `json:"stats"`
}

func encodeResult(res *Result) ([]byte, error) {
	return json.Marshal(cachedResult{Data: res.Data, Format: res.Format, Size: res.Size, Stats: res.Stats})
}

func decodeResult(data []byte) (*Result, error) {
	var c cachedResult
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &Result{Data: c.Data, Format: c.Format, Size: c.Size, Stats: c.Stats}, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".plotgrid-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
