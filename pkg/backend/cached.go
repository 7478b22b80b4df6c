package backend

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotgrid/pkg/cache"
	"github.com/matzehuels/plotgrid/pkg/observability"
	"github.com/matzehuels/plotgrid/pkg/plot"
)

const fragmentKeyType = "fragment"

// Cached puts a fragment cache in front of a renderer. Cache failures are
// logged and treated as misses; they never fail a render.
type Cached struct {
	next   Renderer
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// CachedOption configures a Cached renderer.
type CachedOption func(*Cached)

// WithTTL overrides the fragment lifetime (default [cache.TTLFragment]).
func WithTTL(ttl time.Duration) CachedOption {
	return func(c *Cached) { c.ttl = ttl }
}

// WithKeyer overrides the cache keyer.
func WithKeyer(k cache.Keyer) CachedOption {
	return func(c *Cached) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithCacheLogger sets the logger used for cache failures.
func WithCacheLogger(l *log.Logger) CachedOption {
	return func(c *Cached) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCached wraps next with cache c. A nil cache disables caching.
func NewCached(next Renderer, c cache.Cache, opts ...CachedOption) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	r := &Cached{
		next:   next,
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		ttl:    cache.TTLFragment,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns a cached fragment or renders and stores a new one.
func (c *Cached) Render(ctx context.Context, leaf plot.Leaf, width, height, dpi float64) (Fragment, error) {
	key := c.keyer.FragmentKey(leaf.Fingerprint(), width, height, dpi)
	hooks := observability.Cache()

	data, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Debug("fragment cache read failed", "leaf", plot.Describe(leaf), "err", err)
	}
	if err == nil && hit {
		var f Fragment
		if err := json.Unmarshal(data, &f); err == nil {
			hooks.OnCacheHit(ctx, fragmentKeyType)
			return f, nil
		}
		// Corrupt entry: fall through and overwrite it.
	}
	hooks.OnCacheMiss(ctx, fragmentKeyType)

	f, err := c.next.Render(ctx, leaf, width, height, dpi)
	if err != nil {
		return Fragment{}, err
	}

	if data, err := json.Marshal(f); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Debug("fragment cache write failed", "leaf", plot.Describe(leaf), "err", err)
		} else {
			hooks.OnCacheSet(ctx, fragmentKeyType, len(data))
		}
	}
	return f, nil
}
