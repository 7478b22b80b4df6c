package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotgrid/pkg/buildinfo"
	"github.com/matzehuels/plotgrid/pkg/cache"
	"github.com/matzehuels/plotgrid/pkg/config"
	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "plotgrid"

	// redisKeyPrefix namespaces shared cache entries.
	redisKeyPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Persistent flags shared by every command.
	configPath string
	workers    int
	noCache    bool
	cacheURL   string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		workers: 1,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Config is resolved once
// per invocation: defaults, then the user config file, then --config.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cfg, err := config.Resolve(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.workers < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--workers must be at least 1, got %d", c.workers)
	}
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	runner.Config = cfg
	runner.Workers = c.workers
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.cacheURL != "" {
		if err := errors.ValidateRedisURL(c.cacheURL); err != nil {
			return nil, err
		}
		rc, err := cache.NewRedisCache(ctx, c.cacheURL, cache.WithKeyPrefix(redisKeyPrefix))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "connect to cache")
		}
		c.Logger.Debug("using shared cache", "url", c.cacheURL)
		return rc, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "reason", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
