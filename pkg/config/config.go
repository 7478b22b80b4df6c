// Package config holds the tunables of the size-convergence engine.
//
// A [Config] is an immutable value: every sizing call receives one by value,
// and the With* methods return modified copies. Configuration files use TOML:
//
//	max_iter = 30
//	eps = 0.005
//	num_attempts = 3
//
//	[base]
//	height = 4.0
//	aspect_ratio = 1.5
//
// Keys missing from the file keep their [Default] values.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and library callers
// =============================================================================

const (
	// DefaultMaxIter bounds the render/correct iterations of one leaf.
	DefaultMaxIter = 20

	// DefaultMinSizePx is the smallest acceptable corrected extent in pixels.
	DefaultMinSizePx = 10.0

	// DefaultEps is the convergence tolerance on |Δw|+|Δh| in inches.
	DefaultEps = 1e-2

	// DefaultNumAttempts is the number of whole-figure sizing passes.
	DefaultNumAttempts = 2

	// DefaultBaseHeight is the default leaf height in inches.
	DefaultBaseHeight = 3.71

	// DefaultBaseAspectRatio is the default leaf width/height ratio.
	DefaultBaseAspectRatio = 1.618

	// DefaultDPI is the resolution used for pixel checks and raster export.
	DefaultDPI = 96.0
)

// Config carries the convergence and default-size parameters.
type Config struct {
	MaxIter     int     `toml:"max_iter"`
	MinSizePx   float64 `toml:"min_size_px"`
	Eps         float64 `toml:"eps"`
	NumAttempts int     `toml:"num_attempts"`
	DPI         float64 `toml:"dpi"`
	Base        Base    `toml:"base"`
}

// Base describes the default size of a single leaf.
type Base struct {
	Height      float64 `toml:"height"`
	AspectRatio float64 `toml:"aspect_ratio"`
}

// Width returns the default leaf width in inches.
func (b Base) Width() float64 { return b.Height * b.AspectRatio }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxIter:     DefaultMaxIter,
		MinSizePx:   DefaultMinSizePx,
		Eps:         DefaultEps,
		NumAttempts: DefaultNumAttempts,
		DPI:         DefaultDPI,
		Base: Base{
			Height:      DefaultBaseHeight,
			AspectRatio: DefaultBaseAspectRatio,
		},
	}
}

// WithMaxIter returns a copy with the iteration bound replaced.
func (c Config) WithMaxIter(n int) Config { c.MaxIter = n; return c }

// WithMinSizePx returns a copy with the minimum pixel size replaced.
func (c Config) WithMinSizePx(px float64) Config { c.MinSizePx = px; return c }

// WithEps returns a copy with the convergence tolerance replaced.
func (c Config) WithEps(eps float64) Config { c.Eps = eps; return c }

// WithNumAttempts returns a copy with the attempt count replaced.
func (c Config) WithNumAttempts(n int) Config { c.NumAttempts = n; return c }

// WithDPI returns a copy with the resolution replaced.
func (c Config) WithDPI(dpi float64) Config { c.DPI = dpi; return c }

// WithBase returns a copy with the default leaf size replaced.
func (c Config) WithBase(height, aspect float64) Config {
	c.Base = Base{Height: height, AspectRatio: aspect}
	return c
}

// Validate reports the first out-of-range parameter.
func (c Config) Validate() error {
	switch {
	case c.MaxIter < 1:
		return errors.New(errors.ErrCodeInvalidInput, "max_iter must be at least 1, got %d", c.MaxIter)
	case c.NumAttempts < 1:
		return errors.New(errors.ErrCodeInvalidInput, "num_attempts must be at least 1, got %d", c.NumAttempts)
	case c.MinSizePx < 0:
		return errors.New(errors.ErrCodeInvalidInput, "min_size_px cannot be negative, got %v", c.MinSizePx)
	}
	if err := errors.ValidateDimension("eps", c.Eps); err != nil {
		return err
	}
	if err := errors.ValidateDimension("dpi", c.DPI); err != nil {
		return err
	}
	if err := errors.ValidateDimension("base.height", c.Base.Height); err != nil {
		return err
	}
	return errors.ValidateDimension("base.aspect_ratio", c.Base.AspectRatio)
}

// Parse decodes TOML data on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config")
	}
	return Parse(data)
}

// UserPath returns the per-user config file location, which may not exist.
func UserPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "plotgrid", "config.toml"), nil
}

// Resolve loads the explicit path when given, otherwise the per-user file
// when present, otherwise the defaults.
func Resolve(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	userPath, err := UserPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(userPath); err != nil {
		return Default(), nil
	}
	return Load(userPath)
}
