package cache

// Keyer builds cache keys.
type Keyer interface {
	// FragmentKey identifies a leaf rendered at a size (inches) and dpi.
	FragmentKey(fingerprint string, width, height, dpi float64) string
	// FigureKey identifies a serialized figure.
	FigureKey(treeHash string, opts FigureKeyOpts) string
}

// FigureKeyOpts are the output options that change a serialized figure.
type FigureKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	DPI    float64 `json:"dpi"`
	Format string  `json:"format"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FragmentKey generates a key for a rendered fragment. Sizes are rounded to
// 1e-6 inch so float noise from the correction loop does not defeat reuse.
func (DefaultKeyer) FragmentKey(fingerprint string, width, height, dpi float64) string {
	return hashKey("fragment", fingerprint, round6(width), round6(height), dpi)
}

// FigureKey generates a key for a serialized figure.
func (DefaultKeyer) FigureKey(treeHash string, opts FigureKeyOpts) string {
	return hashKey("figure", treeHash, opts)
}

func round6(v float64) int64 {
	if v < 0 {
		return int64(v*1e6 - 0.5)
	}
	return int64(v*1e6 + 0.5)
}

// ScopedKeyer wraps a Keyer with a prefix, separating cache namespaces that
// share one backend (for example several projects on one redis instance).
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:reports:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FragmentKey generates a prefixed fragment key.
func (k *ScopedKeyer) FragmentKey(fingerprint string, width, height, dpi float64) string {
	return k.prefix + k.inner.FragmentKey(fingerprint, width, height, dpi)
}

// FigureKey generates a prefixed figure key.
func (k *ScopedKeyer) FigureKey(treeHash string, opts FigureKeyOpts) string {
	return k.prefix + k.inner.FigureKey(treeHash, opts)
}
