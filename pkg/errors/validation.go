package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateDimension checks that a width or height is a positive finite number.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateWeights checks relative widths or heights: every entry must be
// finite and strictly positive.
func ValidateWeights(name string, ws []float64) error {
	for i, w := range ws {
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return New(ErrCodeLayoutMismatch, "%s[%d] must be a positive finite weight, got %v", name, i, w)
		}
	}
	return nil
}

// ValidateAssetPath validates a file path referenced from a figure file.
// Asset paths are resolved relative to the figure file, so they must stay
// inside its directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateAssetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidInput, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "path cannot contain backslashes")
	}

	return nil
}

// ValidateRedisURL validates a cache connection URL.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "URL must use redis or rediss scheme")
	}
	return nil
}
