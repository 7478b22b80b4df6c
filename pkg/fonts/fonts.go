// Package fonts provides the font used for figure annotations and the text
// measurement that sizes annotation margins.
//
// The Go Regular font ships with golang.org/x/image, so measurements and the
// embedded SVG @font-face agree without any system font lookup.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
)

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// RegularBase64 returns the TTF font data as a base64 string for
// embedding in SVG documents. The result is cached after first computation.
func RegularBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go"

// FallbackFontFamily provides fallback fonts for viewers that drop the
// embedded face.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`
