package compose

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

// Format is an export format.
type Format string

// Export formats.
const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatPS   Format = "ps"
	FormatEPS  Format = "eps"
	FormatJPEG Format = "jpeg"
)

// Formats lists the supported formats.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatPS, FormatEPS, FormatJPEG}

// ParseFormat parses a format name; "jpg" is an alias for "jpeg".
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if s == "jpg" {
		return FormatJPEG, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want svg, png, pdf, ps, eps or jpg)", s)
}

// ValidateFormat checks that s names a supported format.
func ValidateFormat(s string) error {
	_, err := ParseFormat(s)
	return err
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from %q: no extension", path)
	}
	return ParseFormat(ext)
}

// Raster reports whether the format is a pixel image, so dpi matters.
func (f Format) Raster() bool { return f == FormatPNG || f == FormatJPEG }

// MIMEType returns the media type of the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatPS, FormatEPS:
		return "application/postscript"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
