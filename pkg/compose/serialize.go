package compose

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"os/exec"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

// JPEGQuality is the quality used for JPEG export.
const JPEGQuality = 92

// Serialize encodes doc in format. dpi sets the pixel density of raster
// formats and is ignored for vector formats.
//
// Formats other than SVG require librsvg: brew install librsvg (macOS),
// apt install librsvg2-bin (Linux).
func Serialize(ctx context.Context, doc Document, format Format, dpi float64) ([]byte, error) {
	switch format {
	case FormatSVG:
		return doc.SVG, nil
	case FormatPDF, FormatPS, FormatEPS:
		return rsvgConvert(ctx, doc.SVG, string(format))
	case FormatPNG:
		return toPNG(ctx, doc.SVG, dpi)
	case FormatJPEG:
		png, err := toPNG(ctx, doc.SVG, dpi)
		if err != nil {
			return nil, err
		}
		return pngToJPEG(png)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}

func toPNG(ctx context.Context, svg []byte, dpi float64) ([]byte, error) {
	if err := errors.ValidateDimension("dpi", dpi); err != nil {
		return nil, err
	}
	d := fmt.Sprintf("%.2f", dpi)
	return rsvgConvert(ctx, svg, "png", "--dpi-x", d, "--dpi-y", d)
}

// pngToJPEG flattens transparency onto white and re-encodes as JPEG.
func pngToJPEG(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "decode png")
	}
	b := img.Bounds()
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode jpeg")
	}
	return buf.Bytes(), nil
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeRenderFailed,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
