package design

import (
	"strings"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

// maxTextItems is the number of items addressable by letters A..Z.
const maxTextItems = 26

// Parse builds a resolved spec from the text grammar.
func Parse(text string, opts ...Option) (Spec, error) {
	lines := normalizeLines(text)
	if len(lines) == 0 {
		return Spec{}, errors.New(errors.ErrCodeDesignParse, "design text is empty")
	}

	width := len(lines[0])
	rows := make([][]Cell, len(lines))
	for r, line := range lines {
		if len(line) != width {
			return Spec{}, errors.New(errors.ErrCodeDesignParse,
				"design row %d has length %d, want %d", r+1, len(line), width)
		}
		rows[r] = make([]Cell, width)
		for c, ch := range []byte(line) {
			switch {
			case ch == '#' || ch == '.':
				rows[r][c] = Gap()
			case ch >= 'A' && ch <= 'Z':
				rows[r][c] = Index(int(ch - 'A'))
			default:
				return Spec{}, errors.New(errors.ErrCodeDesignParse,
					"invalid character %q at row %d, column %d", ch, r+1, c+1)
			}
		}
	}
	return FromMatrix(rows, opts...)
}

// normalizeLines drops surrounding blank lines, trailing whitespace and the
// indentation shared by every remaining line.
func normalizeLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}

	indent := -1
	for _, l := range lines {
		if l == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, l := range lines {
		if len(l) >= indent {
			lines[i] = l[indent:]
		}
	}
	return lines
}

// Text renders a resolved spec in the text grammar, using '#' for gaps.
func (s Spec) Text() (string, error) {
	return s.TextWithGap('#')
}

// TextWithGap renders a resolved spec using the given gap marker.
func (s Spec) TextWithGap(gap byte) (string, error) {
	if s.deferred {
		return "", errors.New(errors.ErrCodeDeferredLayout, "deferred design has no text form")
	}
	if gap != '#' && gap != '.' {
		return "", errors.New(errors.ErrCodeInvalidInput, "gap marker must be '#' or '.', got %q", gap)
	}
	if s.numItems > maxTextItems {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"design has %d items, text form supports %d", s.numItems, maxTextItems)
	}
	var b strings.Builder
	for r, row := range s.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range row {
			if i, ok := cell.Get(); ok {
				b.WriteByte(byte('A' + i))
			} else {
				b.WriteByte(gap)
			}
		}
	}
	return b.String(), nil
}
