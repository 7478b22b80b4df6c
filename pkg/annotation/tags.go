package annotation

import (
	"strconv"
	"strings"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

// Auto-tag styles.
const (
	StyleZero       = "0"
	StyleOne        = "1"
	StyleLower      = "a"
	StyleUpper      = "A"
	StyleRomanLower = "i"
	StyleRomanUpper = "I"
)

// TagLevel labels the children at one nesting level.
type TagLevel struct {
	style  string
	labels []string
}

// Auto returns a level labelled automatically in the given style.
func Auto(style string) TagLevel { return TagLevel{style: style} }

// Labels returns a level with explicit labels in tag order.
func Labels(labels ...string) TagLevel {
	return TagLevel{labels: append([]string(nil), labels...)}
}

// Explicit reports whether the level uses a label list.
func (l TagLevel) Explicit() bool { return l.style == "" }

func (l TagLevel) validate() error {
	if l.Explicit() {
		return nil
	}
	switch l.style {
	case StyleZero, StyleOne, StyleLower, StyleUpper, StyleRomanLower, StyleRomanUpper:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput,
		`tag style %q must be one of "0", "1", "a", "A", "i", "I"`, l.style)
}

// Value returns the label of the i-th (0-based) tagged child. Explicit
// levels return "" past the end of their list.
func (l TagLevel) Value(i int) string {
	if l.Explicit() {
		if i < len(l.labels) {
			return l.labels[i]
		}
		return ""
	}
	switch l.style {
	case StyleZero:
		return strconv.Itoa(i)
	case StyleOne:
		return strconv.Itoa(i + 1)
	case StyleLower:
		return alphabetic(i+1, 'a')
	case StyleUpper:
		return alphabetic(i+1, 'A')
	case StyleRomanLower:
		return strings.ToLower(roman(i + 1))
	case StyleRomanUpper:
		return roman(i + 1)
	}
	return ""
}

// alphabetic writes n (1-based) in bijective base 26: a..z, aa, ab, ...
func alphabetic(n int, base byte) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{base + byte(n%26)}, out...)
		n /= 26
	}
	return string(out)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}

// defaultFormat returns "{0}.{1}...{level}".
func defaultFormat(level int) string {
	parts := make([]string, level+1)
	for i := range parts {
		parts[i] = "{" + strconv.Itoa(i) + "}"
	}
	return strings.Join(parts, ".")
}

// placeholders returns the highest {k} index used by format, or -1.
func placeholders(format string) int {
	highest := -1
	for {
		open := strings.IndexByte(format, '{')
		if open < 0 {
			return highest
		}
		end := strings.IndexByte(format[open:], '}')
		if end < 0 {
			return highest
		}
		if k, err := strconv.Atoi(format[open+1 : open+end]); err == nil {
			highest = max(highest, k)
		}
		format = format[open+end+1:]
	}
}

// fill substitutes {k} with values[k].
func fill(format string, values []string) string {
	pairs := make([]string, 0, 2*len(values))
	for k, v := range values {
		pairs = append(pairs, "{"+strconv.Itoa(k)+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(format)
}
