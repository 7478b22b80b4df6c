package annotation

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

// Side is an edge of a node or child box.
type Side int

// Sides in placement order.
const (
	Top Side = iota
	Bottom
	Left
	Right
)

var sideNames = [...]string{"top", "bottom", "left", "right"}

func (s Side) String() string {
	if s < Top || s > Right {
		return "Side(" + strconv.Itoa(int(s)) + ")"
	}
	return sideNames[s]
}

// Vertical reports whether text on this side runs top to bottom.
func (s Side) Vertical() bool { return s == Left || s == Right }

// ParseSide accepts "top", "bottom", "left", "right" or their initials.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "t":
		return Top, nil
	case "bottom", "b":
		return Bottom, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "side %q must be top, bottom, left or right", s)
}

// Order selects how children are matched to tag positions.
type Order int

const (
	// OrderAuto uses reading order for automatic tags and input order for
	// explicit label lists.
	OrderAuto Order = iota
	// OrderInput tags children in the order they were added.
	OrderInput
	// OrderYokogaki tags children top to bottom, left to right.
	OrderYokogaki
)

// ParseOrder accepts "auto", "input" or "yokogaki".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return OrderAuto, nil
	case "input":
		return OrderInput, nil
	case "yokogaki":
		return OrderYokogaki, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "tags order %q must be auto, input or yokogaki", s)
}

// Inherit controls whether a node's own tags survive a parent's
// multi-level tags.
type Inherit int

const (
	// InheritFix keeps the node's own tag settings.
	InheritFix Inherit = iota
	// InheritOverride lets the parent's tag levels replace them.
	InheritOverride
)

// ParseInherit accepts "fix" or "override".
func ParseInherit(s string) (Inherit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fix":
		return InheritFix, nil
	case "override":
		return InheritOverride, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "tags inherit %q must be fix or override", s)
}

// Style holds font sizes in points and the padding around each text block.
type Style struct {
	TitleSize    float64
	SubtitleSize float64
	CaptionSize  float64
	TagSize      float64
	Pad          float64
}

// DefaultStyle returns the built-in text sizes.
func DefaultStyle() Style {
	return Style{TitleSize: 14, SubtitleSize: 11, CaptionSize: 10, TagSize: 12, Pad: 4}
}

// Annotation is an immutable set of decorations. The zero value has none.
type Annotation struct {
	titles    [4]string
	subtitles [4]string
	caption   string

	tags        []TagLevel
	tagsFormat  []string
	tagsLoc     Side
	tagsLocSet  bool
	tagsOrder   Order
	tagsInherit Inherit

	style    Style
	styleSet bool
}

// Option sets one decoration.
type Option func(*Annotation)

// Title sets the title on a side.
func Title(side Side, label string) Option {
	return func(a *Annotation) { a.titles[side] = label }
}

// Subtitle sets the subtitle on a side.
func Subtitle(side Side, label string) Option {
	return func(a *Annotation) { a.subtitles[side] = label }
}

// Caption sets the caption.
func Caption(label string) Option {
	return func(a *Annotation) { a.caption = label }
}

// Tags sets the tag levels, outermost first.
func Tags(levels ...TagLevel) Option {
	return func(a *Annotation) { a.tags = slices.Clone(levels) }
}

// TagsFormat sets the label format of each level.
func TagsFormat(formats ...string) Option {
	return func(a *Annotation) { a.tagsFormat = slices.Clone(formats) }
}

// TagsLoc sets the side of each child on which its tag is drawn.
func TagsLoc(side Side) Option {
	return func(a *Annotation) { a.tagsLoc, a.tagsLocSet = side, true }
}

// TagsOrder sets how children map to tag positions.
func TagsOrder(o Order) Option {
	return func(a *Annotation) { a.tagsOrder = o }
}

// TagsInherit sets how this node reacts to a parent's tags.
func TagsInherit(i Inherit) Option {
	return func(a *Annotation) { a.tagsInherit = i }
}

// WithStyle sets font sizes and padding.
func WithStyle(s Style) Option {
	return func(a *Annotation) { a.style, a.styleSet = s, true }
}

// New builds an annotation and validates its tag settings.
func New(opts ...Option) (Annotation, error) {
	var a Annotation
	for _, opt := range opts {
		opt(&a)
	}
	if err := a.validate(); err != nil {
		return Annotation{}, err
	}
	return a, nil
}

func (a Annotation) validate() error {
	for _, l := range a.tags {
		if err := l.validate(); err != nil {
			return err
		}
	}
	for i, f := range a.tagsFormat {
		if k := placeholders(f); k > i {
			return errors.New(errors.ErrCodeInvalidInput,
				"tags format %q at level %d references level %d", f, i, k)
		}
	}
	if a.tagsFormat != nil && len(a.tags) < len(a.tagsFormat) {
		return errors.New(errors.ErrCodeInvalidInput,
			"%d tag formats given for %d tag levels", len(a.tagsFormat), len(a.tags))
	}
	if a.tagsLoc < Top || a.tagsLoc > Right {
		return errors.New(errors.ErrCodeInvalidInput, "invalid tag side %d", a.tagsLoc)
	}
	return nil
}

// Merge returns a with every decoration set in b replacing a's.
func Merge(a, b Annotation) Annotation {
	out := a
	out.tags = slices.Clone(a.tags)
	out.tagsFormat = slices.Clone(a.tagsFormat)
	for s := range 4 {
		if b.titles[s] != "" {
			out.titles[s] = b.titles[s]
		}
		if b.subtitles[s] != "" {
			out.subtitles[s] = b.subtitles[s]
		}
	}
	if b.caption != "" {
		out.caption = b.caption
	}
	if b.tags != nil {
		out.tags = slices.Clone(b.tags)
		out.tagsFormat = slices.Clone(b.tagsFormat)
	}
	if b.tagsLocSet {
		out.tagsLoc, out.tagsLocSet = b.tagsLoc, true
	}
	if b.tagsOrder != OrderAuto {
		out.tagsOrder = b.tagsOrder
	}
	if b.tagsInherit != InheritFix {
		out.tagsInherit = b.tagsInherit
	}
	if b.styleSet {
		out.style, out.styleSet = b.style, true
	}
	return out
}

// IsZero reports whether the annotation has no decorations.
func (a Annotation) IsZero() bool {
	return a.titles == [4]string{} && a.subtitles == [4]string{} &&
		a.caption == "" && len(a.tags) == 0
}

// Title returns the title on a side.
func (a Annotation) Title(side Side) string { return a.titles[side] }

// Subtitle returns the subtitle on a side.
func (a Annotation) Subtitle(side Side) string { return a.subtitles[side] }

// CaptionText returns the caption.
func (a Annotation) CaptionText() string { return a.caption }

// Style returns the text style, defaulted when unset.
func (a Annotation) Style() Style {
	if a.styleSet {
		return a.style
	}
	return DefaultStyle()
}

// HasTags reports whether the node tags its children.
func (a Annotation) HasTags() bool { return len(a.tags) > 0 }

// TagsLoc returns the tag side, top by default.
func (a Annotation) TagsLoc() Side { return a.tagsLoc }

// TagsInherit returns the inheritance mode.
func (a Annotation) TagsInherit() Inherit { return a.tagsInherit }

// TagsDepth returns the number of nesting levels tagged, 0 for none.
func (a Annotation) TagsDepth() int {
	if len(a.tagsFormat) > 0 {
		return len(a.tagsFormat)
	}
	return len(a.tags)
}

// TagsOrder resolves OrderAuto against the first tag level.
func (a Annotation) TagsOrder() Order {
	if a.tagsOrder != OrderAuto {
		return a.tagsOrder
	}
	if len(a.tags) > 0 && a.tags[0].Explicit() {
		return OrderInput
	}
	return OrderYokogaki
}

func (a Annotation) format(level int) string {
	if level < len(a.tagsFormat) {
		return a.tagsFormat[level]
	}
	return defaultFormat(level)
}

// Tag returns the label of the child at tag position pos on this node's
// first level.
func (a Annotation) Tag(pos int) string {
	if len(a.tags) == 0 {
		return ""
	}
	return fill(a.format(0), []string{a.tags[0].Value(pos)})
}

// Tagged reports whether a child gets its own tag: leaves always do, nodes
// only when this is the last tagged level.
func (a Annotation) Tagged(leaf bool) bool {
	if !a.HasTags() {
		return false
	}
	return leaf || a.TagsDepth() == 1
}

// StepDown returns the tag settings a child node at tag position pos
// inherits: the remaining levels with the current level's label baked in.
// It returns false when nothing is passed down.
func (a Annotation) StepDown(pos int) (Annotation, bool) {
	if len(a.tags) <= 1 || a.TagsDepth() <= 1 {
		return Annotation{}, false
	}
	parent := a.tags[0].Value(pos)
	formats := make([]string, 0, a.TagsDepth()-1)
	for level := 1; level < a.TagsDepth(); level++ {
		f := a.format(level)
		// {0} becomes the parent label; {k} shifts to {k-1}.
		values := []string{parent}
		for k := 1; k <= level; k++ {
			values = append(values, "{"+strconv.Itoa(k-1)+"}")
		}
		formats = append(formats, fill(f, values))
	}
	return Annotation{
		tags:       slices.Clone(a.tags[1:]),
		tagsFormat: formats,
		tagsLoc:    a.tagsLoc,
		tagsLocSet: a.tagsLocSet,
		tagsOrder:  a.tagsOrder,
		style:      a.style,
		styleSet:   a.styleSet,
	}, true
}

// InheritFrom combines a child's own annotation with the tags stepped down from
// its parent. A child without tags, or one that allows overriding, takes the
// parent's levels.
func InheritFrom(child, fromParent Annotation) Annotation {
	if child.HasTags() && child.tagsInherit == InheritFix {
		return child
	}
	out := child
	out.tags = slices.Clone(fromParent.tags)
	out.tagsFormat = slices.Clone(fromParent.tagsFormat)
	out.tagsOrder = fromParent.tagsOrder
	if !child.tagsLocSet {
		out.tagsLoc, out.tagsLocSet = fromParent.tagsLoc, fromParent.tagsLocSet
	}
	return out
}
