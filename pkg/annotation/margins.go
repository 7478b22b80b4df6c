package annotation

import (
	"github.com/matzehuels/plotgrid/pkg/area"
	"github.com/matzehuels/plotgrid/pkg/fonts"
)

// Margins summarizes the space decorations need around a box, in points.
type Margins struct {
	// MinInnerWidth is the width top and bottom titles need.
	MinInnerWidth float64
	// MinFullWidth is the width the caption needs.
	MinFullWidth float64
	// ExtraWidth is taken by left and right titles.
	ExtraWidth float64
	// MinInnerHeight is the height left and right titles need.
	MinInnerHeight float64
	// ExtraHeight is taken by top and bottom titles and the caption.
	ExtraHeight float64
	// Inset is the space on each side of the inner box.
	Inset area.Margins
}

// IsZero reports whether no space is reserved.
func (m Margins) IsZero() bool { return m == Margins{} }

// textSize returns the padded extent of a label as drawn on side.
// Vertical labels are rotated, so their extent is transposed.
func textSize(label string, size float64, side Side, pad float64, m fonts.Measurer) fonts.Extent {
	if label == "" {
		return fonts.Extent{}
	}
	e := m.Measure(label, size)
	e = fonts.Extent{Width: e.Width + 2*pad, Height: e.Height + 2*pad}
	if side.Vertical() {
		e.Width, e.Height = e.Height, e.Width
	}
	return e
}

// titleExtents returns the padded title and subtitle extents on a side.
func (a Annotation) titleExtents(side Side, m fonts.Measurer) (title, subtitle fonts.Extent) {
	st := a.Style()
	return textSize(a.titles[side], st.TitleSize, side, st.Pad, m),
		textSize(a.subtitles[side], st.SubtitleSize, side, st.Pad, m)
}

func (a Annotation) captionExtent(m fonts.Measurer) fonts.Extent {
	st := a.Style()
	return textSize(a.caption, st.CaptionSize, Bottom, st.Pad, m)
}

// Margins computes the space titles, subtitles and the caption need.
func (a Annotation) Margins(m fonts.Measurer) Margins {
	var out Margins
	for _, side := range []Side{Top, Bottom, Left, Right} {
		t, s := a.titleExtents(side, m)
		if side.Vertical() {
			out.ExtraWidth += t.Width + s.Width
			out.MinInnerHeight += t.Height + s.Height
		} else {
			out.MinInnerWidth += t.Width + s.Width
			out.ExtraHeight += t.Height + s.Height
		}
		switch side {
		case Top:
			out.Inset.Top = t.Height + s.Height
		case Bottom:
			out.Inset.Bottom = t.Height + s.Height
		case Left:
			out.Inset.Left = t.Width + s.Width
		case Right:
			out.Inset.Right = t.Width + s.Width
		}
	}
	c := a.captionExtent(m)
	out.MinFullWidth = c.Width
	out.ExtraHeight += c.Height
	out.Inset.Bottom += c.Height
	return out
}

// TagMargins computes the space the tag at position pos takes around a
// child. It is zero when the child is not tagged at this level.
func (a Annotation) TagMargins(pos int, leaf bool, m fonts.Measurer) Margins {
	if !a.Tagged(leaf) {
		return Margins{}
	}
	st := a.Style()
	side := a.TagsLoc()
	e := textSize(a.Tag(pos), st.TagSize, side, st.Pad, m)

	var out Margins
	if side.Vertical() {
		out.ExtraWidth = e.Width
		out.MinInnerHeight = e.Height
	} else {
		out.MinInnerWidth = e.Width
		out.ExtraHeight = e.Height
	}
	switch side {
	case Top:
		out.Inset.Top = e.Height
	case Bottom:
		out.Inset.Bottom = e.Height
	case Left:
		out.Inset.Left = e.Width
	case Right:
		out.Inset.Right = e.Width
	}
	return out
}

// Kind distinguishes placed text blocks.
type Kind string

// Text block kinds.
const (
	KindTitle    Kind = "title"
	KindSubtitle Kind = "subtitle"
	KindCaption  Kind = "caption"
	KindTag      Kind = "tag"
)

// Placement is a text block positioned in a box, in points.
type Placement struct {
	Kind  Kind
	Side  Side
	Label string
	Size  float64 // font size
	X, Y  float64 // top-left corner
	W, H  float64
}

// Rotated reports whether the block is drawn rotated by 90 degrees.
func (p Placement) Rotated() bool { return p.Side.Vertical() && p.Kind != KindCaption }

// Placements positions titles, subtitles and the caption inside box.
//
// Titles sit outside subtitles on the top and left and inside them on the
// bottom and right; top and bottom text spans the inner width, left and
// right text the inner height, and the caption spans the full width below
// everything else.
func (a Annotation) Placements(box area.Area, m fonts.Measurer) []Placement {
	if a.IsZero() {
		return nil
	}
	st := a.Style()
	mg := a.Margins(m)
	x0, y0 := box.X(), box.Y()
	innerW := box.Width() - mg.ExtraWidth
	innerH := box.Height() - mg.ExtraHeight

	var out []Placement
	add := func(kind Kind, side Side, label string, size, x, y, w, h float64) {
		if label == "" {
			return
		}
		out = append(out, Placement{Kind: kind, Side: side, Label: label, Size: size, X: x, Y: y, W: w, H: h})
	}

	tTop, sTop := a.titleExtents(Top, m)
	add(KindTitle, Top, a.titles[Top], st.TitleSize, x0+mg.Inset.Left, y0, innerW, tTop.Height)
	add(KindSubtitle, Top, a.subtitles[Top], st.SubtitleSize, x0+mg.Inset.Left, y0+tTop.Height, innerW, sTop.Height)

	c := a.captionExtent(m)
	tBot, sBot := a.titleExtents(Bottom, m)
	bottom := y0 + box.Height() - c.Height
	add(KindTitle, Bottom, a.titles[Bottom], st.TitleSize, x0+mg.Inset.Left, bottom-sBot.Height-tBot.Height, innerW, tBot.Height)
	add(KindSubtitle, Bottom, a.subtitles[Bottom], st.SubtitleSize, x0+mg.Inset.Left, bottom-sBot.Height, innerW, sBot.Height)

	tL, sL := a.titleExtents(Left, m)
	add(KindTitle, Left, a.titles[Left], st.TitleSize, x0, y0+mg.Inset.Top, tL.Width, innerH)
	add(KindSubtitle, Left, a.subtitles[Left], st.SubtitleSize, x0+tL.Width, y0+mg.Inset.Top, sL.Width, innerH)

	tR, sR := a.titleExtents(Right, m)
	right := x0 + box.Width()
	add(KindTitle, Right, a.titles[Right], st.TitleSize, right-sR.Width-tR.Width, y0+mg.Inset.Top, tR.Width, innerH)
	add(KindSubtitle, Right, a.subtitles[Right], st.SubtitleSize, right-sR.Width, y0+mg.Inset.Top, sR.Width, innerH)

	add(KindCaption, Bottom, a.caption, st.CaptionSize, x0, bottom, box.Width(), c.Height)
	return out
}

// TagPlacement positions the tag of the child at tag position pos inside
// the child's box and returns the box left for the child itself.
func (a Annotation) TagPlacement(pos int, leaf bool, box area.Area, m fonts.Measurer) (Placement, area.Area, bool, error) {
	tm := a.TagMargins(pos, leaf, m)
	if tm.IsZero() {
		return Placement{}, box, false, nil
	}
	inner, err := box.Inset(tm.Inset)
	if err != nil {
		return Placement{}, area.Area{}, false, err
	}
	st := a.Style()
	side := a.TagsLoc()
	p := Placement{Kind: KindTag, Side: side, Label: a.Tag(pos), Size: st.TagSize}
	switch side {
	case Top:
		p.X, p.Y, p.W, p.H = box.X(), box.Y(), box.Width(), tm.Inset.Top
	case Bottom:
		p.X, p.Y, p.W, p.H = box.X(), inner.Bottom(), box.Width(), tm.Inset.Bottom
	case Left:
		p.X, p.Y, p.W, p.H = box.X(), box.Y(), tm.Inset.Left, box.Height()
	case Right:
		p.X, p.Y, p.W, p.H = inner.Right(), box.Y(), tm.Inset.Right, box.Height()
	}
	return p, inner, true, nil
}
