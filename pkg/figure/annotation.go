package figure

import (
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/plotgrid/pkg/annotation"
	"github.com/matzehuels/plotgrid/pkg/errors"
)

type annotationFile struct {
	Title    map[string]string `yaml:"title"`
	Subtitle map[string]string `yaml:"subtitle"`
	Caption  string            `yaml:"caption"`
	Tags     *tagsFile         `yaml:"tags"`
	Style    *styleFile        `yaml:"style"`
}

type tagsFile struct {
	// Each level is an auto style ("A", "1", ...) or a list of labels.
	Levels  []yaml.Node `yaml:"levels"`
	Format  []string    `yaml:"format"`
	Loc     string      `yaml:"loc"`
	Order   string      `yaml:"order"`
	Inherit string      `yaml:"inherit"`
}

type styleFile struct {
	TitleSize    float64  `yaml:"title_size"`
	SubtitleSize float64  `yaml:"subtitle_size"`
	CaptionSize  float64  `yaml:"caption_size"`
	TagSize      float64  `yaml:"tag_size"`
	Pad          *float64 `yaml:"pad"`
}

func (f *annotationFile) build() (annotation.Annotation, error) {
	var opts []annotation.Option
	for side, label := range f.Title {
		s, err := annotation.ParseSide(side)
		if err != nil {
			return annotation.Annotation{}, err
		}
		opts = append(opts, annotation.Title(s, label))
	}
	for side, label := range f.Subtitle {
		s, err := annotation.ParseSide(side)
		if err != nil {
			return annotation.Annotation{}, err
		}
		opts = append(opts, annotation.Subtitle(s, label))
	}
	if f.Caption != "" {
		opts = append(opts, annotation.Caption(f.Caption))
	}
	if f.Tags != nil {
		tagOpts, err := f.Tags.options()
		if err != nil {
			return annotation.Annotation{}, err
		}
		opts = append(opts, tagOpts...)
	}
	if f.Style != nil {
		opts = append(opts, annotation.WithStyle(f.Style.style()))
	}
	return annotation.New(opts...)
}

func (t *tagsFile) options() ([]annotation.Option, error) {
	levels := make([]annotation.TagLevel, 0, len(t.Levels))
	for i := range t.Levels {
		n := &t.Levels[i]
		switch n.Kind {
		case yaml.ScalarNode:
			levels = append(levels, annotation.Auto(n.Value))
		case yaml.SequenceNode:
			var labels []string
			if err := n.Decode(&labels); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "tags.levels[%d]", i)
			}
			levels = append(levels, annotation.Labels(labels...))
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "tags.levels[%d] must be a style or a list of labels", i)
		}
	}
	opts := []annotation.Option{annotation.Tags(levels...)}
	if len(t.Format) > 0 {
		opts = append(opts, annotation.TagsFormat(t.Format...))
	}
	if t.Loc != "" {
		side, err := annotation.ParseSide(t.Loc)
		if err != nil {
			return nil, err
		}
		opts = append(opts, annotation.TagsLoc(side))
	}
	order, err := annotation.ParseOrder(t.Order)
	if err != nil {
		return nil, err
	}
	inherit, err := annotation.ParseInherit(t.Inherit)
	if err != nil {
		return nil, err
	}
	return append(opts, annotation.TagsOrder(order), annotation.TagsInherit(inherit)), nil
}

// style fills unset sizes from the defaults.
func (s *styleFile) style() annotation.Style {
	st := annotation.DefaultStyle()
	for _, f := range []struct {
		v   float64
		dst *float64
	}{
		{s.TitleSize, &st.TitleSize},
		{s.SubtitleSize, &st.SubtitleSize},
		{s.CaptionSize, &st.CaptionSize},
		{s.TagSize, &st.TagSize},
	} {
		if f.v > 0 {
			*f.dst = f.v
		}
	}
	if s.Pad != nil {
		st.Pad = *s.Pad
	}
	return st
}
