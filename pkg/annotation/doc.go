// Package annotation describes the text decorations of a figure node:
// titles and subtitles on any side, a caption below everything, and tags
// labelling the node's children.
//
// Decorations only matter to sizing through the margins they reserve.
// [Annotation.Margins] reports the space titles and captions take around a
// node, and [Annotation.TagMargins] the space a tag takes around a child.
//
// # Tags
//
// Tags are declared per nesting level. A level is either an automatic
// style ("0", "1", "a", "A", "i", "I") or an explicit list of labels:
//
//	ann, err := annotation.New(
//	    annotation.Tags(annotation.Auto("A"), annotation.Auto("1")),
//	    annotation.TagsFormat("Fig {0}", "Fig {0}.{1}"),
//	)
//
// With two levels the node's children that are themselves nodes pass the
// second level down, so their children are tagged "Fig A.1", "Fig A.2" and
// so on. Each format uses {k} for the label of level k; the defaults are
// "{0}", "{0}.{1}", "{0}.{1}.{2}", ...
package annotation
