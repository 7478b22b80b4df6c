package plot

import (
	"strings"
	"testing"
)

func TestFingerprints(t *testing.T) {
	tests := []struct {
		name string
		a, b Leaf
		same bool
	}{
		{"same dot", DOT{Source: "digraph{a}"}, DOT{Source: "digraph{a}"}, true},
		{"different dot", DOT{Source: "digraph{a}"}, DOT{Source: "digraph{b}"}, false},
		{"text default size", Text{Label: "x"}, Text{Label: "x", FontSize: DefaultFontSize}, true},
		{"text size", Text{Label: "x"}, Text{Label: "x", FontSize: 20}, false},
		{"kind separates", Text{Label: "digraph{a}"}, DOT{Source: "digraph{a}"}, false},
		{"image", Image{SVG: []byte("<svg/>")}, Image{SVG: []byte("<svg/>")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Fingerprint() == tt.b.Fingerprint(); got != tt.same {
				t.Errorf("fingerprints equal = %v, want %v", got, tt.same)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(Text{Label: "hello"})
	if !strings.HasPrefix(got, "text:") || len(got) != len("text:")+8 {
		t.Errorf("Describe() = %q", got)
	}
}
