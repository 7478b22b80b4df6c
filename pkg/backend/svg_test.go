package backend

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

const graphvizLike = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN"
 "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<!-- Generated by graphviz -->
<svg width="224pt" height="152pt"
 viewBox="0.00 0.00 224.00 152.00" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">
<g id="graph0" class="graph"><polygon fill="white" stroke="none" points="-4,4 -4,-148 220,-148 220,4 -4,4"/></g>
</svg>
`

func TestParseDocument(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	tests := []struct {
		name    string
		in      string
		want    Document
		wantErr errors.Code
	}{
		{
			name: "graphviz output",
			in:   graphvizLike,
			want: Document{
				ViewBox: ViewBox{W: 224, H: 152},
				Width:   224.0 / 72,
				Height:  152.0 / 72,
			},
		},
		{
			name: "viewBox only",
			in:   `<svg viewBox="1 2 30 40"><g/></svg>`,
			want: Document{ViewBox: ViewBox{X: 1, Y: 2, W: 30, H: 40}},
		},
		{
			name: "inches",
			in:   `<svg width="2in" height="1in" viewBox="0 0 10 5"></svg>`,
			want: Document{ViewBox: ViewBox{W: 10, H: 5}, Width: 2, Height: 1},
		},
		{
			name: "size only",
			in:   `<svg width="96" height="48"/>`,
			want: Document{ViewBox: ViewBox{W: 96, H: 48}, Width: 1, Height: 0.5},
		},
		{name: "no root", in: `<g/>`, wantErr: errors.ErrCodeInvalidFormat},
		{name: "no geometry", in: `<svg></svg>`, wantErr: errors.ErrCodeInvalidFormat},
		{name: "unterminated", in: `<svg viewBox="0 0 1 1"><g>`, wantErr: errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDocument([]byte(tt.in))
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDocument: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, approx, cmpopts.IgnoreFields(Document{}, "Body")); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseDocumentBody(t *testing.T) {
	doc, err := ParseDocument([]byte(graphvizLike))
	if err != nil {
		t.Fatal(err)
	}
	body := string(doc.Body)
	if !strings.Contains(body, `<g id="graph0"`) || strings.Contains(body, "<svg") || strings.Contains(body, "</svg>") {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestNest(t *testing.T) {
	f := Fragment{SVG: []byte(graphvizLike), Width: 224.0 / 72, Height: 152.0 / 72}
	out, err := Nest(f, 10, 20, 300, 200)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	for _, want := range []string{
		`x="10.000"`, `y="20.000"`, `width="300.000"`, `height="200.000"`,
		`viewBox="0 0 224 152"`, `preserveAspectRatio="none"`, `<g id="graph0"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("nested svg missing %s:\n%s", want, s)
		}
	}
	if strings.Contains(s, "DOCTYPE") {
		t.Error("doctype leaked into nested fragment")
	}
}

func TestStandaloneRoundTrip(t *testing.T) {
	out := Standalone(ViewBox{W: 50, H: 25}, 2, 1, []byte("<g/>"))
	doc, err := ParseDocument(out)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(doc.Width-2) > 1e-3 || math.Abs(doc.Height-1) > 1e-3 {
		t.Errorf("size = %vx%v, want 2x1", doc.Width, doc.Height)
	}
	if doc.ViewBox != (ViewBox{W: 50, H: 25}) {
		t.Errorf("viewBox = %v", doc.ViewBox)
	}
}
