package layout

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/plotgrid/pkg/area"
	"github.com/matzehuels/plotgrid/pkg/design"
	"github.com/matzehuels/plotgrid/pkg/errors"
)

const eps = 1e-9

func mustParse(t *testing.T, text string, opts ...design.Option) design.Spec {
	t.Helper()
	s, err := design.Parse(text, opts...)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", text, err)
	}
	return s
}

func TestLocatePartition(t *testing.T) {
	spec := mustParse(t, `
		AAB
		AAB
		CCC
	`)
	got, err := Locate(spec, 300, 300)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	want := [][4]float64{
		{0, 0, 200, 200},
		{200, 0, 100, 200},
		{0, 200, 300, 100},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		a := got[i]
		if a.Kind() != area.Absolute {
			t.Errorf("area %d kind = %v", i, a.Kind())
		}
		wa, _ := area.NewAbsolute(w[0], w[1], w[2], w[3])
		if !a.Equal(wa, eps) {
			t.Errorf("area %d = %v, want %v", i, a, wa)
		}
		for _, v := range []float64{a.X(), a.Y(), a.Width(), a.Height()} {
			if r := math.Mod(v+eps, 100); r > 2*eps {
				t.Errorf("area %d coordinate %v is not a multiple of 100", i, v)
			}
		}
	}
}

func TestLocateWeighted(t *testing.T) {
	spec := mustParse(t, "AB\nCB", design.WithRelWidths(1, 3), design.WithRelHeights(3, 1))
	got, err := Locate(spec, 400, 200)
	if err != nil {
		t.Fatal(err)
	}
	want := [][4]float64{
		{0, 0, 100, 150},
		{100, 0, 300, 200},
		{0, 150, 100, 50},
	}
	for i, w := range want {
		wa, _ := area.NewAbsolute(w[0], w[1], w[2], w[3])
		if !got[i].Equal(wa, eps) {
			t.Errorf("area %d = %v, want %v", i, got[i], wa)
		}
	}
}

func TestLocateIgnoresGaps(t *testing.T) {
	spec := mustParse(t, "A#\n#B")
	got, err := Locate(spec, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := area.NewAbsolute(0, 0, 50, 50)
	b, _ := area.NewAbsolute(50, 50, 50, 50)
	if !got[0].Equal(a, eps) || !got[1].Equal(b, eps) {
		t.Errorf("Locate() = %v", got)
	}
}

func TestLocateAllowsOverlap(t *testing.T) {
	spec := mustParse(t, "AB\nBA")
	got, err := Locate(spec, 100, 100)
	if err != nil {
		t.Fatalf("overlapping footprints rejected: %v", err)
	}
	full, _ := area.NewAbsolute(0, 0, 100, 100)
	for i, a := range got {
		if !a.Equal(full, eps) {
			t.Errorf("area %d = %v, want full canvas", i, a)
		}
	}
}

func TestLocateDeferred(t *testing.T) {
	g, _ := design.Grid(2, 0)
	if _, err := Locate(g, 100, 100); !errors.Is(err, errors.ErrCodeDeferredLayout) {
		t.Errorf("Locate(deferred) error = %v, want %s", err, errors.ErrCodeDeferredLayout)
	}
	if _, err := Locate(design.Spec{}, 100, 100); !errors.Is(err, errors.ErrCodeDeferredLayout) {
		t.Errorf("Locate(zero) error = %v, want %s", err, errors.ErrCodeDeferredLayout)
	}
}

func TestLocateInvalidCanvas(t *testing.T) {
	spec := mustParse(t, "A")
	if _, err := Locate(spec, 0, 100); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Locate(0 width) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestYokogaki(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{"row", "ABC", []int{0, 1, 2}},
		{"reversed row", "CBA", []int{2, 1, 0}},
		{"column", "B\nA", []int{1, 0}},
		{"spanning", "BBA\nCDA", []int{1, 0, 2, 3}},
		{"gaps", "#A\nB#\n#C", []int{0, 1, 2}},
		{"tall left", "AB\nAC", []int{0, 1, 2}},
		{"tall right", "CA\nBA", []int{2, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Yokogaki(mustParse(t, tt.text))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Yokogaki() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestYokogakiInvariantToWeights(t *testing.T) {
	text := `
		DAB
		DCC
		EEF
	`
	base, err := Yokogaki(mustParse(t, text, design.WithRelWidths(1, 1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	for _, opts := range [][]design.Option{
		{design.WithRelWidths(1, 5, 9)},
		{design.WithRelWidths(9, 5, 1), design.WithRelHeights(100, 1, 0.01)},
		{design.WithRelHeights(1, 2, 3)},
	} {
		got, err := Yokogaki(mustParse(t, text, opts...))
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(base, got) {
			t.Errorf("Yokogaki() = %v, want %v", got, base)
		}
	}
}

// Reading order agrees with sorting by the relative top-left corners.
func TestYokogakiMatchesRelativePositions(t *testing.T) {
	spec := mustParse(t, "CAB\nDDB\nEFF", design.WithRelWidths(2, 1, 7), design.WithRelHeights(1, 4, 2))
	order, err := Yokogaki(spec)
	if err != nil {
		t.Fatal(err)
	}
	rel, err := Relative(spec)
	if err != nil {
		t.Fatal(err)
	}
	for k := 1; k < len(order); k++ {
		prev, cur := rel[order[k-1]], rel[order[k]]
		if prev.Y() > cur.Y() || (prev.Y() == cur.Y() && prev.X() >= cur.X()) {
			t.Errorf("order %v is not top-to-bottom, left-to-right at %d", order, k)
		}
	}
}
