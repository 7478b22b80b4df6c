package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/plotgrid/pkg/design"
	"github.com/matzehuels/plotgrid/pkg/errors"
)

func TestBuildDesign(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		n     int
		ncol  int
		nrow  int
		opts  []design.Option
		cells [][]string
	}{
		{
			name:  "slash rows",
			text:  "AAB/CCB",
			cells: [][]string{{"A", "A", "B"}, {"C", "C", "B"}},
		},
		{
			name:  "escaped newline with gap",
			text:  `AB\nC#`,
			cells: [][]string{{"A", "B"}, {"C", "."}},
		},
		{
			name:  "default grid",
			n:     5,
			cells: [][]string{{"A", "B"}, {"C", "D"}, {"E", "."}},
		},
		{
			name:  "by column",
			n:     4,
			ncol:  2,
			opts:  []design.Option{design.ByColumn()},
			cells: [][]string{{"A", "C"}, {"B", "D"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := buildDesign(tt.text, tt.n, tt.ncol, tt.nrow, tt.opts)
			if err != nil {
				t.Fatalf("buildDesign: %v", err)
			}
			v, err := newDesignView(spec)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.cells, v.cells()); diff != "" {
				t.Errorf("cells mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildDesignErrors(t *testing.T) {
	if _, err := buildDesign("", 0, 0, 0, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("no input: %v", err)
	}
	if _, err := buildDesign("AB", 2, 0, 0, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("text with -n: %v", err)
	}
	if _, err := buildDesign("A?", 0, 0, 0, nil); !errors.Is(err, errors.ErrCodeDesignParse) {
		t.Errorf("bad text: %v", err)
	}
}

func TestDesignViewRows(t *testing.T) {
	spec, err := design.Parse("BA\nCC", design.WithRelWidths(3, 1))
	if err != nil {
		t.Fatal(err)
	}
	v, err := newDesignView(spec)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := v.rows()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"1", "B", "r1 c1", "1x1", "0.000, 0.000", "0.750 x 0.500"},
		{"2", "A", "r1 c2", "1x1", "0.750, 0.000", "0.250 x 0.500"},
		{"3", "C", "r2 c1", "2x1", "0.000, 0.500", "1.000 x 0.500"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestDesignViewNavigation(t *testing.T) {
	spec, err := design.Parse("AB\nCD")
	if err != nil {
		t.Fatal(err)
	}
	v, err := newDesignView(spec)
	if err != nil {
		t.Fatal(err)
	}

	var m tea.Model = v
	press := func(key tea.KeyType) {
		m, _ = m.Update(tea.KeyMsg{Type: key})
	}
	press(tea.KeyRight)
	press(tea.KeyRight)
	if got := m.(designView).cursor; got != 2 {
		t.Errorf("cursor after 2 steps = %d, want 2", got)
	}
	press(tea.KeyLeft)
	press(tea.KeyLeft)
	press(tea.KeyLeft)
	if got := m.(designView).cursor; got != 3 {
		t.Errorf("cursor should wrap to the last item, got %d", got)
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd == nil {
		t.Error("esc should quit")
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestLabel(t *testing.T) {
	for i, want := range map[int]string{0: "A", 25: "Z", 26: "27"} {
		if got := label(i); got != want {
			t.Errorf("label(%d) = %q, want %q", i, got, want)
		}
	}
}
