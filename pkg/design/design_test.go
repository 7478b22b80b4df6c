package design

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/plotgrid/pkg/errors"
)

func TestFromMatrix(t *testing.T) {
	s, err := FromMatrix([][]Cell{
		Row(0, 0, 1),
		Row(2, -1, 1),
	})
	if err != nil {
		t.Fatalf("FromMatrix() error = %v", err)
	}
	if s.NumItems() != 3 {
		t.Errorf("NumItems() = %d, want 3", s.NumItems())
	}
	if s.NRow() != 2 || s.NCol() != 3 {
		t.Errorf("shape = %dx%d, want 2x3", s.NRow(), s.NCol())
	}
	if !s.Cell(1, 1).IsGap() {
		t.Error("Cell(1,1) should be a gap")
	}
	if diff := cmp.Diff([]float64{1, 1, 1}, s.RelWidths()); diff != "" {
		t.Errorf("RelWidths() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromMatrixErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]Cell
		opts []Option
		code errors.Code
	}{
		{"missing index", [][]Cell{Row(0, 2, 3)}, nil, errors.ErrCodeDesignMatrix},
		{"offset indices", [][]Cell{Row(1, 2)}, nil, errors.ErrCodeDesignMatrix},
		{"negative index", [][]Cell{{Index(-2), Index(0)}}, nil, errors.ErrCodeDesignMatrix},
		{"ragged rows", [][]Cell{Row(0, 1), Row(2)}, nil, errors.ErrCodeDesignMatrix},
		{"empty", nil, nil, errors.ErrCodeDesignMatrix},
		{"only gaps", [][]Cell{Row(-1, -1)}, nil, errors.ErrCodeDesignMatrix},
		{"width count", [][]Cell{Row(0, 1)}, []Option{WithRelWidths(1, 2, 3)}, errors.ErrCodeLayoutMismatch},
		{"height count", [][]Cell{Row(0, 1)}, []Option{WithRelHeights(1, 2)}, errors.ErrCodeLayoutMismatch},
		{"zero weight", [][]Cell{Row(0, 1)}, []Option{WithRelWidths(1, 0)}, errors.ErrCodeLayoutMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMatrix(tt.rows, tt.opts...)
			if !errors.Is(err, tt.code) {
				t.Errorf("FromMatrix() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestFromInts(t *testing.T) {
	s, err := FromInts([][]int{{0, 1}, {2, 2}})
	if err != nil {
		t.Fatalf("FromInts() error = %v", err)
	}
	if s.NumItems() != 3 {
		t.Errorf("NumItems() = %d, want 3", s.NumItems())
	}

	_, err = FromInts([][]int{{0, -1}})
	if !errors.Is(err, errors.ErrCodeDesignMatrix) {
		t.Errorf("FromInts(negative) error = %v, want %s", err, errors.ErrCodeDesignMatrix)
	}
}

func TestFromOptional(t *testing.T) {
	zero, one := 0, 1
	s, err := FromOptional([][]*int{{&zero, nil}, {&one, &one}})
	if err != nil {
		t.Fatalf("FromOptional() error = %v", err)
	}
	want, _ := Parse("A#\nBB")
	if !s.Equal(want) {
		t.Errorf("FromOptional() = %v, want %v", s, want)
	}
}

func TestFromRowPromotesToSingleRow(t *testing.T) {
	s, err := FromRow(Row(0, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if s.NRow() != 1 || s.NCol() != 3 {
		t.Errorf("shape = %dx%d, want 1x3", s.NRow(), s.NCol())
	}
}

func TestGrid(t *testing.T) {
	tests := []struct {
		name       string
		ncol, nrow int
		opts       []Option
		wantCol    int
		wantRow    int
		wantErr    errors.Code
	}{
		{name: "both set", ncol: 2, nrow: 3, wantCol: 2, wantRow: 3},
		{name: "implied by widths", opts: []Option{WithRelWidths(1, 2)}, wantCol: 2},
		{name: "implied by heights", ncol: 1, opts: []Option{WithRelHeights(1, 1, 1)}, wantCol: 1, wantRow: 3},
		{name: "negative", ncol: -1, wantErr: errors.ErrCodeInvalidInput},
		{name: "mismatch", ncol: 3, opts: []Option{WithRelWidths(1, 2)}, wantErr: errors.ErrCodeLayoutMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Grid(tt.ncol, tt.nrow, tt.opts...)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Grid() error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Grid() error = %v", err)
			}
			if !s.Deferred() {
				t.Error("Grid() should be deferred")
			}
			if s.NCol() != tt.wantCol || s.NRow() != tt.wantRow {
				t.Errorf("shape = ncol %d nrow %d, want %d %d", s.NCol(), s.NRow(), tt.wantCol, tt.wantRow)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		spec func() (Spec, error)
		n    int
		want string
	}{
		{"ncol byrow", func() (Spec, error) { return Grid(2, 0) }, 5, "AB\nCD\nE#"},
		{"ncol bycol", func() (Spec, error) { return Grid(2, 0, ByColumn()) }, 5, "AD\nBE\nC#"},
		{"nrow byrow", func() (Spec, error) { return Grid(0, 2) }, 3, "AB\nC#"},
		{"both", func() (Spec, error) { return Grid(3, 2) }, 4, "ABC\nD##"},
		{"default small", func() (Spec, error) { return Grid(0, 0) }, 3, "A\nB\nC"},
		{"default square", func() (Spec, error) { return Grid(0, 0) }, 4, "AB\nCD"},
		{"default five", func() (Spec, error) { return Grid(0, 0) }, 5, "AB\nCD\nE#"},
		{"resolved passthrough", func() (Spec, error) { return Parse("AB\nCC") }, 3, "AB\nCC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.spec()
			if err != nil {
				t.Fatal(err)
			}
			got, err := s.Resolve(tt.n)
			if err != nil {
				t.Fatalf("Resolve(%d) error = %v", tt.n, err)
			}
			if got.Deferred() {
				t.Fatal("Resolve() returned a deferred spec")
			}
			txt, err := got.Text()
			if err != nil {
				t.Fatal(err)
			}
			if txt != tt.want {
				t.Errorf("Resolve(%d) =\n%s\nwant\n%s", tt.n, txt, tt.want)
			}
		})
	}
}

func TestResolveKeepsWeights(t *testing.T) {
	g, err := Grid(0, 0, WithRelWidths(1, 3))
	if err != nil {
		t.Fatal(err)
	}
	s, err := g.Resolve(4)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{1, 3}, s.RelWidths()); diff != "" {
		t.Errorf("RelWidths() mismatch (-want +got):\n%s", diff)
	}
	if s.NRow() != 2 {
		t.Errorf("NRow() = %d, want 2", s.NRow())
	}
}

func TestResolveErrors(t *testing.T) {
	g, _ := Grid(2, 2)
	if _, err := g.Resolve(5); !errors.Is(err, errors.ErrCodeChildCount) {
		t.Errorf("Resolve(5) on 2x2 error = %v, want %s", err, errors.ErrCodeChildCount)
	}
	if _, err := g.Resolve(0); !errors.Is(err, errors.ErrCodeChildCount) {
		t.Errorf("Resolve(0) error = %v, want %s", err, errors.ErrCodeChildCount)
	}
	s, _ := Parse("AB")
	if _, err := s.Resolve(3); !errors.Is(err, errors.ErrCodeChildCount) {
		t.Errorf("Resolve(3) on 2 items error = %v, want %s", err, errors.ErrCodeChildCount)
	}
}

func TestDefault(t *testing.T) {
	for n, want := range map[int][2]int{1: {1, 1}, 3: {3, 1}, 4: {2, 2}, 7: {3, 3}, 10: {4, 3}} {
		s, err := Default(n)
		if err != nil {
			t.Fatalf("Default(%d) error = %v", n, err)
		}
		if s.NRow() != want[0] || s.NCol() != want[1] {
			t.Errorf("Default(%d) = %dx%d, want %dx%d", n, s.NRow(), s.NCol(), want[0], want[1])
		}
	}
}

func TestMatrixIsCopy(t *testing.T) {
	s, _ := Parse("AB")
	m := s.Matrix()
	m[0][0] = Gap()
	if s.Cell(0, 0).IsGap() {
		t.Error("mutating Matrix() result changed the spec")
	}
}
