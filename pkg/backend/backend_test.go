package backend

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/fonts"
	"github.com/matzehuels/plotgrid/pkg/observability"
	"github.com/matzehuels/plotgrid/pkg/plot"
)

type fakeLeaf struct{ kind string }

func (f fakeLeaf) Kind() string        { return f.kind }
func (f fakeLeaf) Fingerprint() string { return "fp-" + f.kind }

func echo(ctx context.Context, leaf plot.Leaf, w, h, dpi float64) (Fragment, error) {
	return Fragment{SVG: []byte(`<svg viewBox="0 0 1 1"></svg>`), Width: w, Height: h}, nil
}

func TestMuxDispatch(t *testing.T) {
	m := NewMux()
	m.Handle("fake", Func(echo))

	f, err := m.Render(context.Background(), fakeLeaf{"fake"}, 2, 3, 96)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if f.Width != 2 || f.Height != 3 {
		t.Errorf("size = %vx%v, want 2x3", f.Width, f.Height)
	}
	if !m.Supports("fake") || m.Supports("other") {
		t.Error("Supports reports wrong kinds")
	}
}

func TestMuxUnknownKind(t *testing.T) {
	m := NewMux()
	_, err := m.Render(context.Background(), fakeLeaf{"nope"}, 1, 1, 96)
	if !errors.Is(err, errors.ErrCodeUnsupportedChild) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeUnsupportedChild)
	}
	_, err = m.Render(context.Background(), nil, 1, 1, 96)
	if !errors.Is(err, errors.ErrCodeUnsupportedChild) {
		t.Errorf("nil leaf err = %v", err)
	}
}

type countingRenderHooks struct {
	observability.NoopRenderHooks
	mu       sync.Mutex
	started  int
	finished int
}

func (h *countingRenderHooks) OnRenderStart(context.Context, string) {
	h.mu.Lock()
	h.started++
	h.mu.Unlock()
}

func (h *countingRenderHooks) OnRenderComplete(context.Context, string, time.Duration, error) {
	h.mu.Lock()
	h.finished++
	h.mu.Unlock()
}

func TestMuxEmitsRenderHooks(t *testing.T) {
	defer observability.Reset()
	h := &countingRenderHooks{}
	observability.SetRenderHooks(h)

	m := NewMux()
	m.Handle("fake", Func(echo))
	for range 3 {
		if _, err := m.Render(context.Background(), fakeLeaf{"fake"}, 1, 1, 96); err != nil {
			t.Fatal(err)
		}
	}
	if h.started != 3 || h.finished != 3 {
		t.Errorf("hooks = %d/%d, want 3/3", h.started, h.finished)
	}
}

func TestDefaultMuxKinds(t *testing.T) {
	m := Default()
	for _, k := range []string{plot.KindDOT, plot.KindText, plot.KindImage} {
		if !m.Supports(k) {
			t.Errorf("default mux missing %q", k)
		}
	}
}

func TestCheckRequest(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		ok   bool
	}{
		{"valid", 1, 2, true},
		{"zero width", 0, 2, false},
		{"negative height", 1, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkRequest(context.Background(), tt.w, tt.h)
			if (err == nil) != tt.ok {
				t.Errorf("checkRequest(%v, %v) = %v", tt.w, tt.h, err)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := checkRequest(ctx, 1, 1); err == nil {
		t.Error("cancelled context should fail")
	}
}

func fixedMeasurer(w, h float64) fonts.Measurer {
	return fonts.MeasurerFunc(func(string, float64) fonts.Extent {
		return fonts.Extent{Width: w, Height: h}
	})
}

func TestTextRender(t *testing.T) {
	r := NewText(fixedMeasurer(100, 20))
	ctx := context.Background()

	// Min size is (100+12)x(20+12) points.
	wantMinW, wantMinH := 112.0/72, 32.0/72

	tests := []struct {
		name         string
		w, h         float64
		wantW, wantH float64
	}{
		{"fits", 3, 2, 3, 2},
		{"too narrow", 1, 2, wantMinW, 2},
		{"too small", 0.5, 0.1, wantMinW, wantMinH},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := r.Render(ctx, plot.Text{Label: "hello"}, tt.w, tt.h, 96)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if f.Width != tt.wantW || f.Height != tt.wantH {
				t.Errorf("size = %vx%v, want %vx%v", f.Width, f.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTextEscapesLabel(t *testing.T) {
	r := NewText(fixedMeasurer(10, 10))
	f, err := r.Render(context.Background(), plot.Text{Label: "a<b & c\nline two"}, 2, 2, 96)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(f.SVG)
	if !strings.Contains(svg, "a&lt;b &amp; c") {
		t.Errorf("label not escaped: %s", svg)
	}
	if strings.Count(svg, "<tspan") != 2 {
		t.Errorf("want one tspan per line: %s", svg)
	}
	if _, err := ParseDocument(f.SVG); err != nil {
		t.Errorf("output does not parse: %v", err)
	}
}

func TestTextRejectsOtherLeaves(t *testing.T) {
	_, err := NewText(nil).Render(context.Background(), plot.DOT{Source: "digraph{}"}, 1, 1, 96)
	if !errors.Is(err, errors.ErrCodeUnsupportedChild) {
		t.Errorf("err = %v", err)
	}
}

func TestImageRenderIsExact(t *testing.T) {
	src := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 20"><rect width="10" height="20"/></svg>`)
	f, err := Image{}.Render(context.Background(), plot.Image{SVG: src}, 4.5, 1.25, 96)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if f.Width != 4.5 || f.Height != 1.25 {
		t.Errorf("size = %vx%v, want 4.5x1.25", f.Width, f.Height)
	}
	svg := string(f.SVG)
	if !strings.Contains(svg, `viewBox="0 0 10 20"`) || !strings.Contains(svg, "<rect") {
		t.Errorf("unexpected output: %s", svg)
	}
	if strings.Contains(svg, "<?xml") {
		t.Error("prolog should be dropped")
	}
}

func TestImageRejectsInvalidSVG(t *testing.T) {
	_, err := Image{}.Render(context.Background(), plot.Image{SVG: []byte("not svg")}, 1, 1, 96)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v", err)
	}
}
