package correct

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/plotgrid/pkg/backend"
	"github.com/matzehuels/plotgrid/pkg/config"
	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/plot"
	"github.com/matzehuels/plotgrid/pkg/units"
)

var leaf = plot.Text{Label: "leaf"}

// linear renders at k times the request.
func linear(kw, kh float64) backend.Renderer {
	return backend.Func(func(_ context.Context, _ plot.Leaf, w, h, _ float64) (backend.Fragment, error) {
		return backend.Fragment{Width: kw * w, Height: kh * h}, nil
	})
}

// constant ignores the request.
func constant(w, h float64) backend.Renderer {
	return backend.Func(func(context.Context, plot.Leaf, float64, float64, float64) (backend.Fragment, error) {
		return backend.Fragment{Width: w, Height: h}, nil
	})
}

func defaults() Options {
	return FromConfig(config.Default(), true)
}

func TestLinearBackendConvergesInOneIteration(t *testing.T) {
	desired := units.Size{W: 5, H: 4}
	for _, k := range []float64{0.25, 0.9, 1.5, 3, 10} {
		t.Run(fmt.Sprint(k), func(t *testing.T) {
			opts := defaults()
			opts.Eps = 1e-9
			res, err := Correct(context.Background(), linear(k, k), leaf, desired, 96, opts)
			if err != nil {
				t.Fatalf("Correct: %v", err)
			}
			if !res.Converged {
				t.Fatal("not converged")
			}
			if res.Iterations != 1 {
				t.Errorf("iterations = %d, want 1", res.Iterations)
			}
			want := desired.Scale(1 / k)
			if math.Abs(res.Request.W-want.W) > 1e-12 || math.Abs(res.Request.H-want.H) > 1e-12 {
				t.Errorf("request = %v, want %v", res.Request, want)
			}
			if math.Abs(res.Ratio.W-1/k) > 1e-12 {
				t.Errorf("ratio = %v, want %v", res.Ratio.W, 1/k)
			}
		})
	}
}

func TestAnisotropicLinearBackend(t *testing.T) {
	res, err := Correct(context.Background(), linear(2, 0.5), leaf, units.Size{W: 4, H: 4}, 96, defaults())
	if err != nil {
		t.Fatal(err)
	}
	if res.Iterations != 1 || res.Request != (units.Size{W: 2, H: 8}) {
		t.Errorf("got %+v", res)
	}
}

func TestExactBackendNeedsNoCorrection(t *testing.T) {
	res, err := Correct(context.Background(), linear(1, 1), leaf, units.Size{W: 3, H: 2}, 96, defaults())
	if err != nil {
		t.Fatal(err)
	}
	if res.Iterations != 0 || res.Renders != 1 {
		t.Errorf("iterations = %d renders = %d, want 0 and 1", res.Iterations, res.Renders)
	}
	if res.Request != (units.Size{W: 3, H: 2}) {
		t.Errorf("request = %v", res.Request)
	}
}

func TestConstantBackendStopsAtMaxIter(t *testing.T) {
	opts := defaults()
	opts.MaxIter = 7

	calls := 0
	counting := backend.Func(func(ctx context.Context, l plot.Leaf, w, h, dpi float64) (backend.Fragment, error) {
		calls++
		return constant(2, 2).Render(ctx, l, w, h, dpi)
	})

	// The request grows every step, so the pixel floor is never hit.
	_, err := Correct(context.Background(), counting, leaf, units.Size{W: 4, H: 4}, 96, opts)
	if !errors.Is(err, errors.ErrCodeTooManyIterations) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeTooManyIterations)
	}
	var ce *errors.ConvergenceError
	if !stderrors.As(err, &ce) {
		t.Fatalf("err is %T, want *errors.ConvergenceError", err)
	}
	if calls != opts.MaxIter {
		t.Errorf("backend calls = %d, want %d", calls, opts.MaxIter)
	}
	if ce.Desired != (errors.Size{Width: 4, Height: 4}) {
		t.Errorf("desired = %v", ce.Desired)
	}
}

func TestShrinkingRequestHitsMinimumSize(t *testing.T) {
	// A 10in result for a 1in request shrinks the next request to 0.1in,
	// under 10px at 96 dpi.
	_, err := Correct(context.Background(), constant(10, 10), leaf, units.Size{W: 1, H: 1}, 96, defaults())
	if !errors.Is(err, errors.ErrCodeBelowMinimumSize) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeBelowMinimumSize)
	}
}

func TestNonStrictReportsRatio(t *testing.T) {
	opts := defaults()
	opts.Strict = false
	res, err := Correct(context.Background(), constant(10, 5), leaf, units.Size{W: 1, H: 1}, 96, opts)
	if err != nil {
		t.Fatalf("non-strict should not fail: %v", err)
	}
	if res.Converged {
		t.Fatal("should not converge")
	}
	if res.Reason != errors.ErrCodeBelowMinimumSize {
		t.Errorf("reason = %s", res.Reason)
	}
	if res.Ratio != (units.Size{W: 0.1, H: 0.2}) {
		t.Errorf("ratio = %v, want 0.1x0.2", res.Ratio)
	}
}

func TestBackendErrorPropagates(t *testing.T) {
	boom := stderrors.New("boom")
	r := backend.Func(func(context.Context, plot.Leaf, float64, float64, float64) (backend.Fragment, error) {
		return backend.Fragment{}, boom
	})
	for _, strict := range []bool{true, false} {
		opts := defaults()
		opts.Strict = strict
		if _, err := Correct(context.Background(), r, leaf, units.Size{W: 1, H: 1}, 96, opts); !stderrors.Is(err, boom) {
			t.Errorf("strict=%v: err = %v, want boom", strict, err)
		}
	}
}

func TestZeroActualSizeIsRenderFailure(t *testing.T) {
	_, err := Correct(context.Background(), constant(0, 1), leaf, units.Size{W: 1, H: 1}, 96, defaults())
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("err = %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Correct(ctx, linear(2, 2), leaf, units.Size{W: 1, H: 1}, 96, defaults())
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if res.Renders != 0 {
		t.Errorf("renders = %d, want 0", res.Renders)
	}
}

func TestInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		desired units.Size
		dpi     float64
		mutate  func(*Options)
	}{
		{"zero width", units.Size{W: 0, H: 1}, 96, nil},
		{"zero dpi", units.Size{W: 1, H: 1}, 0, nil},
		{"zero max iter", units.Size{W: 1, H: 1}, 96, func(o *Options) { o.MaxIter = 0 }},
		{"zero eps", units.Size{W: 1, H: 1}, 96, func(o *Options) { o.Eps = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaults()
			if tt.mutate != nil {
				tt.mutate(&opts)
			}
			_, err := Correct(context.Background(), linear(1, 1), leaf, tt.desired, tt.dpi, opts)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}
