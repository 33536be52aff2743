package interp

import (
	"errors"
	"math"
	"testing"
)

func TestLinear2(t *testing.T) {
	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("got %v want 2.5", got)
	}
}

func TestLinear(t *testing.T) {
	xs := []float64{0, 1, 3}
	ys := []float64{0, 10, 30}

	tests := []struct {
		name string
		q    float64
		want float64
	}{
		{name: "first sample", q: 0, want: 0},
		{name: "last sample", q: 3, want: 30},
		{name: "inside uniform", q: 0.5, want: 5},
		{name: "inside wide gap", q: 2, want: 20},
		{name: "exact middle sample", q: 1, want: 10},
		{name: "before support", q: -0.1, want: math.NaN()},
		{name: "after support", q: 3.0001, want: math.NaN()},
		{name: "nan query", q: math.NaN(), want: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Linear(xs, ys, []float64{tt.q})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.IsNaN(tt.want) {
				if !math.IsNaN(got[0]) {
					t.Fatalf("got %v, want NaN", got[0])
				}
				return
			}
			if math.Abs(got[0]-tt.want) > 1e-12 {
				t.Fatalf("got %v, want %v", got[0], tt.want)
			}
		})
	}
}

func TestLinearErrors(t *testing.T) {
	if _, err := Linear([]float64{0, 1}, []float64{0}, []float64{0.5}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := Linear(nil, nil, []float64{0.5}); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
	if err := LinearTo(make([]float64, 1), []float64{0, 1}, []float64{0, 1}, []float64{0, 1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch for dst, got %v", err)
	}
}
