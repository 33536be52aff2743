package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(-1, 1, 5)
	want := []float64{-1, -0.5, 0, 0.5, 1}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !NearlyEqual(got[i], want[i], 1e-12) {
			t.Fatalf("Linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got := Linspace(3, 7, 1); len(got) != 1 || got[0] != 3 {
		t.Fatalf("Linspace n=1 = %v, want [3]", got)
	}
	if got := Linspace(0, 1, 0); got != nil {
		t.Fatalf("Linspace n=0 = %v, want nil", got)
	}
}

func TestNaNHelpers(t *testing.T) {
	xs := []float64{1, math.NaN(), 3, math.NaN()}

	if got := Defined(xs); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("Defined = %v", got)
	}
	if got := NaNMean(xs); got != 2 {
		t.Fatalf("NaNMean = %v, want 2", got)
	}
	if got := NaNMean(NaNs(3)); !math.IsNaN(got) {
		t.Fatalf("NaNMean of all-NaN = %v, want NaN", got)
	}
	if IsFinite(math.Inf(1)) || IsFinite(math.NaN()) || !IsFinite(0) {
		t.Fatal("IsFinite misclassified a value")
	}
}

func TestMedian(t *testing.T) {
	if got := Median([]float64{3, 1, 2}); got != 2 {
		t.Fatalf("odd median = %v, want 2", got)
	}
	if got := Median([]float64{4, 1, 2, 3}); got != 2.5 {
		t.Fatalf("even median = %v, want 2.5", got)
	}
	if got := Median(nil); !math.IsNaN(got) {
		t.Fatalf("empty median = %v, want NaN", got)
	}
}

func TestMedianSpacing(t *testing.T) {
	ts := []float64{0, 0.01, 0.02, 0.035, 0.045}
	if got := MedianSpacing(ts); !NearlyEqual(got, 0.01, 1e-9) {
		t.Fatalf("MedianSpacing = %v, want 0.01", got)
	}
	if got := MedianSpacing([]float64{1}); !math.IsNaN(got) {
		t.Fatalf("MedianSpacing of one sample = %v, want NaN", got)
	}
}
