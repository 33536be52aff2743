package window

import (
	"math"
	"testing"
)

func TestGaussianShape(t *testing.T) {
	w, err := Gaussian(7, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w) != 7 {
		t.Fatalf("len=%d, want 7", len(w))
	}
	if w[3] != 1 {
		t.Fatalf("centre tap = %v, want 1", w[3])
	}
	for i := 0; i < 3; i++ {
		if math.Abs(w[i]-w[6-i]) > 1e-15 {
			t.Fatalf("asymmetric taps %d/%d: %v vs %v", i, 6-i, w[i], w[6-i])
		}
		if w[i] >= w[i+1] {
			t.Fatalf("taps not increasing towards centre at %d", i)
		}
	}
}

func TestGaussianErrors(t *testing.T) {
	if _, err := Gaussian(0, 1); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := Gaussian(5, 0); err == nil {
		t.Fatal("expected error for zero sigma")
	}
	if _, err := Gaussian(5, math.NaN()); err == nil {
		t.Fatal("expected error for NaN sigma")
	}
}

func TestCausalMask(t *testing.T) {
	m, err := CausalMask(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 0, 1, 1, 1}
	for i := range want {
		if m[i] != want[i] {
			t.Fatalf("mask = %v, want %v", m, want)
		}
	}

	if _, err := CausalMask(4); err == nil {
		t.Fatal("expected error for even size")
	}
}

func TestHalfGaussian(t *testing.T) {
	w, err := HalfGaussian(30, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w) != 61 {
		t.Fatalf("len=%d, want 61", len(w))
	}

	sum := 0.0
	for i, v := range w {
		if i < 30 && v != 0 {
			t.Fatalf("tap %d before centre = %v, want 0", i, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("sum=%v, want 1", sum)
	}
	if w[30] <= w[31] {
		t.Fatalf("centre tap %v should be the largest (next %v)", w[30], w[31])
	}
}

func TestHalfGaussianIdentity(t *testing.T) {
	w, err := HalfGaussian(0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w) != 1 || w[0] != 1 {
		t.Fatalf("got %v, want [1]", w)
	}
}

func TestNormalize(t *testing.T) {
	w := []float64{1, 3}
	if err := Normalize(w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w[0] != 0.25 || w[1] != 0.75 {
		t.Fatalf("got %v", w)
	}
	if err := Normalize([]float64{0, 0}); err == nil {
		t.Fatal("expected error for zero sum")
	}
	if err := Normalize(nil); err == nil {
		t.Fatal("expected error for empty coeffs")
	}
}
