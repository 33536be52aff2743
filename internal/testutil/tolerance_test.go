package testutil

import (
	"math"
	"testing"
)

func TestRequireSliceNearlyEqualMatchesNaN(t *testing.T) {
	nan := math.NaN()
	RequireSliceNearlyEqual(t, []float64{nan, 1, 2 + 1e-10}, []float64{nan, 1, 2}, 1e-9)
}

func TestRequireNaNPrefix(t *testing.T) {
	nan := math.NaN()
	RequireNaNPrefix(t, []float64{nan, nan, 0, 1}, 2)
	RequireNaNPrefix(t, []float64{0, 1}, 0)
	RequireNaNPrefix(t, []float64{nan}, 1)
}

func TestRequireFinite(t *testing.T) {
	RequireFinite(t, []float64{0, -1, math.MaxFloat64})
}
