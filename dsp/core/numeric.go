package core

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// NaNs returns a slice of length n filled with NaN.
func NaNs(n int) []float64 {
	out := make([]float64, n)
	FillNaN(out)
	return out
}

// FillNaN sets every element of dst to NaN.
func FillNaN(dst []float64) {
	nan := math.NaN()
	for i := range dst {
		dst[i] = nan
	}
}

// Linspace returns n evenly spaced values from start to stop inclusive.
// n == 1 returns []float64{start}.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}

	out := make([]float64, n)
	floats.Span(out, start, stop)
	return out
}

// Defined returns the non-NaN elements of xs in order.
func Defined(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// NaNMean returns the mean of the non-NaN elements of xs, or NaN if there are none.
func NaNMean(xs []float64) float64 {
	d := Defined(xs)
	if len(d) == 0 {
		return math.NaN()
	}
	return stat.Mean(d, nil)
}

// Median returns the median of the non-NaN elements of xs, or NaN if there are none.
// For an even count it is the midpoint of the two middle values, which neither
// stat.Quantile cumulant kind yields.
func Median(xs []float64) float64 {
	d := Defined(xs)
	if len(d) == 0 {
		return math.NaN()
	}
	sort.Float64s(d)
	mid := len(d) / 2
	if len(d)%2 == 1 {
		return d[mid]
	}
	return 0.5 * (d[mid-1] + d[mid])
}

// MedianSpacing returns the median difference between consecutive samples.
// It returns NaN for fewer than two samples.
func MedianSpacing(ts []float64) float64 {
	if len(ts) < 2 {
		return math.NaN()
	}

	diffs := make([]float64, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		diffs[i-1] = ts[i] - ts[i-1]
	}
	return Median(diffs)
}
