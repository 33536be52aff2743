package interp

import (
	"errors"
	"math"
	"sort"
)

// Errors returned by series interpolation.
var (
	ErrLengthMismatch = errors.New("interp: sample times and values differ in length")
	ErrEmptySeries    = errors.New("interp: empty series")
)

// Linear2 interpolates between x0 and x1 at frac in [0,1].
func Linear2(frac, x0, x1 float64) float64 {
	return x0 + frac*(x1-x0)
}

// Linear resamples the series (xs, ys) at the query points xq.
// xs must be strictly increasing. Queries outside [xs[0], xs[len-1]] are NaN.
func Linear(xs, ys, xq []float64) ([]float64, error) {
	out := make([]float64, len(xq))
	if err := LinearTo(out, xs, ys, xq); err != nil {
		return nil, err
	}
	return out, nil
}

// LinearTo is like [Linear] but writes into dst, which must have len(xq) elements.
func LinearTo(dst, xs, ys, xq []float64) error {
	if len(xs) != len(ys) {
		return ErrLengthMismatch
	}
	if len(xs) == 0 {
		return ErrEmptySeries
	}
	if len(dst) != len(xq) {
		return ErrLengthMismatch
	}

	lo, hi := xs[0], xs[len(xs)-1]
	for i, x := range xq {
		if math.IsNaN(x) || x < lo || x > hi {
			dst[i] = math.NaN()
			continue
		}

		j := sort.SearchFloat64s(xs, x)
		if xs[j] == x {
			dst[i] = ys[j]
			continue
		}

		x0, x1 := xs[j-1], xs[j]
		dst[i] = Linear2((x-x0)/(x1-x0), ys[j-1], ys[j])
	}

	return nil
}
