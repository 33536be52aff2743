// Package window generates the smoothing kernels used for rate estimation.
//
// Kernels are expressed in samples: a sigma of 10 means ten bins. Convert from
// seconds by dividing by the bin width before calling into this package.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Gaussian returns size samples of exp(-0.5*((n-c)/sigma)^2) centred on
// c = (size-1)/2. The peak is 1 for odd sizes.
func Gaussian(size int, sigma float64) ([]float64, error) {
	if err := validateGauss(size, sigma); err != nil {
		return nil, err
	}

	out := make([]float64, size)
	c := float64(size-1) / 2
	for i := range out {
		x := (float64(i) - c) / sigma
		out[i] = math.Exp(-0.5 * x * x)
	}

	return out, nil
}

// CausalMask returns an odd-length mask that is 0 before the centre tap and 1
// from the centre tap onwards.
//
// Under centred ("same") convolution y[n] = sum_k h[k] x[n+c-k], a tap k
// below the centre c reads x at a later index than n. Multiplying a kernel by
// this mask therefore keeps only present and past input samples.
func CausalMask(size int) ([]float64, error) {
	if err := validateOddLength(size); err != nil {
		return nil, err
	}

	out := make([]float64, size)
	for i := size / 2; i < size; i++ {
		out[i] = 1
	}

	return out, nil
}

// HalfGaussian returns a causal half-Gaussian kernel of length 2*half+1 with
// unit sum. Taps before the centre are zero.
func HalfGaussian(half int, sigma float64) ([]float64, error) {
	if half < 0 {
		return nil, validateLength(half)
	}

	size := 2*half + 1
	w, err := Gaussian(size, sigma)
	if err != nil {
		return nil, err
	}

	mask, err := CausalMask(size)
	if err != nil {
		return nil, err
	}

	vecmath.MulBlockInPlace(w, mask)

	if err := Normalize(w); err != nil {
		return nil, err
	}

	return w, nil
}

// Normalize scales coeffs in place so they sum to 1.
func Normalize(coeffs []float64) error {
	if len(coeffs) == 0 {
		return errEmptyCoeffs
	}

	sum := floats.Sum(coeffs)
	if sum == 0 {
		return errZeroSum
	}

	floats.Scale(1/sum, coeffs)
	return nil
}
