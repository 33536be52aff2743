package conv

import (
	"errors"
	"fmt"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// Mode specifies the output mode for convolution.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input.
	ModeSame

	// ModeValid returns only the portion where signals fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

// directThreshold is the longest kernel convolved in the time domain.
const directThreshold = 64

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// This is an O(N*M) algorithm suitable for short kernels.
// For longer kernels, use [FFT].
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	for i := range dst {
		dst[i] = 0
	}

	for i, av := range a {
		if av == 0 {
			continue
		}
		out := dst[i : i+len(b)]
		for j, bv := range b {
			out[j] += av * bv
		}
	}
}

// Convolve performs linear convolution with automatic algorithm selection.
// For short kernels (<= 64 samples), uses direct convolution.
// For longer kernels, uses a single-block FFT.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	// Ensure a is the longer signal for efficient processing
	if len(b) > len(a) {
		a, b = b, a
	}

	if len(b) <= directThreshold {
		return Direct(a, b)
	}

	return FFTConvolve(a, b)
}

// ConvolveMode performs convolution with specified output mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(a), len(b), mode), nil
}

// trimToMode extracts the appropriate portion of a full convolution result.
func trimToMode(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeFull:
		return full
	case ModeSame:
		// Center the result to match length of first input
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeValid:
		// Return only fully overlapping portion
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}
		return full[lenA-1 : lenB]
	default:
		return full
	}
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Plan convolves many equal-length inputs with one kernel, choosing direct or
// FFT convolution once from the kernel length.
type Plan struct {
	kernel   []float64
	inputLen int
	fft      *FFT
}

// NewPlan prepares convolution of inputLen-sample inputs with kernel.
func NewPlan(kernel []float64, inputLen int) (*Plan, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if inputLen <= 0 {
		return nil, ErrEmptyInput
	}

	p := &Plan{
		kernel:   append([]float64(nil), kernel...),
		inputLen: inputLen,
	}
	if len(kernel) > directThreshold {
		f, err := NewFFT(kernel, inputLen)
		if err != nil {
			return nil, err
		}
		p.fft = f
	}

	return p, nil
}

// UsesFFT reports whether the plan convolves in the frequency domain.
func (p *Plan) UsesFFT() bool {
	return p.fft != nil
}

// Convolve convolves input with the planned kernel and trims to mode.
func (p *Plan) Convolve(input []float64, mode Mode) ([]float64, error) {
	if len(input) != p.inputLen {
		return nil, fmt.Errorf("%w: planned %d, got %d", ErrLengthMismatch, p.inputLen, len(input))
	}
	if p.fft != nil {
		return p.fft.ProcessMode(input, mode)
	}

	full := make([]float64, len(input)+len(p.kernel)-1)
	DirectTo(full, input, p.kernel)
	return trimToMode(full, len(input), len(p.kernel), mode), nil
}
