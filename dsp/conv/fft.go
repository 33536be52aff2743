package conv

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrLengthMismatch is returned when an input does not match the length a
// convolver was planned for.
var ErrLengthMismatch = errors.New("conv: input length mismatch")

// FFT convolves fixed-length inputs with one kernel in a single FFT block.
//
// The kernel spectrum and scratch buffers are computed once, so convolving
// many equal-length rows (for example one row per trial) costs one forward and
// one inverse transform per row. An FFT is not safe for concurrent use.
type FFT struct {
	kernelFFT []complex128
	kernelLen int
	inputLen  int
	fftSize   int

	plan    *algofft.Plan[complex128]
	scratch []complex128
}

// NewFFT plans FFT convolution of inputs with inputLen samples against kernel.
func NewFFT(kernel []float64, inputLen int) (*FFT, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if inputLen <= 0 {
		return nil, ErrEmptyInput
	}

	// Linear (not circular) convolution needs room for the full result.
	fftSize := nextPowerOf2(inputLen + len(kernel) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	f := &FFT{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: len(kernel),
		inputLen:  inputLen,
		fftSize:   fftSize,
		plan:      plan,
		scratch:   make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}
	if err := plan.Forward(f.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return f, nil
}

// FFTSize returns the transform length used internally.
func (f *FFT) FFTSize() int {
	return f.fftSize
}

// Process returns the full linear convolution of input with the kernel.
func (f *FFT) Process(input []float64) ([]float64, error) {
	if len(input) != f.inputLen {
		return nil, fmt.Errorf("%w: planned %d, got %d", ErrLengthMismatch, f.inputLen, len(input))
	}

	for i := range f.scratch {
		f.scratch[i] = 0
	}
	for i, v := range input {
		f.scratch[i] = complex(v, 0)
	}

	if err := f.plan.Forward(f.scratch, f.scratch); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	for i := range f.scratch {
		f.scratch[i] *= f.kernelFFT[i]
	}
	if err := f.plan.Inverse(f.scratch, f.scratch); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	out := make([]float64, f.inputLen+f.kernelLen-1)
	for i := range out {
		out[i] = real(f.scratch[i])
	}
	return out, nil
}

// ProcessMode is like Process but trims the result to mode.
func (f *FFT) ProcessMode(input []float64, mode Mode) ([]float64, error) {
	full, err := f.Process(input)
	if err != nil {
		return nil, err
	}
	return trimToMode(full, f.inputLen, f.kernelLen, mode), nil
}

// FFTConvolve performs one-shot FFT convolution of signal with kernel.
func FFTConvolve(signal, kernel []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	f, err := NewFFT(kernel, len(signal))
	if err != nil {
		return nil, err
	}
	return f.Process(signal)
}
