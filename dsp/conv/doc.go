// Package conv provides the linear convolution used for rate smoothing.
//
// Two strategies are available:
//
//   - Direct convolution: O(N*M) time-domain convolution, best for short kernels
//   - FFT: single-block spectral convolution for long kernels, reusable across equal-length rows
//
// # Usage
//
//	result, err := conv.Convolve(signal, kernel)                  // Auto-selects best algorithm
//	same, err := conv.ConvolveMode(signal, kernel, conv.ModeSame)  // Centred, len(signal) samples
//
// # Boundary rule
//
// All modes treat samples outside the input as zero. [ModeSame] returns the
// centre of the full result: for an odd kernel of length 2h+1, output n is
// sum_k kernel[k] * signal[n+h-k].
//
// # Algorithm Selection
//
// The [Convolve] function selects the algorithm based on kernel size:
//   - Kernel length <= 64: Direct convolution
//   - Kernel length > 64: single-block FFT
package conv
