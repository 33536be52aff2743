package conv

import (
	"fmt"
	"math"
	"testing"
)

// Benchmark direct convolution against bin-count sized rows.
func BenchmarkDirect(b *testing.B) {
	sizes := []struct {
		signal int
		kernel int
	}{
		{200, 7},
		{2000, 31},
		{2000, 61},
	}

	for _, size := range sizes {
		signal := makeCountRow(size.signal)
		kernel := makeDecayKernel(size.kernel)

		b.Run(fmt.Sprintf("signal=%d_kernel=%d", size.signal, size.kernel), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = Direct(signal, kernel)
			}
		})
	}
}

// Benchmark reusing one plan across many trial rows.
func BenchmarkPlanRows(b *testing.B) {
	for _, kernelLen := range []int{31, 301} {
		row := makeCountRow(2000)
		kernel := makeDecayKernel(kernelLen)
		p, err := NewPlan(kernel, len(row))
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("kernel=%d", kernelLen), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = p.Convolve(row, ModeSame)
			}
		})
	}
}

// makeCountRow returns a sparse 0/1 row resembling binned spike counts.
func makeCountRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		if i%37 == 0 || i%53 == 0 {
			row[i] = 1
		}
	}
	return row
}

// makeDecayKernel returns a unit-sum exponentially decaying kernel.
func makeDecayKernel(n int) []float64 {
	kernel := make([]float64, n)
	sum := 0.0
	for i := range kernel {
		kernel[i] = math.Exp(-float64(i) / (float64(n) / 4))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
