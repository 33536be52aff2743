package conv_test

import (
	"fmt"

	"github.com/cwbudde/algo-spikes/dsp/conv"
)

func ExampleDirect() {
	// Simple moving average filter
	signal := []float64{1, 2, 3, 4, 5, 4, 3, 2, 1}
	kernel := []float64{0.25, 0.5, 0.25}

	result, _ := conv.Direct(signal, kernel)

	fmt.Printf("Input length: %d\n", len(signal))
	fmt.Printf("Kernel length: %d\n", len(kernel))
	fmt.Printf("Output length: %d\n", len(result))
	fmt.Printf("First few values: %.2f, %.2f, %.2f\n", result[0], result[1], result[2])

	// Output:
	// Input length: 9
	// Kernel length: 3
	// Output length: 11
	// First few values: 0.25, 1.00, 2.00
}

func ExamplePlan() {
	// A causal kernel: nothing before the centre tap.
	kernel := []float64{0, 0.5, 0.5}
	counts := []float64{0, 1, 0, 0}

	p, _ := conv.NewPlan(kernel, len(counts))
	same, _ := p.Convolve(counts, conv.ModeSame)

	fmt.Println(same)

	// Output:
	// [0 0.5 0.5 0]
}
