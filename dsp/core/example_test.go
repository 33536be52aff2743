package core_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spikes/dsp/core"
)

func ExampleLinspace() {
	fmt.Println(core.Linspace(0, 1, 5))

	// Output:
	// [0 0.25 0.5 0.75 1]
}

func ExampleNaNMean() {
	rates := []float64{math.NaN(), 2, 4}
	fmt.Printf("%.1f\n", core.NaNMean(rates))

	// Output:
	// 3.0
}
