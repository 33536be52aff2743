package window

import "fmt"

func ExampleHalfGaussian() {
	w, _ := HalfGaussian(2, 1)
	fmt.Printf("%.3f %.3f %.3f %.3f %.3f\n", w[0], w[1], w[2], w[3], w[4])
	// Output:
	// 0.000 0.000 0.574 0.348 0.078
}

func ExampleCausalMask() {
	m, _ := CausalMask(3)
	fmt.Println(m)
	// Output:
	// [0 1 1]
}
