package trial_test

import (
	"fmt"

	"github.com/cwbudde/algo-spikes/stats/trial"
)

func ExampleSummarize() {
	rates := [][]float64{
		{2, 10},
		{4, 12},
		{6, 14},
	}

	s, _ := trial.Summarize(rates, trial.StatSD)
	fmt.Printf("center=%v lower=%v upper=%v\n", s.Center, s.Lower, s.Upper)

	// Output:
	// center=[4 12] lower=[2 10] upper=[6 14]
}
