package figures_test

import (
	"fmt"

	"github.com/cwbudde/algo-spikes/plot/figures"
)

func ExampleNewConfig() {
	cfg, err := figures.NewConfig(figures.WithWindow(-0.5, 1.5), figures.WithBinWidth(0.01))
	if err != nil {
		panic(err)
	}
	fmt.Println(cfg.Window.Start, cfg.Window.End, cfg.BinWidth, cfg.SmoothWidth, cfg.Stat)

	_, err = figures.NewConfig(figures.WithBinWidth(-1))
	fmt.Println(err)

	// Output:
	// -0.5 1.5 0.01 0.01 sem
	// figures: invalid configuration: WithBinWidth: -1
}
