package figures

import (
	"github.com/cwbudde/algo-spikes/neuro/signal"
	"github.com/cwbudde/algo-spikes/neuro/warp"
	"github.com/cwbudde/algo-spikes/plot/spec"
)

// WarpedAverage time-warps sig between the boundary events of every trial
// (epochEvents[j][i] is boundary j of trial i) and draws the warped average
// per split group with a marker at every boundary.
func WarpedAverage(sig signal.Continuous, epochEvents [][]float64, prePad, postPad float64, opts ...Option) (*spec.Figure, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	res, err := warp.Warp(sig, epochEvents, prePad, postPad, warp.WithBudget(cfg.WarpBudget))
	if err != nil {
		return nil, err
	}
	g, err := cfg.grouping(len(res.Values))
	if err != nil {
		return nil, err
	}
	summary, err := summaryLayers(res.Axis, res.Values, g, cfg.Stat)
	if err != nil {
		return nil, err
	}

	b := spec.NewBuilder(cfg.Title, 1, 1).Size(cfg.Width, cfg.Height)
	f := b.Facet(0, 0)
	f.XLabel = "Warped time (s)"
	f.YLabel = "Baseline-corrected signal"
	f.YRange = cfg.YLim
	f.Legend = cfg.Split != nil
	f.Add(summary...)
	for _, t := range BoundaryTimes(res, prePad) {
		f.Add(spec.VLine{X: t, Dashed: true})
	}

	return finish(cfg, b)
}

// BoundaryTimes returns the warped time of every boundary event: the first
// at 0, the rest separated by the mean epoch durations.
func BoundaryTimes(res warp.Result, prePad float64) []float64 {
	n := len(res.MeanDurations) - 1
	out := make([]float64, n)
	t := -prePad
	for j := 0; j < n; j++ {
		t += res.MeanDurations[j]
		out[j] = t
	}
	return out
}
