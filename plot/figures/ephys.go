package figures

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-spikes/dsp/core"
	"github.com/cwbudde/algo-spikes/neuro/ephys"
	"github.com/cwbudde/algo-spikes/plot/spec"
)

// waveformFill is the share of the channel spacing the largest trace spans.
const waveformFill = 0.8

// DepthActivity draws population activity as a depth by time heat map
// around events, in depth bands of depthBin.
func DepthActivity(ds *ephys.Dataset, events []float64, depthBin float64, opts ...Option) (*spec.Figure, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	mopts := []ephys.MapOption{ephys.WithMapSmoothing(cfg.SmoothWidth)}
	if cfg.Baseline != nil {
		mopts = append(mopts, ephys.WithBaselineZScore(cfg.Baseline.Min, cfg.Baseline.Max))
	}
	m, err := ephys.DepthMap(ds, events, cfg.Window, cfg.BinWidth, depthBin, mopts...)
	if err != nil {
		return nil, err
	}

	b := spec.NewBuilder(cfg.Title, 1, 1).Size(cfg.Width, cfg.Height)
	f := b.Facet(0, 0)
	f.Title = "Rate (spikes/s)"
	if m.ZScored {
		f.Title = "Rate (z-score)"
	}
	f.XLabel = "Time from event (s)"
	f.YLabel = "Depth (µm)"
	f.XRange = windowRange(cfg.Window)
	f.Add(spec.HeatMap{X: m.Centers, Y: m.Depths, Z: m.Values}, spec.VLine{X: 0, Dashed: true})

	return finish(cfg, b)
}

// Autocorrelogram draws the autocorrelogram of one cluster up to ±maxLag
// seconds, binned at the configured bin width.
func Autocorrelogram(ds *ephys.Dataset, clusterID int, maxLag float64, opts ...Option) (*spec.Figure, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	acg, err := ds.ClusterAutocorrelogram(clusterID, cfg.BinWidth, maxLag)
	if err != nil {
		return nil, err
	}

	b := spec.NewBuilder(cfg.Title, 1, 1).Size(cfg.Width, cfg.Height)
	f := b.Facet(0, 0)
	f.Title = fmt.Sprintf("Cluster %d", clusterID)
	f.XLabel = "Lag (s)"
	f.YLabel = "Spike pairs"
	f.YRange = cfg.YLim
	f.Add(spec.Bars{X: acg.Centers, Height: acg.Counts, Width: acg.BinWidth})

	return finish(cfg, b)
}

// Waveforms draws the dominant template of a cluster on its nChannels
// largest channels, each trace offset to its channel depth.
func Waveforms(ds *ephys.Dataset, clusterID, nChannels int, opts ...Option) (*spec.Figure, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	wf, err := ds.Waveform(clusterID, nChannels)
	if err != nil {
		return nil, err
	}

	scale := waveformScale(wf)
	b := spec.NewBuilder(cfg.Title, 1, 1).Size(cfg.Width, cfg.Height)
	f := b.Facet(0, 0)
	f.Title = fmt.Sprintf("Cluster %d, template %d", clusterID, wf.Template)
	f.XLabel = "Sample"
	f.YLabel = "Depth (µm)"
	for i, trace := range wf.Traces {
		x := core.Linspace(0, float64(len(trace)-1), len(trace))
		y := make([]float64, len(trace))
		copy(y, trace)
		floats.Scale(scale, y)
		floats.AddConst(wf.Positions[i].Y, y)
		f.Add(spec.Line{X: x, Y: y, Color: defaultColors[0], Label: fmt.Sprintf("ch %d", wf.Channels[i])})
	}

	return finish(cfg, b)
}

// waveformScale maps the largest peak-to-peak amplitude onto a fraction of
// the smallest vertical channel spacing.
func waveformScale(wf ephys.Waveform) float64 {
	ptp := 0.0
	for _, tr := range wf.Traces {
		ptp = math.Max(ptp, floats.Max(tr)-floats.Min(tr))
	}
	if ptp == 0 {
		return 1
	}

	ys := make([]float64, len(wf.Positions))
	for i, p := range wf.Positions {
		ys[i] = p.Y
	}
	sort.Float64s(ys)
	spacing := math.Inf(1)
	for i := 1; i < len(ys); i++ {
		if d := ys[i] - ys[i-1]; d > 0 {
			spacing = math.Min(spacing, d)
		}
	}
	if math.IsInf(spacing, 1) {
		spacing = ptp
	}
	return waveformFill * spacing / ptp
}
