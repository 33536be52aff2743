// Package figures is the plotting entry point: every function computes its
// data fully, describes the result as a [spec.Figure] and, when an output
// path is configured, hands the figure to the configured [Renderer].
//
// Nothing is rendered when computation fails.
package figures

import (
	"fmt"
	"image/color"

	"github.com/cwbudde/algo-spikes/neuro/align"
	"github.com/cwbudde/algo-spikes/neuro/group"
	"github.com/cwbudde/algo-spikes/neuro/psth"
	"github.com/cwbudde/algo-spikes/neuro/signal"
	"github.com/cwbudde/algo-spikes/plot/spec"
	"github.com/cwbudde/algo-spikes/stats/trial"
)

const allLabel = "all"

var defaultColors = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

// DefaultColors returns n colours from a fixed cycle.
func DefaultColors(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = defaultColors[i%len(defaultColors)]
	}
	return out
}

// PSTH draws, per alignment event, a raster over the smoothed firing rate
// (mean and band per split group). Column a belongs to events[a].
func PSTH(spikes signal.Spikes, events []signal.Events, opts ...Option) (*spec.Figure, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	b := spec.NewBuilder(cfg.Title, 2, len(events)).Size(cfg.Width, cfg.Height)
	for a, ev := range events {
		name := eventName(ev, a)
		if ev.Len() == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoEvents, name)
		}

		trials, err := align.Spikes(spikes, ev.Times, cfg.Window)
		if err != nil {
			return nil, err
		}
		g, err := cfg.grouping(len(trials))
		if err != nil {
			return nil, err
		}
		order, err := cfg.order(ev.Times)
		if err != nil {
			return nil, err
		}
		binned, err := psth.Bin(trials, cfg.Window, cfg.BinWidth)
		if err != nil {
			return nil, err
		}
		rates, err := psth.Smooth(binned, cfg.SmoothWidth)
		if err != nil {
			return nil, err
		}
		summary, err := summaryLayers(rates.Centers, rates.Rates, g, cfg.Stat)
		if err != nil {
			return nil, err
		}

		var raster spec.Raster
		for row, i := range order {
			for _, t := range trials[i].Times {
				raster.X = append(raster.X, t)
				raster.Row = append(raster.Row, float64(row))
				raster.Colors = append(raster.Colors, g.color(i))
			}
		}

		top := b.Facet(0, a)
		top.Title = name
		top.XRange = windowRange(cfg.Window)
		if a == 0 {
			top.YLabel = "Trial"
		}
		top.Add(raster, spec.VLine{X: 0, Dashed: true})

		bottom := b.Facet(1, a)
		bottom.XLabel = fmt.Sprintf("Time from %s (s)", name)
		bottom.XRange = windowRange(cfg.Window)
		bottom.YRange = cfg.YLim
		bottom.Legend = cfg.Split != nil
		if a == 0 {
			bottom.YLabel = "Rate (spikes/s)"
		}
		bottom.Add(summary...)
		bottom.Add(spec.VLine{X: 0, Dashed: true})
	}

	return finish(cfg, b)
}

// EventAverage is the continuous counterpart of [PSTH]: per alignment event
// a heat map of the aligned trials over their average and band.
func EventAverage(sig signal.Continuous, events []signal.Events, opts ...Option) (*spec.Figure, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	b := spec.NewBuilder(cfg.Title, 2, len(events)).Size(cfg.Width, cfg.Height)
	for a, ev := range events {
		name := eventName(ev, a)
		if ev.Len() == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoEvents, name)
		}

		traces, err := align.Continuous(sig, ev.Times, cfg.Window)
		if err != nil {
			return nil, err
		}
		g, err := cfg.grouping(len(traces.Values))
		if err != nil {
			return nil, err
		}
		order, err := cfg.order(ev.Times)
		if err != nil {
			return nil, err
		}
		summary, err := summaryLayers(traces.Axis, traces.Values, g, cfg.Stat)
		if err != nil {
			return nil, err
		}

		heat := spec.HeatMap{
			X: traces.Axis,
			Y: make([]float64, len(order)),
			Z: group.Subset(traces.Values, order),
		}
		for row := range heat.Y {
			heat.Y[row] = float64(row)
		}

		top := b.Facet(0, a)
		top.Title = name
		top.XRange = windowRange(cfg.Window)
		if a == 0 {
			top.YLabel = "Trial"
		}
		top.Add(heat, spec.VLine{X: 0, Dashed: true})

		bottom := b.Facet(1, a)
		bottom.XLabel = fmt.Sprintf("Time from %s (s)", name)
		bottom.XRange = windowRange(cfg.Window)
		bottom.YRange = cfg.YLim
		bottom.Legend = cfg.Split != nil
		bottom.Add(summary...)
		bottom.Add(spec.VLine{X: 0, Dashed: true})
	}

	return finish(cfg, b)
}

// grouping assigns every trial a group and colour.
type grouping struct {
	groups []group.Group
	labels []string
	colors map[string]color.Color
}

func (g grouping) color(trial int) color.Color {
	return g.colors[g.labels[trial]]
}

func (c Config) grouping(n int) (grouping, error) {
	if c.Split == nil {
		all := make([]int, n)
		labels := make([]string, n)
		for i := range all {
			all[i] = i
			labels[i] = allLabel
		}
		return grouping{
			groups: []group.Group{{Label: allLabel, Indices: all}},
			labels: labels,
			colors: map[string]color.Color{allLabel: defaultColors[0]},
		}, nil
	}

	if len(c.Split.Labels) != n {
		return grouping{}, fmt.Errorf("%w: WithSplit %q: %d labels for %d trials", ErrInvalidConfig, c.Split.Name, len(c.Split.Labels), n)
	}
	groups := group.Partition(c.Split.Labels)
	colors := c.Split.Colors
	if colors == nil {
		colors = DefaultColors(group.Labeled(groups))
	}
	m, err := group.MatchColors(c.Split.Name, groups, colors)
	if err != nil {
		return grouping{}, err
	}
	return grouping{groups: groups, labels: c.Split.Labels, colors: m}, nil
}

// order returns the raster row order for trials aligned to alignTimes.
func (c Config) order(alignTimes []float64) ([]int, error) {
	if c.SortTimes == nil {
		out := make([]int, len(alignTimes))
		for i := range out {
			out[i] = i
		}
		return out, nil
	}

	keys, err := group.RelativeKeys(c.SortTimes, alignTimes)
	if err != nil {
		return nil, fmt.Errorf("%w: WithSortTimes: %v", ErrInvalidConfig, err)
	}
	return group.Sort(keys), nil
}

// summaryLayers returns a band and a centre line per group.
func summaryLayers(x []float64, rows [][]float64, g grouping, stat trial.Stat) ([]spec.Layer, error) {
	layers := make([]spec.Layer, 0, 2*len(g.groups))
	for _, gr := range g.groups {
		s, err := trial.Summarize(group.Subset(rows, gr.Indices), stat)
		if err != nil {
			return nil, fmt.Errorf("figures: group %q: %w", gr.Label, err)
		}

		c := g.colors[gr.Label]
		label := gr.Label
		if gr.Unlabeled {
			label = "unlabeled"
		}
		layers = append(layers,
			spec.Band{X: x, Lower: s.Lower, Upper: s.Upper, Color: c},
			spec.Line{X: x, Y: s.Center, Color: c, Label: label},
		)
	}
	return layers, nil
}

func finish(cfg Config, b *spec.Builder) (*spec.Figure, error) {
	fig, err := b.Build()
	if err != nil {
		return nil, err
	}
	if cfg.Output != "" {
		if err := cfg.Renderer.Render(fig, cfg.Output); err != nil {
			return nil, fmt.Errorf("figures: render %s: %w", cfg.Output, err)
		}
	}
	return fig, nil
}

func eventName(ev signal.Events, i int) string {
	if ev.Name != "" {
		return ev.Name
	}
	return fmt.Sprintf("event %d", i+1)
}

func windowRange(w signal.Window) *spec.Range {
	return &spec.Range{Min: w.Start, Max: w.End}
}
