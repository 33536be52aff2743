package ephys

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-spikes/dsp/core"
	"github.com/cwbudde/algo-spikes/neuro/align"
	"github.com/cwbudde/algo-spikes/neuro/psth"
	"github.com/cwbudde/algo-spikes/neuro/signal"
)

// Errors returned by [DepthMap].
var (
	ErrInvalidDepthBin = errors.New("ephys: invalid depth bin")
	ErrNoEvents        = errors.New("ephys: no events")
)

// peakToPeak returns the per-channel peak-to-peak amplitude of a template.
func peakToPeak(tpl [][]float64) []float64 {
	if len(tpl) == 0 {
		return nil
	}

	nCh := len(tpl[0])
	out := make([]float64, nCh)
	col := make([]float64, len(tpl))
	for ch := 0; ch < nCh; ch++ {
		for s, sample := range tpl {
			col[s] = sample[ch]
		}
		out[ch] = floats.Max(col) - floats.Min(col)
	}
	return out
}

// TemplateDepths returns the depth of every template: the centre of mass of
// the channel y-positions weighted by the squared peak-to-peak amplitude on
// each channel. A flat template has NaN depth.
func (d *Dataset) TemplateDepths() []float64 {
	ys := make([]float64, len(d.ChannelPositions))
	for i, p := range d.ChannelPositions {
		ys[i] = p.Y
	}

	out := make([]float64, len(d.Templates))
	for k, tpl := range d.Templates {
		w := peakToPeak(tpl)
		floats.Mul(w, w)
		total := floats.Sum(w)
		if total == 0 {
			out[k] = math.NaN()
			continue
		}
		out[k] = floats.Dot(w, ys) / total
	}
	return out
}

// SpikeDepths returns the depth of every spike's template.
func (d *Dataset) SpikeDepths() []float64 {
	tplDepth := d.TemplateDepths()
	out := make([]float64, len(d.SpikeTemplates))
	for i, tpl := range d.SpikeTemplates {
		out[i] = tplDepth[tpl]
	}
	return out
}

// ClusterDepth returns the median spike depth of a cluster.
func (d *Dataset) ClusterDepth(id int) (float64, error) {
	idx := d.clusterIndices(id)
	if len(idx) == 0 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCluster, id)
	}

	depths := d.SpikeDepths()
	sel := make([]float64, len(idx))
	for i, k := range idx {
		sel[i] = depths[k]
	}
	return core.Median(sel), nil
}

// Map is a depth by time activity map.
type Map struct {
	// Depths holds the centre of each depth band, ascending.
	Depths []float64
	// Centers holds the event-relative time bin centres.
	Centers []float64
	// Values holds one row per depth band: mean rate in spikes/s, or a
	// z-score when a baseline was requested.
	Values [][]float64
	// ZScored reports whether rows were baseline z-scored.
	ZScored bool
}

// MapOption configures [DepthMap].
type MapOption func(*mapConfig)

type mapConfig struct {
	zscore      bool
	from, to    float64
	smoothWidth float64
}

// WithBaselineZScore z-scores every depth row against the bins whose centre
// lies in [from, to].
func WithBaselineZScore(from, to float64) MapOption {
	return func(c *mapConfig) {
		c.zscore = true
		c.from, c.to = from, to
	}
}

// WithMapSmoothing causally smooths every depth band before averaging.
func WithMapSmoothing(smoothWidth float64) MapOption {
	return func(c *mapConfig) {
		c.smoothWidth = smoothWidth
	}
}

// DepthMap groups spikes into depth bands of depthBin, aligns every band to
// events and returns the mean rate per band and time bin.
func DepthMap(ds *Dataset, events []float64, w signal.Window, binWidth, depthBin float64, opts ...MapOption) (Map, error) {
	var cfg mapConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !(depthBin > 0) || math.IsInf(depthBin, 0) {
		return Map{}, fmt.Errorf("%w: %g", ErrInvalidDepthBin, depthBin)
	}
	if len(events) == 0 {
		return Map{}, ErrNoEvents
	}
	if err := ds.Validate(); err != nil {
		return Map{}, err
	}
	if _, err := psth.NumBins(w, binWidth); err != nil {
		return Map{}, err
	}

	depths := depthBands(ds.SpikeDepths(), depthBin)
	if depths.n == 0 {
		return Map{}, fmt.Errorf("%w: no spike has a defined depth", ErrInvalidDataset)
	}

	bands := make([][]float64, depths.n)
	for i, b := range depths.index {
		if b >= 0 {
			bands[b] = append(bands[b], ds.SpikeTimes[i])
		}
	}

	out := Map{
		Depths:  make([]float64, depths.n),
		Values:  make([][]float64, depths.n),
		ZScored: cfg.zscore,
	}
	for b, times := range bands {
		out.Depths[b] = depths.lo + (float64(b)+0.5)*depthBin

		binned, err := psth.Bin(alignSorted(times, events, w), w, binWidth)
		if err != nil {
			return Map{}, err
		}
		var rows [][]float64
		if cfg.smoothWidth > 0 {
			sm, err := psth.Smooth(binned, cfg.smoothWidth)
			if err != nil {
				return Map{}, err
			}
			rows = sm.Rates
		} else {
			rows = binned.Counts
			for _, r := range rows {
				floats.Scale(1/binWidth, r)
			}
		}
		out.Centers = binned.Centers
		out.Values[b] = psth.Mean(rows)
	}

	if cfg.zscore {
		for _, row := range out.Values {
			zscore(row, out.Centers, cfg.from, cfg.to)
		}
	}

	return out, nil
}

type bandIndex struct {
	lo    float64
	n     int
	index []int
}

// depthBands assigns each depth to a band of width bin starting at the bin
// multiple below the shallowest depth. NaN depths get index -1.
func depthBands(depths []float64, bin float64) bandIndex {
	defined := core.Defined(depths)
	if len(defined) == 0 {
		return bandIndex{}
	}

	lo := math.Floor(floats.Min(defined)/bin) * bin
	hi := floats.Max(defined)
	n := int(math.Floor((hi-lo)/bin)) + 1

	idx := make([]int, len(depths))
	for i, d := range depths {
		if math.IsNaN(d) {
			idx[i] = -1
			continue
		}
		k := int(math.Floor((d - lo) / bin))
		if k >= n {
			k = n - 1
		}
		idx[i] = k
	}
	return bandIndex{lo: lo, n: n, index: idx}
}

// alignSorted aligns non-decreasing spike times (several units may fire at
// the same instant) to events.
func alignSorted(times, events []float64, w signal.Window) []align.Trial {
	trials := make([]align.Trial, len(events))
	for i, e := range events {
		if signal.IsMissing(e) {
			trials[i] = align.Trial{Event: e, Missing: true}
			continue
		}
		lo := sort.Search(len(times), func(k int) bool { return times[k]-e >= w.Start })
		hi := sort.Search(len(times), func(k int) bool { return times[k]-e > w.End })
		rel := make([]float64, 0, hi-lo)
		for _, t := range times[lo:hi] {
			rel = append(rel, t-e)
		}
		trials[i] = align.Trial{Event: e, Times: rel}
	}
	return trials
}

// zscore standardizes row in place against the defined values whose centre
// lies in [from, to]. A constant baseline only subtracts its mean.
func zscore(row, centers []float64, from, to float64) {
	var base []float64
	for k, c := range centers {
		if c >= from && c <= to && !math.IsNaN(row[k]) {
			base = append(base, row[k])
		}
	}
	if len(base) == 0 {
		core.FillNaN(row)
		return
	}

	mean, sd := stat.MeanStdDev(base, nil)
	if len(base) < 2 || sd == 0 || math.IsNaN(sd) {
		sd = 1
	}
	for k := range row {
		row[k] = (row[k] - mean) / sd
	}
}
