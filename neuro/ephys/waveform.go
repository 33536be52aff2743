package ephys

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidChannelCount is returned when fewer than one channel is requested.
var ErrInvalidChannelCount = errors.New("ephys: invalid channel count")

// Waveform is the template of a cluster restricted to its largest channels.
type Waveform struct {
	Cluster  int
	Template int
	// Channels holds channel indices, largest peak-to-peak first.
	Channels  []int
	Positions []Position
	// Traces holds one trace per entry of Channels.
	Traces [][]float64
}

// Waveform returns the dominant template of a cluster (the one most of its
// spikes use, lowest index on ties) on its nChannels largest channels.
// nChannels is capped at the probe's channel count.
func (d *Dataset) Waveform(clusterID, nChannels int) (Waveform, error) {
	if nChannels < 1 {
		return Waveform{}, fmt.Errorf("%w: %d", ErrInvalidChannelCount, nChannels)
	}
	idx := d.clusterIndices(clusterID)
	if len(idx) == 0 {
		return Waveform{}, fmt.Errorf("%w: %d", ErrUnknownCluster, clusterID)
	}
	if err := d.Validate(); err != nil {
		return Waveform{}, err
	}

	votes := make(map[int]int)
	for _, k := range idx {
		votes[d.SpikeTemplates[k]]++
	}
	best, bestVotes := -1, 0
	for tpl, v := range votes {
		if v > bestVotes || (v == bestVotes && tpl < best) {
			best, bestVotes = tpl, v
		}
	}

	tpl := d.Templates[best]
	ptp := peakToPeak(tpl)
	order := make([]int, len(ptp))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return ptp[order[a]] > ptp[order[b]] })
	if nChannels > len(order) {
		nChannels = len(order)
	}
	order = order[:nChannels]

	wf := Waveform{
		Cluster:   clusterID,
		Template:  best,
		Channels:  order,
		Positions: make([]Position, nChannels),
		Traces:    make([][]float64, nChannels),
	}
	for i, ch := range order {
		wf.Positions[i] = d.ChannelPositions[ch]
		trace := make([]float64, len(tpl))
		for s, sample := range tpl {
			trace[s] = sample[ch]
		}
		wf.Traces[i] = trace
	}
	return wf, nil
}
