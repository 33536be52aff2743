// Package ephys reads a pre-loaded extracellular recording: sorted spike
// times with their cluster and template assignment, the template waveforms
// and the probe geometry.
//
// The package never modifies a [Dataset]. Depths are probe y-coordinates in
// the units of ChannelPositions (usually micrometres).
package ephys

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-spikes/dsp/core"
	"github.com/cwbudde/algo-spikes/neuro/signal"
)

// Errors returned by dataset queries.
var (
	ErrInvalidDataset = errors.New("ephys: invalid dataset")
	ErrUnknownCluster = errors.New("ephys: unknown cluster")
)

// Position is the location of a recording channel on the probe.
type Position struct {
	X, Y float64
}

// Dataset is a spike-sorted recording.
type Dataset struct {
	// SpikeTimes holds every spike in seconds, non-decreasing.
	SpikeTimes []float64
	// SpikeClusters holds the cluster of each spike.
	SpikeClusters []int
	// SpikeTemplates holds the template index of each spike.
	SpikeTemplates []int
	// Amplitudes holds the template scaling of each spike. Optional.
	Amplitudes []float64
	// Templates is indexed by template, sample, channel.
	Templates [][][]float64
	// ChannelPositions holds one position per channel.
	ChannelPositions []Position
}

// Validate checks lengths, spike ordering and template indices.
func (d *Dataset) Validate() error {
	n := len(d.SpikeTimes)
	if n == 0 {
		return fmt.Errorf("%w: no spikes", ErrInvalidDataset)
	}
	if len(d.SpikeClusters) != n {
		return fmt.Errorf("%w: %d cluster ids for %d spikes", ErrInvalidDataset, len(d.SpikeClusters), n)
	}
	if len(d.SpikeTemplates) != n {
		return fmt.Errorf("%w: %d template ids for %d spikes", ErrInvalidDataset, len(d.SpikeTemplates), n)
	}
	if d.Amplitudes != nil && len(d.Amplitudes) != n {
		return fmt.Errorf("%w: %d amplitudes for %d spikes", ErrInvalidDataset, len(d.Amplitudes), n)
	}

	if err := signal.Spikes(d.SpikeTimes).ValidateSorted(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	nCh := len(d.ChannelPositions)
	for k, tpl := range d.Templates {
		if len(tpl) == 0 {
			return fmt.Errorf("%w: template %d is empty", ErrInvalidDataset, k)
		}
		for _, sample := range tpl {
			if len(sample) != nCh {
				return fmt.Errorf("%w: template %d has %d channels, probe has %d", ErrInvalidDataset, k, len(sample), nCh)
			}
		}
	}
	for i, tpl := range d.SpikeTemplates {
		if tpl < 0 || tpl >= len(d.Templates) {
			return fmt.Errorf("%w: spike %d uses template %d of %d", ErrInvalidDataset, i, tpl, len(d.Templates))
		}
	}

	return nil
}

// ClusterIDs returns the distinct cluster ids in ascending order.
func (d *Dataset) ClusterIDs() []int {
	seen := make(map[int]struct{})
	ids := make([]int, 0)
	for _, c := range d.SpikeClusters {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		ids = append(ids, c)
	}
	sort.Ints(ids)
	return ids
}

// ClusterSpikes returns the spike times of one cluster. An unknown cluster
// yields an empty train.
func (d *Dataset) ClusterSpikes(id int) signal.Spikes {
	out := make(signal.Spikes, 0)
	for i, c := range d.SpikeClusters {
		if c == id {
			out = append(out, d.SpikeTimes[i])
		}
	}
	return out
}

// MeanAmplitude returns the mean spike amplitude of a cluster, NaN when the
// dataset carries no amplitudes.
func (d *Dataset) MeanAmplitude(id int) (float64, error) {
	idx := d.clusterIndices(id)
	if len(idx) == 0 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCluster, id)
	}
	if d.Amplitudes == nil {
		return math.NaN(), nil
	}

	amps := make([]float64, len(idx))
	for i, k := range idx {
		amps[i] = d.Amplitudes[k]
	}
	return core.NaNMean(amps), nil
}

func (d *Dataset) clusterIndices(id int) []int {
	var idx []int
	for i, c := range d.SpikeClusters {
		if c == id {
			idx = append(idx, i)
		}
	}
	return idx
}
