package ephys

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spikes/neuro/signal"
)

// Errors returned by [Autocorrelogram].
var (
	ErrInvalidBinWidth = errors.New("ephys: invalid bin width")
	ErrInvalidMaxLag   = errors.New("ephys: invalid maximum lag")
)

// ACG is a spike-train autocorrelogram.
type ACG struct {
	// Centers holds the lag of every bin, symmetric around zero.
	Centers []float64
	// Counts holds the number of spike pairs per lag bin.
	Counts   []float64
	BinWidth float64
}

// Autocorrelogram counts the pairwise differences t[j]-t[i] (i != j) of a
// spike train in bins of binWidth centred on multiples of binWidth, up to
// ±round(maxLag/binWidth) bins. A spike is never paired with itself.
func Autocorrelogram(times signal.Spikes, binWidth, maxLag float64) (ACG, error) {
	if !(binWidth > 0) || math.IsInf(binWidth, 0) {
		return ACG{}, fmt.Errorf("%w: %g", ErrInvalidBinWidth, binWidth)
	}
	if !(maxLag >= binWidth) || math.IsInf(maxLag, 0) {
		return ACG{}, fmt.Errorf("%w: %g (bin %g)", ErrInvalidMaxLag, maxLag, binWidth)
	}
	if err := times.ValidateSorted(); err != nil {
		return ACG{}, fmt.Errorf("ephys: %w", err)
	}

	m := int(math.Round(maxLag / binWidth))
	n := 2*m + 1
	acg := ACG{
		Centers:  make([]float64, n),
		Counts:   make([]float64, n),
		BinWidth: binWidth,
	}
	for k := range acg.Centers {
		acg.Centers[k] = float64(k-m) * binWidth
	}

	reach := (float64(m) + 0.5) * binWidth
	for i := range times {
		for j := i + 1; j < len(times); j++ {
			d := times[j] - times[i]
			if d >= reach {
				break
			}
			k := int(math.Round(d / binWidth))
			if k > m {
				continue
			}
			// Each pair counts once at +d and once at -d.
			acg.Counts[m+k]++
			acg.Counts[m-k]++
		}
	}

	return acg, nil
}

// ClusterAutocorrelogram is [Autocorrelogram] over the spikes of one
// cluster.
func (d *Dataset) ClusterAutocorrelogram(id int, binWidth, maxLag float64) (ACG, error) {
	spikes := d.ClusterSpikes(id)
	if len(spikes) == 0 {
		return ACG{}, fmt.Errorf("%w: %d", ErrUnknownCluster, id)
	}
	return Autocorrelogram(spikes, binWidth, maxLag)
}
