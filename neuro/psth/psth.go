// Package psth turns aligned spike trials into binned counts and causally
// smoothed firing rates (peri-stimulus time histograms).
//
// Binning truncates: the window is cut into floor(duration/binWidth) bins and
// a trailing partial bin is dropped for every trial. Bins are half-open
// [lo, hi) except the last, which also counts spikes exactly at its upper
// edge.
//
// Smoothing convolves each trial with a half-Gaussian that only looks at the
// present and past bins. Bins before the first one are treated as zero, and
// the first round(2*smoothWidth/binWidth) bins of every smoothed trial are set
// to NaN because the kernel lacks history there.
package psth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spikes/dsp/conv"
	"github.com/cwbudde/algo-spikes/dsp/core"
	"github.com/cwbudde/algo-spikes/dsp/window"
	"github.com/cwbudde/algo-spikes/neuro/align"
	"github.com/cwbudde/algo-spikes/neuro/signal"
)

// Errors returned by binning and smoothing.
var (
	ErrInvalidBinWidth    = errors.New("psth: invalid bin width")
	ErrInvalidSmoothWidth = errors.New("psth: invalid smoothing width")
	ErrWindowTooShort     = errors.New("psth: window shorter than one bin")
)

// binTolerance absorbs rounding in duration/binWidth so that, for example,
// a 2 s window at 1 ms yields exactly 2000 bins.
const binTolerance = 1e-9

// kernelSigmas is the half-width of the smoothing kernel in standard deviations.
const kernelSigmas = 3

// Binned holds per-trial spike counts on a shared bin grid.
type Binned struct {
	// Centers holds the event-relative bin centres.
	Centers []float64
	// Counts holds one row per trial; rows of missing trials are NaN.
	Counts [][]float64
	// BinWidth is the bin width in seconds.
	BinWidth float64
}

// Result holds smoothed rates (events per second) per trial.
type Result struct {
	Centers []float64
	// Rates holds one row per trial. Leading edge bins and missing trials are NaN.
	Rates    [][]float64
	BinWidth float64
	// EdgeBins is the number of leading bins set to NaN in every row.
	EdgeBins int
}

// NumBins returns the number of whole bins of width binWidth in window.
func NumBins(w signal.Window, binWidth float64) (int, error) {
	if err := validateBinWidth(binWidth); err != nil {
		return 0, err
	}
	if err := w.Validate(); err != nil {
		return 0, fmt.Errorf("psth: %w", err)
	}

	n := int(math.Floor(w.Duration()/binWidth + binTolerance))
	if n < 1 {
		return 0, fmt.Errorf("%w: window %g s, bin %g s", ErrWindowTooShort, w.Duration(), binWidth)
	}
	return n, nil
}

// Centers returns the centres of the n bins starting at w.Start.
func Centers(w signal.Window, binWidth float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = w.Start + (float64(i)+0.5)*binWidth
	}
	return out
}

// Bin counts the spikes of every trial per bin.
func Bin(trials []align.Trial, w signal.Window, binWidth float64) (Binned, error) {
	n, err := NumBins(w, binWidth)
	if err != nil {
		return Binned{}, err
	}

	counts := make([][]float64, len(trials))
	for i, tr := range trials {
		row := make([]float64, n)
		if tr.Missing {
			core.FillNaN(row)
			counts[i] = row
			continue
		}

		for _, t := range tr.Times {
			k := int(math.Floor((t - w.Start) / binWidth))
			if k == n && t <= w.Start+float64(n)*binWidth*(1+binTolerance) {
				// Closed upper edge of the last bin.
				k = n - 1
			}
			if k < 0 || k >= n {
				continue
			}
			row[k]++
		}
		counts[i] = row
	}

	return Binned{Centers: Centers(w, binWidth, n), Counts: counts, BinWidth: binWidth}, nil
}

// CausalKernel returns the unit-sum half-Gaussian smoothing kernel for
// smoothWidth (the Gaussian standard deviation, seconds) sampled every
// binWidth seconds.
//
// The kernel has odd length 2h+1 with h = ceil(3*smoothWidth/binWidth). Taps
// before the centre are zero so that, under centred convolution, output bin n
// only depends on bins <= n. A zero smoothWidth yields the identity kernel.
func CausalKernel(binWidth, smoothWidth float64) ([]float64, error) {
	if err := validateBinWidth(binWidth); err != nil {
		return nil, err
	}
	if err := validateSmoothWidth(smoothWidth); err != nil {
		return nil, err
	}
	if smoothWidth == 0 {
		return []float64{1}, nil
	}

	sigma := smoothWidth / binWidth
	half := int(math.Ceil(kernelSigmas * sigma))
	return window.HalfGaussian(half, sigma)
}

// EdgeBins returns round(2*smoothWidth/binWidth), the number of leading bins
// without full smoothing history.
func EdgeBins(binWidth, smoothWidth float64) int {
	return int(math.Round(2 * smoothWidth / binWidth))
}

// Smooth converts binned counts into causally smoothed rates.
func Smooth(b Binned, smoothWidth float64) (Result, error) {
	kernel, err := CausalKernel(b.BinWidth, smoothWidth)
	if err != nil {
		return Result{}, err
	}

	n := len(b.Centers)
	edge := EdgeBins(b.BinWidth, smoothWidth)
	if edge > n {
		edge = n
	}

	res := Result{
		Centers:  b.Centers,
		Rates:    make([][]float64, len(b.Counts)),
		BinWidth: b.BinWidth,
		EdgeBins: edge,
	}
	if n == 0 {
		return res, nil
	}

	plan, err := conv.NewPlan(kernel, n)
	if err != nil {
		return Result{}, fmt.Errorf("psth: %w", err)
	}

	scale := make([]float64, n)
	for i := range scale {
		scale[i] = 1 / b.BinWidth
	}

	for i, counts := range b.Counts {
		if len(counts) != n {
			return Result{}, fmt.Errorf("psth: trial %d has %d bins, want %d", i, len(counts), n)
		}
		if hasNaN(counts) {
			res.Rates[i] = core.NaNs(n)
			continue
		}

		rate, err := plan.Convolve(counts, conv.ModeSame)
		if err != nil {
			return Result{}, fmt.Errorf("psth: trial %d: %w", i, err)
		}
		vecmath.MulBlockInPlace(rate, scale)
		core.FillNaN(rate[:edge])
		res.Rates[i] = rate
	}

	return res, nil
}

// Compute aligns spikes to events, bins and smooths them.
func Compute(spikes signal.Spikes, events []float64, w signal.Window, binWidth, smoothWidth float64) (Result, error) {
	if err := validateBinWidth(binWidth); err != nil {
		return Result{}, err
	}
	if err := validateSmoothWidth(smoothWidth); err != nil {
		return Result{}, err
	}

	trials, err := align.Spikes(spikes, events, w)
	if err != nil {
		return Result{}, err
	}
	binned, err := Bin(trials, w, binWidth)
	if err != nil {
		return Result{}, err
	}
	return Smooth(binned, smoothWidth)
}

// Mean returns the NaN-aware mean rate per bin across the given rows.
// Bins with no defined value are NaN.
func Mean(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}

	out := make([]float64, len(rows[0]))
	col := make([]float64, len(rows))
	for k := range out {
		for i, row := range rows {
			col[i] = row[k]
		}
		out[k] = core.NaNMean(col)
	}
	return out
}

func hasNaN(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

func validateBinWidth(binWidth float64) error {
	if !(binWidth > 0) || math.IsInf(binWidth, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidBinWidth, binWidth)
	}
	return nil
}

func validateSmoothWidth(smoothWidth float64) error {
	if !(smoothWidth >= 0) || math.IsInf(smoothWidth, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidSmoothWidth, smoothWidth)
	}
	return nil
}
