// Package warp resamples variable-length epochs of a continuous signal onto
// a fixed number of samples so that trials with different timing can be
// averaged in epoch-relative time.
//
// Given K boundary events per trial, each trial is split into K+1 epochs: a
// pre-epoch of fixed duration before the first boundary, one epoch between
// each pair of consecutive boundaries, and a post-epoch of fixed duration
// after the last boundary. Every epoch receives the same number of samples in
// every trial, proportional to its mean duration across trials.
package warp

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-spikes/dsp/core"
	"github.com/cwbudde/algo-spikes/dsp/interp"
	"github.com/cwbudde/algo-spikes/neuro/signal"
)

// Errors returned by [Warp].
var (
	ErrNoEpochs              = errors.New("warp: no epoch boundaries")
	ErrMismatchedEpochLength = errors.New("warp: epoch event sets differ in length")
	ErrNonMonotonicEpochs    = errors.New("warp: epoch boundaries not strictly increasing")
	ErrInvalidPad            = errors.New("warp: invalid padding")
	ErrInvalidBudget         = errors.New("warp: sample budget smaller than epoch count")
	ErrNoValidTrials         = errors.New("warp: no trial has all boundaries defined")
	ErrNonFiniteBoundary     = errors.New("warp: non-finite boundary time")
)

// DefaultBudget is the default total number of samples per warped trial.
const DefaultBudget = 400

// Option configures [Warp].
type Option func(*config)

type config struct {
	budget int
}

// WithBudget sets the total number of samples per trial.
func WithBudget(n int) Option {
	return func(c *config) {
		c.budget = n
	}
}

// Result holds warped, baseline-corrected trials.
type Result struct {
	// Values holds one row per trial, all of the same length. Trials with a
	// missing boundary are NaN.
	Values [][]float64
	// Boundaries holds the sample index where each epoch starts, followed by
	// the total length.
	Boundaries []int
	// Samples holds the number of samples per epoch.
	Samples []int
	// MeanDurations holds the mean real duration of each epoch in seconds.
	MeanDurations []float64
	// Axis places every sample on a mean-duration time axis relative to the
	// first boundary event.
	Axis []float64
}

// Len returns the number of samples per warped trial.
func (r Result) Len() int {
	return r.Boundaries[len(r.Boundaries)-1]
}

// Warp time-warps sig between the boundary events of every trial.
// epochEvents[j][i] is the time of boundary j in trial i.
func Warp(sig signal.Continuous, epochEvents [][]float64, prePad, postPad float64, opts ...Option) (Result, error) {
	cfg := config{budget: DefaultBudget}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(epochEvents) == 0 {
		return Result{}, ErrNoEpochs
	}
	if !(prePad > 0) || !(postPad >= 0) || math.IsInf(prePad, 0) || math.IsInf(postPad, 0) {
		return Result{}, fmt.Errorf("%w: pre %g, post %g", ErrInvalidPad, prePad, postPad)
	}
	numEpochs := len(epochEvents) + 1
	if cfg.budget < numEpochs {
		return Result{}, fmt.Errorf("%w: %d samples for %d epochs", ErrInvalidBudget, cfg.budget, numEpochs)
	}
	nTrials := len(epochEvents[0])
	for j, ev := range epochEvents {
		if len(ev) != nTrials {
			return Result{}, fmt.Errorf("%w: boundary %d has %d trials, boundary 0 has %d", ErrMismatchedEpochLength, j, len(ev), nTrials)
		}
	}
	if err := sig.Validate(); err != nil {
		return Result{}, fmt.Errorf("warp: %w", err)
	}

	edges, err := epochEdges(epochEvents, prePad, postPad)
	if err != nil {
		return Result{}, err
	}

	durations, err := meanDurations(edges, numEpochs)
	if err != nil {
		return Result{}, err
	}

	samples := allocate(durations, cfg.budget)
	boundaries := make([]int, numEpochs+1)
	for j, n := range samples {
		boundaries[j+1] = boundaries[j] + n
	}

	res := Result{
		Values:        make([][]float64, nTrials),
		Boundaries:    boundaries,
		Samples:       samples,
		MeanDurations: durations,
		Axis:          make([]float64, cfg.budget),
	}

	start := -prePad
	for j, n := range samples {
		fillEpoch(res.Axis[boundaries[j]:boundaries[j+1]], start, start+durations[j], n, j == numEpochs-1)
		start += durations[j]
	}

	query := make([]float64, cfg.budget)
	for i, e := range edges {
		row := make([]float64, cfg.budget)
		if e == nil {
			core.FillNaN(row)
			res.Values[i] = row
			continue
		}

		for j, n := range samples {
			fillEpoch(query[boundaries[j]:boundaries[j+1]], e[j], e[j+1], n, j == numEpochs-1)
		}
		if err := interp.LinearTo(row, sig.Times, sig.Values, query); err != nil {
			return Result{}, fmt.Errorf("warp: trial %d: %w", i, err)
		}

		baseline := core.NaNMean(row[:boundaries[1]])
		for k := range row {
			row[k] -= baseline
		}
		res.Values[i] = row
	}

	return res, nil
}

// epochEdges returns, per trial, the numEpochs+1 epoch edges, or nil when a
// boundary is missing.
func epochEdges(epochEvents [][]float64, prePad, postPad float64) ([][]float64, error) {
	nTrials := len(epochEvents[0])
	k := len(epochEvents)

	edges := make([][]float64, nTrials)
	for i := 0; i < nTrials; i++ {
		e := make([]float64, k+2)
		missing := false
		for j := 0; j < k; j++ {
			t := epochEvents[j][i]
			if signal.IsMissing(t) {
				missing = true
				break
			}
			if math.IsInf(t, 0) {
				return nil, fmt.Errorf("%w: trial %d, boundary %d", ErrNonFiniteBoundary, i, j)
			}
			if j > 0 && t <= e[j] {
				return nil, fmt.Errorf("%w: trial %d, boundary %d at %g after %g", ErrNonMonotonicEpochs, i, j, t, e[j])
			}
			e[j+1] = t
		}
		if missing {
			continue
		}
		e[0] = e[1] - prePad
		e[k+1] = e[k] + postPad
		if !core.IsFinite(e[0]) || !core.IsFinite(e[k+1]) {
			return nil, fmt.Errorf("%w: trial %d padded edges [%g, %g]", ErrNonFiniteBoundary, i, e[0], e[k+1])
		}
		edges[i] = e
	}
	return edges, nil
}

func meanDurations(edges [][]float64, numEpochs int) ([]float64, error) {
	sums := make([]float64, numEpochs)
	valid := 0
	for _, e := range edges {
		if e == nil {
			continue
		}
		valid++
		for j := range sums {
			sums[j] += e[j+1] - e[j]
		}
	}
	if valid == 0 {
		return nil, ErrNoValidTrials
	}

	for j := range sums {
		sums[j] /= float64(valid)
	}
	return sums, nil
}

// allocate splits budget across epochs in proportion to durations using the
// largest-remainder method, so the counts always sum to budget. Every epoch
// with a positive duration gets at least one sample; budget must be at least
// len(durations).
func allocate(durations []float64, budget int) []int {
	counts := make([]int, len(durations))
	total := 0.0
	used := 0
	for j, d := range durations {
		if d > 0 {
			counts[j] = 1
			used++
			total += d
		}
	}

	rest := budget - used
	rems := make([]float64, len(durations))
	for j, d := range durations {
		if d <= 0 {
			continue
		}
		q := float64(rest) * d / total
		n := int(math.Floor(q))
		counts[j] += n
		rems[j] = q - float64(n)
		used += n
	}

	order := make([]int, len(durations))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool { return rems[order[a]] > rems[order[b]] })

	for i := 0; used < budget; i++ {
		counts[order[i%len(order)]]++
		used++
	}
	return counts
}

// fillEpoch writes n evenly spaced times spanning [a, b). The last epoch
// spans [a, b] so the trial ends exactly at its final edge.
func fillEpoch(dst []float64, a, b float64, n int, closed bool) {
	denom := float64(n)
	if closed && n > 1 {
		denom = float64(n - 1)
	}
	for i := range dst {
		dst[i] = a + (b-a)*float64(i)/denom
	}
}
