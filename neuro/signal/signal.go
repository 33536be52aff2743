// Package signal defines the inputs shared by the alignment, binning and
// warping packages: spike trains, continuously sampled traces, per-trial event
// times and alignment windows.
//
// Missing event times are represented as NaN. Every consumer treats a NaN
// event as an explicit undefined trial rather than dropping it.
package signal

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-spikes/dsp/core"
)

// Errors returned by validation.
var (
	ErrEmptySignal    = errors.New("signal: empty signal")
	ErrNotIncreasing  = errors.New("signal: timestamps not strictly increasing")
	ErrLengthMismatch = errors.New("signal: times and values differ in length")
	ErrInvalidWindow  = errors.New("signal: invalid window")
	ErrNonFinite      = errors.New("signal: non-finite timestamp")
	ErrDecreasing     = errors.New("signal: timestamps decreasing")
)

// Missing returns the marker used for an undefined event time.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether t marks an undefined event time.
func IsMissing(t float64) bool {
	return math.IsNaN(t)
}

// Spikes is a sparse event series: strictly increasing timestamps in seconds.
type Spikes []float64

// Validate checks that the series is non-empty, finite and strictly increasing.
func (s Spikes) Validate() error {
	if len(s) == 0 {
		return ErrEmptySignal
	}
	return checkIncreasing(s)
}

// ValidateSorted is like Validate but allows equal neighbours, as in a
// merged train where several units fire at the same instant.
func (s Spikes) ValidateSorted() error {
	if len(s) == 0 {
		return ErrEmptySignal
	}
	for i, t := range s {
		if !core.IsFinite(t) {
			return fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
		if i > 0 && t < s[i-1] {
			return fmt.Errorf("%w at index %d (%g after %g)", ErrDecreasing, i, t, s[i-1])
		}
	}
	return nil
}

// Between returns the sub-slice of spikes with lo <= t <= hi.
// The result aliases s.
func (s Spikes) Between(lo, hi float64) Spikes {
	i := sort.SearchFloat64s(s, lo)
	j := sort.Search(len(s), func(k int) bool { return s[k] > hi })
	if j < i {
		return s[i:i]
	}
	return s[i:j]
}

// Continuous is a densely sampled series such as pupil diameter or a
// fluorescence trace. Times must be strictly increasing and near uniform.
type Continuous struct {
	Times  []float64
	Values []float64
}

// Validate checks lengths and timestamp ordering.
func (c Continuous) Validate() error {
	if len(c.Times) != len(c.Values) {
		return fmt.Errorf("%w: %d times, %d values", ErrLengthMismatch, len(c.Times), len(c.Values))
	}
	if len(c.Times) == 0 {
		return ErrEmptySignal
	}
	return checkIncreasing(c.Times)
}

// Len returns the number of samples.
func (c Continuous) Len() int {
	return len(c.Times)
}

// SampleInterval returns the median spacing between timestamps, or NaN for
// fewer than two samples.
func (c Continuous) SampleInterval() float64 {
	return core.MedianSpacing(c.Times)
}

// Events is a named set of alignment times, one per trial.
type Events struct {
	Name  string
	Times []float64
}

// Len returns the number of trials.
func (e Events) Len() int {
	return len(e.Times)
}

// MissingCount returns how many trials have no event time.
func (e Events) MissingCount() int {
	n := 0
	for _, t := range e.Times {
		if IsMissing(t) {
			n++
		}
	}
	return n
}

// Window is an interval relative to an event time.
type Window struct {
	Start float64
	End   float64
}

// Validate requires finite bounds with Start < End.
func (w Window) Validate() error {
	if !core.IsFinite(w.Start) || !core.IsFinite(w.End) || w.Start >= w.End {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// Duration returns End - Start.
func (w Window) Duration() float64 {
	return w.End - w.Start
}

// Contains reports whether the relative time t lies in [Start, End].
func (w Window) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}

func checkIncreasing(ts []float64) error {
	for i, t := range ts {
		if !core.IsFinite(t) {
			return fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
		if i > 0 && t <= ts[i-1] {
			return fmt.Errorf("%w at index %d (%g after %g)", ErrNotIncreasing, i, t, ts[i-1])
		}
	}
	return nil
}
