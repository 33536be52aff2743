// Package align extracts the part of a signal that falls inside a window
// around each event.
//
// Spike trains align to [Trial] values holding event-relative spike times.
// Continuous signals align to [Traces]: one fixed-length, linearly
// interpolated row per event on a shared relative time axis.
package align

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spikes/dsp/core"
	"github.com/cwbudde/algo-spikes/dsp/interp"
	"github.com/cwbudde/algo-spikes/neuro/signal"
)

// Errors returned by the aligners.
var (
	ErrInvalidWindow = errors.New("align: invalid window")
	ErrEmptySignal   = signal.ErrEmptySignal
	ErrInvalidStep   = errors.New("align: invalid resampling step")
)

// axisTolerance absorbs rounding when deciding whether the window end is on
// the resampling grid.
const axisTolerance = 1e-9

const edgeSlack = 1e-9

// Trial holds the spikes of one event, relative to the event time.
type Trial struct {
	Event   float64
	Times   []float64
	Missing bool
}

// Len returns the number of spikes in the trial.
func (t Trial) Len() int {
	return len(t.Times)
}

// Spikes aligns a spike train to every event. A spike s is kept for event e
// when window.Start <= s-e <= window.End. Missing events produce a Trial with
// Missing set; they are never dropped.
func Spikes(spikes signal.Spikes, events []float64, window signal.Window) ([]Trial, error) {
	if err := validate(window, len(spikes)); err != nil {
		return nil, err
	}
	if err := spikes.Validate(); err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}

	trials := make([]Trial, len(events))
	for i, e := range events {
		if signal.IsMissing(e) {
			trials[i] = Trial{Event: e, Missing: true}
			continue
		}

		// Widen the absolute search slightly; the relative test decides.
		slack := edgeSlack * math.Max(1, math.Abs(e))
		near := spikes.Between(e+window.Start-slack, e+window.End+slack)

		rel := make([]float64, 0, len(near))
		for _, s := range near {
			if window.Contains(s - e) {
				rel = append(rel, s-e)
			}
		}
		trials[i] = Trial{Event: e, Times: rel}
	}

	return trials, nil
}

// Counts returns the number of spikes per trial, NaN for missing trials.
func Counts(trials []Trial) []float64 {
	out := make([]float64, len(trials))
	for i, t := range trials {
		if t.Missing {
			out[i] = math.NaN()
			continue
		}
		out[i] = float64(len(t.Times))
	}
	return out
}

// Raster flattens trials into parallel (time, row) slices for raster plots.
// Row i holds the spikes of trials[i]; missing trials contribute nothing.
func Raster(trials []Trial) (times, rows []float64) {
	for i, t := range trials {
		for _, s := range t.Times {
			times = append(times, s)
			rows = append(rows, float64(i))
		}
	}
	return times, rows
}

// Traces is a continuous signal aligned to a set of events.
type Traces struct {
	// Axis holds the event-relative query offsets shared by every row.
	Axis []float64
	// Values holds one row per event; NaN where undefined.
	Values [][]float64
	// Step is the resampling interval.
	Step float64
}

// Continuous aligns a sampled signal to every event, resampling at the
// median sample interval of the signal.
func Continuous(sig signal.Continuous, events []float64, window signal.Window) (Traces, error) {
	if err := validate(window, sig.Len()); err != nil {
		return Traces{}, err
	}
	step := sig.SampleInterval()
	if math.IsNaN(step) {
		// A single sample has no spacing; fall back to the window itself.
		step = window.Duration()
	}
	return ContinuousStep(sig, events, window, step)
}

// ContinuousStep is like [Continuous] with an explicit resampling step.
// Query offsets run from window.Start in steps of step up to window.End;
// values outside the recorded span of the signal are NaN.
func ContinuousStep(sig signal.Continuous, events []float64, window signal.Window, step float64) (Traces, error) {
	if err := validate(window, sig.Len()); err != nil {
		return Traces{}, err
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return Traces{}, fmt.Errorf("%w: %g", ErrInvalidStep, step)
	}
	if err := sig.Validate(); err != nil {
		return Traces{}, fmt.Errorf("align: %w", err)
	}

	axis := Axis(window, step)
	query := make([]float64, len(axis))
	values := make([][]float64, len(events))

	for i, e := range events {
		row := make([]float64, len(axis))
		if signal.IsMissing(e) {
			core.FillNaN(row)
			values[i] = row
			continue
		}

		for k, off := range axis {
			query[k] = e + off
		}
		if err := interp.LinearTo(row, sig.Times, sig.Values, query); err != nil {
			return Traces{}, fmt.Errorf("align: %w", err)
		}
		values[i] = row
	}

	return Traces{Axis: axis, Values: values, Step: step}, nil
}

// Axis returns the offsets window.Start, window.Start+step, ... that do not
// exceed window.End (within a small relative tolerance).
func Axis(window signal.Window, step float64) []float64 {
	n := int(math.Floor(window.Duration()/step+axisTolerance)) + 1
	axis := make([]float64, n)
	for k := range axis {
		axis[k] = window.Start + float64(k)*step
	}
	return axis
}

func validate(window signal.Window, n int) error {
	if err := window.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWindow, err)
	}
	if n == 0 {
		return ErrEmptySignal
	}
	return nil
}
