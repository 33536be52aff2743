package align

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spikes/internal/testutil"
	"github.com/cwbudde/algo-spikes/neuro/signal"
)

func TestSpikesWindowInclusive(t *testing.T) {
	spikes := signal.Spikes{0.5, 0.9, 1.0, 1.5, 2.0, 2.1, 3.0}
	events := []float64{1.0, 2.0}
	w := signal.Window{Start: -0.5, End: 0.5}

	trials, err := Spikes(spikes, events, w)
	require.NoError(t, err)
	require.Len(t, trials, 2)

	testutil.RequireSliceNearlyEqual(t, trials[0].Times, []float64{-0.5, -0.1, 0, 0.5}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, trials[1].Times, []float64{-0.5, 0, 0.1}, 1e-12)
	assert.False(t, trials[0].Missing)
	assert.Equal(t, 4, trials[0].Len())
}

func TestSpikesOnlyInsideWindow(t *testing.T) {
	spikes := signal.Spikes(testutil.PoissonSpikes(7, 20, 200))
	events := []float64{10, 37.3, 99.9, 150, 199}
	w := signal.Window{Start: -0.3, End: 0.7}

	trials, err := Spikes(spikes, events, w)
	require.NoError(t, err)

	for i, tr := range trials {
		want := 0
		for _, s := range spikes {
			if d := s - events[i]; d >= w.Start && d <= w.End {
				want++
			}
		}
		assert.Len(t, tr.Times, want, "trial %d", i)
		for _, rel := range tr.Times {
			assert.True(t, w.Contains(rel), "trial %d: %v outside window", i, rel)
		}
	}
}

func TestSpikesMissingEvent(t *testing.T) {
	trials, err := Spikes(signal.Spikes{1, 2, 3}, []float64{2, signal.Missing()}, signal.Window{Start: -1, End: 1})
	require.NoError(t, err)
	require.Len(t, trials, 2)

	assert.False(t, trials[0].Missing)
	assert.True(t, trials[1].Missing)
	assert.Empty(t, trials[1].Times)

	counts := Counts(trials)
	assert.Equal(t, 3.0, counts[0])
	assert.True(t, math.IsNaN(counts[1]))
}

func TestSpikesErrors(t *testing.T) {
	_, err := Spikes(signal.Spikes{1}, []float64{1}, signal.Window{Start: 1, End: 1})
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Spikes(signal.Spikes{1}, []float64{1}, signal.Window{Start: 2, End: 1})
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Spikes(nil, []float64{1}, signal.Window{Start: -1, End: 1})
	require.ErrorIs(t, err, ErrEmptySignal)

	_, err = Spikes(signal.Spikes{2, 1}, []float64{1}, signal.Window{Start: -1, End: 1})
	require.ErrorIs(t, err, signal.ErrNotIncreasing)
}

func TestRaster(t *testing.T) {
	trials := []Trial{
		{Times: []float64{-0.1, 0.2}},
		{Missing: true},
		{Times: []float64{0.3}},
	}
	times, rows := Raster(trials)
	assert.Equal(t, []float64{-0.1, 0.2, 0.3}, times)
	assert.Equal(t, []float64{0, 0, 2}, rows)
}

func TestContinuousInterpolates(t *testing.T) {
	// value == time, sampled every 10 ms from 0 to 10 s
	n := 1001
	sig := signal.Continuous{Times: make([]float64, n), Values: make([]float64, n)}
	for i := range sig.Times {
		sig.Times[i] = float64(i) * 0.01
		sig.Values[i] = sig.Times[i]
	}

	w := signal.Window{Start: -0.1, End: 0.1}
	tr, err := Continuous(sig, []float64{5.005, signal.Missing(), 0.05}, w)
	require.NoError(t, err)

	require.Len(t, tr.Axis, 21)
	assert.InDelta(t, -0.1, tr.Axis[0], 1e-12)
	assert.InDelta(t, 0.1, tr.Axis[20], 1e-9)
	assert.InDelta(t, 0.01, tr.Step, 1e-12)

	for k, off := range tr.Axis {
		assert.InDelta(t, 5.005+off, tr.Values[0][k], 1e-9)
		assert.True(t, math.IsNaN(tr.Values[1][k]))
	}

	// Third event starts before the recording: first samples are undefined.
	assert.True(t, math.IsNaN(tr.Values[2][0]))
	assert.InDelta(t, 0.05, tr.Values[2][10], 1e-9)
}

func TestContinuousErrors(t *testing.T) {
	_, err := Continuous(signal.Continuous{}, []float64{1}, signal.Window{Start: -1, End: 1})
	require.ErrorIs(t, err, ErrEmptySignal)

	sig := signal.Continuous{Times: []float64{0, 1}, Values: []float64{0, 1}}
	_, err = Continuous(sig, []float64{1}, signal.Window{Start: 1, End: 0})
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = ContinuousStep(sig, []float64{1}, signal.Window{Start: 0, End: 1}, 0)
	require.ErrorIs(t, err, ErrInvalidStep)
}

func TestAxis(t *testing.T) {
	axis := Axis(signal.Window{Start: -1, End: 1}, 0.001)
	assert.Len(t, axis, 2001)
	axis = Axis(signal.Window{Start: 0, End: 1}, 0.3)
	assert.Len(t, axis, 4)
}
