package testutil

import (
	"math/rand"
	"sort"
)

// PoissonSpikes generates a homogeneous Poisson spike train on [0, duration)
// with a fixed seed for reproducibility.
func PoissonSpikes(seed int64, rate, duration float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	return appendPoisson(nil, rng, rate, 0, duration)
}

// EvokedSpikes generates a Poisson train firing at baseRate everywhere and at
// evokedRate during [e, e+evokedDur) after every event e.
func EvokedSpikes(seed int64, baseRate, evokedRate float64, events []float64, evokedDur, duration float64) []float64 {
	rng := rand.New(rand.NewSource(seed))

	sorted := append([]float64(nil), events...)
	sort.Float64s(sorted)

	var out []float64
	t := 0.0
	for _, e := range sorted {
		if e < t {
			continue
		}
		end := e + evokedDur
		if end > duration {
			end = duration
		}
		out = appendPoisson(out, rng, baseRate, t, e)
		out = appendPoisson(out, rng, evokedRate, e, end)
		t = end
	}
	return appendPoisson(out, rng, baseRate, t, duration)
}

// EvenEvents returns n event times spread evenly over (0, duration).
func EvenEvents(n int, duration float64) []float64 {
	out := make([]float64, n)
	step := duration / float64(n+1)
	for i := range out {
		out[i] = step * float64(i+1)
	}
	return out
}

// SampledTrace samples fn every dt on [t0, t1].
func SampledTrace(fn func(t float64) float64, dt, t0, t1 float64) (times, values []float64) {
	n := int((t1-t0)/dt+1e-9) + 1
	times = make([]float64, n)
	values = make([]float64, n)
	for i := range times {
		times[i] = t0 + float64(i)*dt
		values[i] = fn(times[i])
	}
	return times, values
}

func appendPoisson(out []float64, rng *rand.Rand, rate, from, to float64) []float64 {
	if rate <= 0 || to <= from {
		return out
	}
	t := from
	for {
		t += rng.ExpFloat64() / rate
		if t >= to {
			return out
		}
		out = append(out, t)
	}
}
