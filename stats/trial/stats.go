// Package trial summarizes trial-by-sample matrices column by column: a
// central value and a lower/upper band per column, computed only from the
// defined (non-NaN) entries of that column.
package trial

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cwbudde/algo-spikes/dsp/core"
)

// Errors returned by [Summarize].
var (
	ErrEmpty       = errors.New("trial: no rows")
	ErrRaggedRows  = errors.New("trial: rows differ in length")
	ErrUnknownStat = errors.New("trial: unknown statistic")
	ErrInvalidBand = errors.New("trial: invalid band option")
)

// Stat selects the band drawn around the central value.
type Stat int

const (
	// StatSEM is mean ± standard error of the mean.
	StatSEM Stat = iota
	// StatCI is mean with a Student-t confidence interval.
	StatCI
	// StatSD is mean ± standard deviation.
	StatSD
	// StatPercentile is the median with a percentile band.
	StatPercentile
)

var statNames = map[Stat]string{
	StatSEM:        "sem",
	StatCI:         "ci",
	StatSD:         "std",
	StatPercentile: "percentile",
}

// String returns the short name accepted by [ParseStat].
func (s Stat) String() string {
	if n, ok := statNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Stat(%d)", int(s))
}

// ParseStat maps "sem", "ci", "std" (or "sd") and "percentile" to a Stat.
func ParseStat(name string) (Stat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sem", "se":
		return StatSEM, nil
	case "ci":
		return StatCI, nil
	case "std", "sd":
		return StatSD, nil
	case "percentile", "quartile":
		return StatPercentile, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStat, name)
}

// Option configures [Summarize].
type Option func(*config)

type config struct {
	level  float64
	lowerP float64
	upperP float64
	err    error
}

func defaultConfig() config {
	return config{level: 0.95, lowerP: 25, upperP: 75}
}

// WithLevel sets the confidence level for StatCI, in (0, 1).
func WithLevel(level float64) Option {
	return func(c *config) {
		if !(level > 0 && level < 1) {
			c.err = fmt.Errorf("%w: level %g", ErrInvalidBand, level)
			return
		}
		c.level = level
	}
}

// WithPercentiles sets the band for StatPercentile, in percent.
func WithPercentiles(lower, upper float64) Option {
	return func(c *config) {
		if !(lower >= 0 && upper <= 100 && lower < upper) {
			c.err = fmt.Errorf("%w: percentiles [%g, %g]", ErrInvalidBand, lower, upper)
			return
		}
		c.lowerP, c.upperP = lower, upper
	}
}

// Summary holds one central value and band per column.
type Summary struct {
	Center []float64
	Lower  []float64
	Upper  []float64
	// N holds the number of defined entries per column.
	N []int
}

// Summarize computes the selected statistic for every column of rows.
// Columns without defined entries are NaN; a band that needs two entries
// (SEM, CI, SD) collapses onto the centre for a single entry.
func Summarize(rows [][]float64, s Stat, opts ...Option) (Summary, error) {
	if len(rows) == 0 {
		return Summary{}, ErrEmpty
	}
	if _, ok := statNames[s]; !ok {
		return Summary{}, fmt.Errorf("%w: %d", ErrUnknownStat, int(s))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.err != nil {
		return Summary{}, cfg.err
	}

	width := len(rows[0])
	for i, r := range rows {
		if len(r) != width {
			return Summary{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedRows, i, len(r), width)
		}
	}

	out := Summary{
		Center: make([]float64, width),
		Lower:  make([]float64, width),
		Upper:  make([]float64, width),
		N:      make([]int, width),
	}

	col := make([]float64, 0, len(rows))
	for k := 0; k < width; k++ {
		col = col[:0]
		for _, r := range rows {
			if !math.IsNaN(r[k]) {
				col = append(col, r[k])
			}
		}
		out.N[k] = len(col)
		out.Center[k], out.Lower[k], out.Upper[k] = summarizeColumn(col, s, cfg)
	}

	return out, nil
}

func summarizeColumn(col []float64, s Stat, cfg config) (center, lower, upper float64) {
	n := len(col)
	if n == 0 {
		nan := math.NaN()
		return nan, nan, nan
	}

	if s == StatPercentile {
		sort.Float64s(col)
		// LinInterp at 0.5 is not the midpoint median for odd n.
		med := core.Median(col)
		lo := stat.Quantile(cfg.lowerP/100, stat.LinInterp, col, nil)
		hi := stat.Quantile(cfg.upperP/100, stat.LinInterp, col, nil)
		return med, lo, hi
	}

	if n < 2 {
		return col[0], col[0], col[0]
	}
	mean, variance := stat.MeanVariance(col, nil)
	sd := math.Sqrt(variance)

	var half float64
	switch s {
	case StatSD:
		half = sd
	case StatSEM:
		half = sd / math.Sqrt(float64(n))
	case StatCI:
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
		half = t.Quantile(0.5+cfg.level/2) * sd / math.Sqrt(float64(n))
	}

	return mean, mean - half, mean + half
}
