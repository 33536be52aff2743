package figures

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/cwbudde/algo-spikes/neuro/signal"
	"github.com/cwbudde/algo-spikes/neuro/warp"
	"github.com/cwbudde/algo-spikes/plot/spec"
	"github.com/cwbudde/algo-spikes/stats/trial"
)

// Errors returned by [NewConfig] and the plotting functions.
var (
	ErrInvalidConfig = errors.New("figures: invalid configuration")
	ErrNoRenderer    = errors.New("figures: output requested without a renderer")
	ErrNoEvents      = errors.New("figures: no alignment events")
)

// Renderer writes a figure to path.
type Renderer interface {
	Render(fig *spec.Figure, path string) error
}

// Split colours and averages trials by a categorical label per trial. An
// empty label leaves the trial unlabeled.
type Split struct {
	Name   string
	Labels []string
	// Colors holds one colour per distinct label in order of first
	// appearance. Nil picks colours from DefaultColors.
	Colors []color.Color
}

// Config holds the options shared by every figure.
type Config struct {
	Window      signal.Window
	BinWidth    float64
	SmoothWidth float64
	Stat        trial.Stat
	Title       string
	Output      string
	YLim        *spec.Range
	Split       *Split
	// SortTimes orders trials by SortTimes[i] minus the alignment time.
	SortTimes []float64
	// Baseline z-scores depth maps against this window when set.
	Baseline   *spec.Range
	WarpBudget int
	Width      float64
	Height     float64
	Renderer   Renderer
}

// Option configures a figure.
type Option func(*Config)

// DefaultConfig returns the defaults: a (-1, 1) s window, 1 ms bins, 10 ms
// smoothing, mean ± SEM, 400 warp samples and a 10x6 inch figure.
func DefaultConfig() Config {
	return Config{
		Window:      signal.Window{Start: -1, End: 1},
		BinWidth:    0.001,
		SmoothWidth: 0.01,
		Stat:        trial.StatSEM,
		WarpBudget:  warp.DefaultBudget,
		Width:       spec.DefaultWidth,
		Height:      spec.DefaultHeight,
	}
}

// NewConfig applies opts to the defaults and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every option. Errors name the offending option.
func (c Config) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return fmt.Errorf("%w: WithWindow: %v", ErrInvalidConfig, err)
	}
	if !(c.BinWidth > 0) || math.IsInf(c.BinWidth, 0) {
		return fmt.Errorf("%w: WithBinWidth: %g", ErrInvalidConfig, c.BinWidth)
	}
	if c.BinWidth > c.Window.Duration() {
		return fmt.Errorf("%w: WithBinWidth: %g s exceeds the %g s window", ErrInvalidConfig, c.BinWidth, c.Window.Duration())
	}
	if !(c.SmoothWidth >= 0) || math.IsInf(c.SmoothWidth, 0) {
		return fmt.Errorf("%w: WithSmoothWidth: %g", ErrInvalidConfig, c.SmoothWidth)
	}
	if c.Stat < trial.StatSEM || c.Stat > trial.StatPercentile {
		return fmt.Errorf("%w: WithStat: %v", ErrInvalidConfig, c.Stat)
	}
	if c.YLim != nil && !(c.YLim.Min < c.YLim.Max) {
		return fmt.Errorf("%w: WithYLim: [%g, %g]", ErrInvalidConfig, c.YLim.Min, c.YLim.Max)
	}
	if c.Baseline != nil && !(c.Baseline.Min < c.Baseline.Max) {
		return fmt.Errorf("%w: WithBaseline: [%g, %g]", ErrInvalidConfig, c.Baseline.Min, c.Baseline.Max)
	}
	if c.Split != nil && c.Split.Name == "" {
		return fmt.Errorf("%w: WithSplit: empty name", ErrInvalidConfig)
	}
	if c.WarpBudget < 1 {
		return fmt.Errorf("%w: WithWarpBudget: %d", ErrInvalidConfig, c.WarpBudget)
	}
	if !(c.Width > 0) || !(c.Height > 0) {
		return fmt.Errorf("%w: WithSize: %gx%g", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Output != "" && c.Renderer == nil {
		return fmt.Errorf("%w: %s", ErrNoRenderer, c.Output)
	}
	return nil
}

// WithWindow sets the analysis window around each event, in seconds.
func WithWindow(start, end float64) Option {
	return func(c *Config) { c.Window = signal.Window{Start: start, End: end} }
}

// WithBinWidth sets the PSTH bin width in seconds.
func WithBinWidth(w float64) Option {
	return func(c *Config) { c.BinWidth = w }
}

// WithSmoothWidth sets the causal smoothing width in seconds; 0 disables smoothing.
func WithSmoothWidth(w float64) Option {
	return func(c *Config) { c.SmoothWidth = w }
}

// WithStat selects the band drawn around the average.
func WithStat(s trial.Stat) Option {
	return func(c *Config) { c.Stat = s }
}

// WithTitle sets the figure title.
func WithTitle(title string) Option {
	return func(c *Config) { c.Title = title }
}

// WithOutput renders the figure to path. A renderer must be set as well.
func WithOutput(path string) Option {
	return func(c *Config) { c.Output = path }
}

// WithYLim fixes the y limits of the average panels.
func WithYLim(lo, hi float64) Option {
	return func(c *Config) { c.YLim = &spec.Range{Min: lo, Max: hi} }
}

// WithSplit groups trials by labels, one per trial.
func WithSplit(name string, labels []string, colors []color.Color) Option {
	return func(c *Config) { c.Split = &Split{Name: name, Labels: labels, Colors: colors} }
}

// WithSortTimes orders raster rows by the time of a second event relative
// to the alignment event.
func WithSortTimes(times []float64) Option {
	return func(c *Config) { c.SortTimes = times }
}

// WithBaseline z-scores depth maps against [from, to].
func WithBaseline(from, to float64) Option {
	return func(c *Config) { c.Baseline = &spec.Range{Min: from, Max: to} }
}

// WithRenderer sets the backend used when an output path is set.
func WithRenderer(r Renderer) Option {
	return func(c *Config) { c.Renderer = r }
}

// WithWarpBudget sets the number of samples per warped trial.
func WithWarpBudget(n int) Option {
	return func(c *Config) { c.WarpBudget = n }
}

// WithSize sets the figure size in inches.
func WithSize(width, height float64) Option {
	return func(c *Config) { c.Width, c.Height = width, height }
}
