// Package spec describes figures as plain data: a grid of facets, each
// holding an ordered list of layers. Nothing here draws; a renderer turns a
// validated [Figure] into an image file.
package spec

import (
	"errors"
	"fmt"
	"image/color"
)

// Errors returned by [Figure.Validate] and [Builder.Build].
var (
	ErrInvalidGrid     = errors.New("spec: invalid facet grid")
	ErrFacetOutOfRange = errors.New("spec: facet outside grid")
	ErrDuplicateFacet  = errors.New("spec: duplicate facet")
	ErrShapeMismatch   = errors.New("spec: layer shape mismatch")
	ErrInvalidRange    = errors.New("spec: invalid axis range")
	ErrInvalidSize     = errors.New("spec: invalid figure size")
)

// Range is a closed axis interval.
type Range struct {
	Min, Max float64
}

// Figure is a grid of facets.
type Figure struct {
	Title string
	Rows  int
	Cols  int
	// Width and Height are in inches.
	Width  float64
	Height float64
	Facets []Facet
}

// Facet is one panel of a figure.
type Facet struct {
	Row, Col int
	Title    string
	XLabel   string
	YLabel   string
	// XRange and YRange fix the axis limits when set.
	XRange *Range
	YRange *Range
	Legend bool
	Layers []Layer
}

// Layer is one drawable element of a facet.
type Layer interface {
	// Kind names the layer type in error messages.
	Kind() string
	check() error
}

// Line is a polyline. NaN values break the line.
type Line struct {
	X, Y   []float64
	Color  color.Color
	Width  float64
	Dashed bool
	Label  string
}

// Band is a filled region between Lower and Upper.
type Band struct {
	X            []float64
	Lower, Upper []float64
	Color        color.Color
}

// Raster draws one tick per spike: X is the spike time and Row the trial.
type Raster struct {
	X, Row []float64
	// Colors optionally sets a colour per tick.
	Colors []color.Color
	Color  color.Color
}

// HeatMap is a colour-coded grid. Z has len(Y) rows of len(X) values.
type HeatMap struct {
	X, Y []float64
	Z    [][]float64
}

// Bars draws vertical bars of Width centred on X.
type Bars struct {
	X, Height []float64
	Width     float64
	Color     color.Color
}

// VLine is a vertical marker spanning the facet.
type VLine struct {
	X      float64
	Color  color.Color
	Dashed bool
	Label  string
}

func (Line) Kind() string    { return "line" }
func (Band) Kind() string    { return "band" }
func (Raster) Kind() string  { return "raster" }
func (HeatMap) Kind() string { return "heatmap" }
func (Bars) Kind() string    { return "bars" }
func (VLine) Kind() string   { return "vline" }

func (l Line) check() error {
	if len(l.X) == 0 || len(l.X) != len(l.Y) {
		return fmt.Errorf("%d x values, %d y values", len(l.X), len(l.Y))
	}
	return nil
}

func (b Band) check() error {
	if len(b.X) == 0 || len(b.Lower) != len(b.X) || len(b.Upper) != len(b.X) {
		return fmt.Errorf("%d x values, %d lower, %d upper", len(b.X), len(b.Lower), len(b.Upper))
	}
	return nil
}

func (r Raster) check() error {
	if len(r.X) != len(r.Row) {
		return fmt.Errorf("%d times, %d rows", len(r.X), len(r.Row))
	}
	if r.Colors != nil && len(r.Colors) != len(r.X) {
		return fmt.Errorf("%d colours for %d ticks", len(r.Colors), len(r.X))
	}
	return nil
}

func (h HeatMap) check() error {
	if len(h.X) == 0 || len(h.Y) == 0 || len(h.Z) != len(h.Y) {
		return fmt.Errorf("%d x, %d y, %d z rows", len(h.X), len(h.Y), len(h.Z))
	}
	for i, row := range h.Z {
		if len(row) != len(h.X) {
			return fmt.Errorf("z row %d has %d values, want %d", i, len(row), len(h.X))
		}
	}
	return nil
}

func (b Bars) check() error {
	if len(b.X) == 0 || len(b.X) != len(b.Height) {
		return fmt.Errorf("%d positions, %d heights", len(b.X), len(b.Height))
	}
	if !(b.Width > 0) {
		return fmt.Errorf("bar width %g", b.Width)
	}
	return nil
}

func (VLine) check() error { return nil }

// Validate checks the grid, facet placement and the shape of every layer.
func (f *Figure) Validate() error {
	if f.Rows < 1 || f.Cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, f.Rows, f.Cols)
	}
	if !(f.Width > 0) || !(f.Height > 0) {
		return fmt.Errorf("%w: %gx%g in", ErrInvalidSize, f.Width, f.Height)
	}

	seen := make(map[[2]int]bool, len(f.Facets))
	for _, fc := range f.Facets {
		if fc.Row < 0 || fc.Row >= f.Rows || fc.Col < 0 || fc.Col >= f.Cols {
			return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrFacetOutOfRange, fc.Row, fc.Col, f.Rows, f.Cols)
		}
		key := [2]int{fc.Row, fc.Col}
		if seen[key] {
			return fmt.Errorf("%w: (%d,%d)", ErrDuplicateFacet, fc.Row, fc.Col)
		}
		seen[key] = true

		for _, r := range []*Range{fc.XRange, fc.YRange} {
			if r != nil && !(r.Min < r.Max) {
				return fmt.Errorf("%w: facet (%d,%d) [%g, %g]", ErrInvalidRange, fc.Row, fc.Col, r.Min, r.Max)
			}
		}
		for i, l := range fc.Layers {
			if err := l.check(); err != nil {
				return fmt.Errorf("%w: facet (%d,%d) %s layer %d: %v", ErrShapeMismatch, fc.Row, fc.Col, l.Kind(), i, err)
			}
		}
	}
	return nil
}

// Facet returns the facet at (row, col), or nil.
func (f *Figure) Facet(row, col int) *Facet {
	for i := range f.Facets {
		if f.Facets[i].Row == row && f.Facets[i].Col == col {
			return &f.Facets[i]
		}
	}
	return nil
}
