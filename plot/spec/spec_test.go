package spec

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	b := NewBuilder("psth", 2, 1).Size(8, 5)
	top := b.Facet(0, 0)
	top.Title = "raster"
	top.Add(Raster{X: []float64{0.1, 0.2}, Row: []float64{0, 1}})
	b.Facet(1, 0).Add(
		Band{X: []float64{0, 1}, Lower: []float64{0, 0}, Upper: []float64{1, 1}},
		Line{X: []float64{0, 1}, Y: []float64{0.5, 0.5}, Color: color.Black},
		VLine{X: 0},
	)

	fig, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "psth", fig.Title)
	assert.Equal(t, 8.0, fig.Width)
	require.Len(t, fig.Facets, 2)
	assert.Equal(t, "raster", fig.Facet(0, 0).Title)
	assert.Len(t, fig.Facet(1, 0).Layers, 3)
	assert.Nil(t, fig.Facet(1, 1))
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func() *Builder
		want  error
	}{
		{
			name:  "empty grid",
			setup: func() *Builder { return NewBuilder("", 0, 1) },
			want:  ErrInvalidGrid,
		},
		{
			name:  "size",
			setup: func() *Builder { return NewBuilder("", 1, 1).Size(0, 3) },
			want:  ErrInvalidSize,
		},
		{
			name: "out of range",
			setup: func() *Builder {
				b := NewBuilder("", 1, 2)
				b.Facet(1, 0)
				return b
			},
			want: ErrFacetOutOfRange,
		},
		{
			name: "duplicate",
			setup: func() *Builder {
				b := NewBuilder("", 1, 2)
				b.Facet(0, 1)
				b.Facet(0, 1)
				return b
			},
			want: ErrDuplicateFacet,
		},
		{
			name: "range",
			setup: func() *Builder {
				b := NewBuilder("", 1, 1)
				b.Facet(0, 0).YRange = &Range{Min: 2, Max: 1}
				return b
			},
			want: ErrInvalidRange,
		},
		{
			name: "line",
			setup: func() *Builder {
				b := NewBuilder("", 1, 1)
				b.Facet(0, 0).Add(Line{X: []float64{1, 2}, Y: []float64{1}})
				return b
			},
			want: ErrShapeMismatch,
		},
		{
			name: "band",
			setup: func() *Builder {
				b := NewBuilder("", 1, 1)
				b.Facet(0, 0).Add(Band{X: []float64{1, 2}, Lower: []float64{1, 2}, Upper: []float64{1}})
				return b
			},
			want: ErrShapeMismatch,
		},
		{
			name: "raster colours",
			setup: func() *Builder {
				b := NewBuilder("", 1, 1)
				b.Facet(0, 0).Add(Raster{X: []float64{1}, Row: []float64{0}, Colors: []color.Color{}})
				return b
			},
			want: ErrShapeMismatch,
		},
		{
			name: "heatmap",
			setup: func() *Builder {
				b := NewBuilder("", 1, 1)
				b.Facet(0, 0).Add(HeatMap{X: []float64{0, 1}, Y: []float64{0}, Z: [][]float64{{1}}})
				return b
			},
			want: ErrShapeMismatch,
		},
		{
			name: "bars",
			setup: func() *Builder {
				b := NewBuilder("", 1, 1)
				b.Facet(0, 0).Add(Bars{X: []float64{0}, Height: []float64{1}})
				return b
			},
			want: ErrShapeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.setup().Build()
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestShapeMismatchNamesLayer(t *testing.T) {
	b := NewBuilder("", 1, 1)
	b.Facet(0, 0).Add(VLine{X: 0}, Line{X: []float64{1}, Y: nil})

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line layer 1")
}

func TestBuildCopiesFacets(t *testing.T) {
	b := NewBuilder("", 1, 2)
	b.Facet(0, 0)
	fig, err := b.Build()
	require.NoError(t, err)

	b.Facet(0, 1).Title = "later"
	assert.Len(t, fig.Facets, 1)
}
