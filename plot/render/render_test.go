package render

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spikes/plot/spec"
)

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"a.png":     "png",
		"dir/b.PDF": "pdf",
		"c.svg":     "svg",
		"d.jpeg":    "jpeg",
		"e.tif":     "tif",
		"f.eps":     "eps",
	}
	for path, want := range tests {
		got, err := Format(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := Format("plot.bmp")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = Format("noext")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func sampleFigure(t *testing.T) *spec.Figure {
	t.Helper()

	xs := []float64{-1, -0.5, 0, 0.5, 1}
	mean := []float64{math.NaN(), 2, 4, 3, 2}
	lower := []float64{math.NaN(), 1, 3, 2, 1}
	upper := []float64{math.NaN(), 3, 5, 4, 3}

	b := spec.NewBuilder("sample", 2, 2).Size(6, 4)
	b.Facet(0, 0).Add(spec.Raster{
		X:      []float64{-0.2, 0.1, 0.3},
		Row:    []float64{0, 1, 1},
		Colors: []color.Color{color.Black, nil, color.RGBA{R: 255, A: 255}},
	}, spec.VLine{X: 0, Dashed: true})

	f := b.Facet(1, 0)
	f.Legend = true
	f.XRange = &spec.Range{Min: -1, Max: 1}
	f.Add(
		spec.Band{X: xs, Lower: lower, Upper: upper},
		spec.Line{X: xs, Y: mean, Label: "all"},
		spec.VLine{X: 0, Label: "event"},
	)

	b.Facet(0, 1).Add(spec.HeatMap{
		X: []float64{0, 1, 2},
		Y: []float64{10, 20},
		Z: [][]float64{{1, 2, 3}, {4, math.NaN(), 6}},
	})

	fig, err := b.Build()
	require.NoError(t, err)
	return fig
}

func TestRenderPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fig.png")
	r := NewGonumRenderer()

	require.NoError(t, r.Render(sampleFigure(t), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderSVGBars(t *testing.T) {
	b := spec.NewBuilder("", 1, 1)
	b.Facet(0, 0).Add(spec.Bars{X: []float64{-0.01, 0, 0.01}, Height: []float64{3, 0, 3}, Width: 0.01})
	fig, err := b.Build()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "acg.svg")
	require.NoError(t, NewGonumRenderer().Render(fig, path))
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestRenderErrors(t *testing.T) {
	r := NewGonumRenderer()
	dir := t.TempDir()

	err := r.Render(sampleFigure(t), filepath.Join(dir, "fig.bmp"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	bad := &spec.Figure{Rows: 1, Cols: 1, Width: 1, Height: 1, Facets: []spec.Facet{{Row: 3}}}
	err = r.Render(bad, filepath.Join(dir, "bad.png"))
	require.ErrorIs(t, err, spec.ErrFacetOutOfRange)

	_, err = os.Stat(filepath.Join(dir, "bad.png"))
	assert.True(t, os.IsNotExist(err), "nothing is written on failure")
}

func TestPlotsFillsEmptyCells(t *testing.T) {
	plots, err := NewGonumRenderer().Plots(sampleFigure(t))
	require.NoError(t, err)
	require.Len(t, plots, 2)
	for _, row := range plots {
		for _, p := range row {
			assert.NotNil(t, p)
		}
	}
	assert.Equal(t, -1.0, plots[1][0].X.Min)
}

func TestSegments(t *testing.T) {
	segs := segments([]float64{0, 1, 2, 3, 4}, []float64{1, math.NaN(), 2, 3, math.Inf(1)})
	require.Len(t, segs, 2)
	assert.Len(t, segs[0], 1)
	assert.Len(t, segs[1], 2)
}

func TestBandPolygons(t *testing.T) {
	b := spec.Band{
		X:     []float64{0, 1, 2, 3, 4},
		Lower: []float64{0, 0, math.NaN(), 0, 0},
		Upper: []float64{1, 1, 1, 1, 1},
	}
	polys := bandPolygons(b)
	require.Len(t, polys, 2)
	assert.Equal(t, 4, len(polys[0]))
	assert.Equal(t, 1.0, polys[0][0].Y)
	assert.Equal(t, 0.0, polys[0][3].Y)
}

func TestExtent(t *testing.T) {
	fc := spec.Facet{Layers: []spec.Layer{
		spec.Line{X: []float64{0, 1}, Y: []float64{2, math.NaN()}},
		spec.Band{X: []float64{0, 1}, Lower: []float64{1, 1}, Upper: []float64{5, 5}},
	}}
	assert.Equal(t, spec.Range{Min: 1, Max: 5}, extent(fc))

	fc.YRange = &spec.Range{Min: -1, Max: 1}
	assert.Equal(t, spec.Range{Min: -1, Max: 1}, extent(fc))

	assert.Equal(t, spec.Range{Min: 0, Max: 1}, extent(spec.Facet{}))
}

func TestTranslucent(t *testing.T) {
	c := translucent(color.RGBA{R: 255, A: 255}, 0.5).(color.NRGBA)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.A)
}
