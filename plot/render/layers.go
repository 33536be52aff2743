package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cwbudde/algo-spikes/plot/spec"
)

const (
	bandAlpha  = 0.3
	heatColors = 64
)

var dashes = []vg.Length{vg.Points(4), vg.Points(3)}

func (r *GonumRenderer) addLayer(p *plot.Plot, l spec.Layer, ext spec.Range, pick func(color.Color) color.Color, legend bool) error {
	switch l := l.(type) {
	case spec.Line:
		c := pick(l.Color)
		var first *plotter.Line
		for _, seg := range segments(l.X, l.Y) {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return err
			}
			line.LineStyle.Color = c
			if l.Width > 0 {
				line.LineStyle.Width = vg.Points(l.Width)
			}
			if l.Dashed {
				line.LineStyle.Dashes = dashes
			}
			if first == nil {
				first = line
			}
			p.Add(line)
		}
		if legend && l.Label != "" && first != nil {
			p.Legend.Add(l.Label, first)
		}

	case spec.Band:
		fill := translucent(pick(l.Color), bandAlpha)
		for _, poly := range bandPolygons(l) {
			pg, err := plotter.NewPolygon(poly)
			if err != nil {
				return err
			}
			pg.Color = fill
			pg.LineStyle.Width = 0
			p.Add(pg)
		}

	case spec.Raster:
		if len(l.X) == 0 {
			return nil
		}
		xys := make(plotter.XYs, len(l.X))
		for i := range l.X {
			xys[i] = plotter.XY{X: l.X[i], Y: l.Row[i]}
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		base := pick(l.Color)
		sc.GlyphStyle = draw.GlyphStyle{Color: base, Radius: vg.Points(1), Shape: draw.BoxGlyph{}}
		if l.Colors != nil {
			colors := l.Colors
			sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
				gs := sc.GlyphStyle
				if colors[i] != nil {
					gs.Color = colors[i]
				}
				return gs
			}
		}
		p.Add(sc)

	case spec.HeatMap:
		hm := plotter.NewHeatMap(grid(l), palette.Heat(heatColors, 1))
		hm.NaN = color.Transparent
		p.Add(hm)

	case spec.Bars:
		bins := make([]plotter.HistogramBin, len(l.X))
		for i, x := range l.X {
			bins[i] = plotter.HistogramBin{Min: x - l.Width/2, Max: x + l.Width/2, Weight: l.Height[i]}
		}
		h := &plotter.Histogram{
			Bins:      bins,
			Width:     l.Width,
			FillColor: pick(l.Color),
			LineStyle: plotter.DefaultLineStyle,
		}
		h.LineStyle.Width = 0
		p.Add(h)

	case spec.VLine:
		line, err := plotter.NewLine(plotter.XYs{{X: l.X, Y: ext.Min}, {X: l.X, Y: ext.Max}})
		if err != nil {
			return err
		}
		line.LineStyle.Color = pick(l.Color)
		if l.Dashed {
			line.LineStyle.Dashes = dashes
		}
		p.Add(line)
		if legend && l.Label != "" {
			p.Legend.Add(l.Label, line)
		}
	}
	return nil
}

// segments splits a series into runs of finite points.
func segments(xs, ys []float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// bandPolygons returns one closed outline per run where both bounds are
// defined.
func bandPolygons(b spec.Band) []plotter.XYs {
	var out []plotter.XYs
	start := -1
	flush := func(end int) {
		if start < 0 || end-start < 2 {
			start = -1
			return
		}
		poly := make(plotter.XYs, 0, 2*(end-start))
		for i := start; i < end; i++ {
			poly = append(poly, plotter.XY{X: b.X[i], Y: b.Upper[i]})
		}
		for i := end - 1; i >= start; i-- {
			poly = append(poly, plotter.XY{X: b.X[i], Y: b.Lower[i]})
		}
		out = append(out, poly)
		start = -1
	}
	for i := range b.X {
		ok := finite(b.X[i]) && finite(b.Lower[i]) && finite(b.Upper[i])
		switch {
		case ok && start < 0:
			start = i
		case !ok:
			flush(i)
		}
	}
	flush(len(b.X))
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func translucent(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * alpha))
	return n
}

// heatGrid adapts a spec.HeatMap to plotter.GridXYZ.
type heatGrid struct {
	h spec.HeatMap
}

func grid(h spec.HeatMap) heatGrid { return heatGrid{h: h} }

func (g heatGrid) Dims() (c, r int)   { return len(g.h.X), len(g.h.Y) }
func (g heatGrid) Z(c, r int) float64 { return g.h.Z[r][c] }
func (g heatGrid) X(c int) float64    { return g.h.X[c] }
func (g heatGrid) Y(r int) float64    { return g.h.Y[r] }
