// Package render draws plot specifications with gonum/plot.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cwbudde/algo-spikes/plot/spec"
)

// ErrUnsupportedFormat is returned for an output path whose extension has
// no encoder.
var ErrUnsupportedFormat = errors.New("render: unsupported output format")

var formats = map[string]string{
	".pdf":  "pdf",
	".png":  "png",
	".eps":  "eps",
	".jpg":  "jpg",
	".jpeg": "jpeg",
	".svg":  "svg",
	".tif":  "tif",
	".tiff": "tiff",
}

// Format returns the encoder name for the extension of path.
func Format(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := formats[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return f, nil
}

// GonumRenderer renders figures with gonum/plot, one plot per facet.
type GonumRenderer struct {
	// Palette colours layers without an explicit colour, in order.
	Palette []color.Color
}

// NewGonumRenderer returns a renderer with the default palette.
func NewGonumRenderer() *GonumRenderer {
	return &GonumRenderer{Palette: DefaultPalette()}
}

// DefaultPalette returns the colour cycle used for uncoloured layers.
func DefaultPalette() []color.Color {
	return []color.Color{
		color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
		color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
		color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
		color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
		color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	}
}

// Render validates fig, draws it and writes it to path in the format given
// by the path's extension.
func (r *GonumRenderer) Render(fig *spec.Figure, path string) error {
	format, err := Format(path)
	if err != nil {
		return err
	}
	if err := fig.Validate(); err != nil {
		return err
	}

	plots, err := r.Plots(fig)
	if err != nil {
		return err
	}

	w := vg.Length(fig.Width) * vg.Inch
	h := vg.Length(fig.Height) * vg.Inch
	cw, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	dc := draw.New(cw)
	if fig.Title != "" {
		dc = drawTitle(dc, fig.Title)
	}

	tiles := draw.Tiles{
		Rows: fig.Rows,
		Cols: fig.Cols,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := cw.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return f.Close()
}

// Plots builds one gonum plot per grid cell. Cells without a facet get an
// empty plot with hidden axes.
func (r *GonumRenderer) Plots(fig *spec.Figure) ([][]*plot.Plot, error) {
	plots := make([][]*plot.Plot, fig.Rows)
	for j := range plots {
		plots[j] = make([]*plot.Plot, fig.Cols)
		for i := range plots[j] {
			p := plot.New()
			p.HideAxes()
			plots[j][i] = p
		}
	}

	for _, fc := range fig.Facets {
		p, err := r.facet(fc)
		if err != nil {
			return nil, fmt.Errorf("render: facet (%d,%d): %w", fc.Row, fc.Col, err)
		}
		plots[fc.Row][fc.Col] = p
	}
	return plots, nil
}

func (r *GonumRenderer) facet(fc spec.Facet) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fc.Title
	p.X.Label.Text = fc.XLabel
	p.Y.Label.Text = fc.YLabel

	ext := extent(fc)
	next := 0
	pick := func(c color.Color) color.Color {
		if c != nil {
			return c
		}
		if len(r.Palette) == 0 {
			return color.Black
		}
		c = r.Palette[next%len(r.Palette)]
		next++
		return c
	}

	for _, l := range fc.Layers {
		if err := r.addLayer(p, l, ext, pick, fc.Legend); err != nil {
			return nil, fmt.Errorf("%s: %w", l.Kind(), err)
		}
	}

	if fc.XRange != nil {
		p.X.Min, p.X.Max = fc.XRange.Min, fc.XRange.Max
	}
	if fc.YRange != nil {
		p.Y.Min, p.Y.Max = fc.YRange.Min, fc.YRange.Max
	}
	if fc.Legend {
		p.Legend.Top = true
	}
	return p, nil
}

func drawTitle(dc draw.Canvas, title string) draw.Canvas {
	sty := plot.New().Title.TextStyle
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop
	dc.FillText(sty, vg.Point{X: dc.Center().X, Y: dc.Max.Y}, title)
	return draw.Crop(dc, 0, 0, 0, -(sty.Height(title) + vg.Millimeter))
}

// extent returns the y range a vertical marker should span in a facet.
func extent(fc spec.Facet) spec.Range {
	if fc.YRange != nil {
		return *fc.YRange
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	grow := func(vs ...float64) {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	for _, l := range fc.Layers {
		switch l := l.(type) {
		case spec.Line:
			grow(l.Y...)
		case spec.Band:
			grow(l.Lower...)
			grow(l.Upper...)
		case spec.Raster:
			grow(l.Row...)
			if len(l.Row) > 0 {
				grow(-0.5)
				hi += 0.5
			}
		case spec.HeatMap:
			grow(l.Y...)
		case spec.Bars:
			grow(0)
			grow(l.Height...)
		}
	}
	if lo > hi {
		return spec.Range{Min: 0, Max: 1}
	}
	if lo == hi {
		return spec.Range{Min: lo - 0.5, Max: hi + 0.5}
	}
	return spec.Range{Min: lo, Max: hi}
}
