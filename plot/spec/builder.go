package spec

// Default figure size in inches.
const (
	DefaultWidth  = 10
	DefaultHeight = 6
)

// Builder assembles a [Figure] facet by facet.
type Builder struct {
	fig Figure
}

// NewBuilder starts a rows x cols figure of the default size.
func NewBuilder(title string, rows, cols int) *Builder {
	return &Builder{fig: Figure{
		Title:  title,
		Rows:   rows,
		Cols:   cols,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}}
}

// Size sets the figure size in inches.
func (b *Builder) Size(width, height float64) *Builder {
	b.fig.Width, b.fig.Height = width, height
	return b
}

// Facet adds a facet at (row, col) and returns it for further setup. The
// pointer is valid until the next call to Facet.
func (b *Builder) Facet(row, col int) *Facet {
	b.fig.Facets = append(b.fig.Facets, Facet{Row: row, Col: col})
	return &b.fig.Facets[len(b.fig.Facets)-1]
}

// Add appends layers to the facet.
func (f *Facet) Add(layers ...Layer) *Facet {
	f.Layers = append(f.Layers, layers...)
	return f
}

// Build validates and returns the figure.
func (b *Builder) Build() (*Figure, error) {
	fig := b.fig
	fig.Facets = append([]Facet(nil), b.fig.Facets...)
	if err := fig.Validate(); err != nil {
		return nil, err
	}
	return &fig, nil
}
