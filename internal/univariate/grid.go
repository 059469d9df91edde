package univariate

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Grid geometry in inches.
const (
	GridColumns    = 3
	GridWidthInch  = 14
	GridRowHeight  = 3
	tickRotation   = math.Pi / 6
	defaultCellPad = 4 * vg.Millimeter
)

// SubplotGrid is a figure canvas split into Rows x GridColumns plot cells.
type SubplotGrid struct {
	Rows   int
	Cols   int
	Width  vg.Length
	Height vg.Length
	Plots  [][]*plot.Plot
	// Layers holds the data plotter drawn in each cell, in feature order.
	// Unused or empty cells hold nil.
	Layers []plot.Plotter
}

// GridShape returns the rows and columns used for count features.
// Negative counts are treated as zero.
func GridShape(count int) (rows, cols int) {
	if count < 0 {
		count = 0
	}
	return count/GridColumns + 1, GridColumns
}

// NewSubplotGrid allocates a grid for count features. Every cell holds an
// empty plot styled for univariate display, including the unused trailing
// cells.
func NewSubplotGrid(count int) *SubplotGrid {
	rows, cols := GridShape(count)

	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
		for c := range plots[r] {
			plots[r][c] = newCell("")
		}
	}

	return &SubplotGrid{
		Rows:   rows,
		Cols:   cols,
		Width:  vg.Length(GridWidthInch) * vg.Inch,
		Height: vg.Length(rows*GridRowHeight) * vg.Inch,
		Plots:  plots,
		Layers: make([]plot.Plotter, rows*cols),
	}
}

// Cell returns the plot for the i-th feature, at row i/3 and column i%3.
func (g *SubplotGrid) Cell(i int) *plot.Plot {
	return g.Plots[i/GridColumns][i%GridColumns]
}

// Layer returns the data plotter drawn in the i-th cell, or nil.
func (g *SubplotGrid) Layer(i int) plot.Plotter {
	return g.Layers[i]
}

// Inches returns the canvas size in inches.
func (g *SubplotGrid) Inches() (w, h float64) {
	return float64(g.Width / vg.Inch), float64(g.Height / vg.Inch)
}

// Draw lays the cells out with a tight alignment pass and draws them onto a
// new raster canvas.
func (g *SubplotGrid) Draw(dpi int) *vgimg.Canvas {
	c := vgimg.NewWith(vgimg.UseWH(g.Width, g.Height), vgimg.UseDPI(dpi))
	drawTiles(g.Plots, draw.New(c))
	return c
}

func drawTiles(plots [][]*plot.Plot, dc draw.Canvas) {
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadTop:    defaultCellPad,
		PadBottom: defaultCellPad,
		PadLeft:   defaultCellPad,
		PadRight:  defaultCellPad,
		PadX:      2 * defaultCellPad,
		PadY:      2 * defaultCellPad,
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c, p := range plots[r] {
			if p != nil {
				p.Draw(canvases[r][c])
			}
		}
	}
}

// newCell returns an empty plot with rotated plain tick labels and no grid.
func newCell(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title

	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Tick.Marker = plainTicks{}
		axis.Tick.Label.Rotation = tickRotation
	}
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YTop
	p.Y.Tick.Label.XAlign = draw.XRight
	p.Y.Tick.Label.YAlign = draw.YCenter

	return p
}
