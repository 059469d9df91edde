package univariate

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	apperrors "edacli/internal/errors"
)

const (
	// HistogramBins is the bin count used by grid histograms.
	HistogramBins = 5
	// DefaultDPI is the raster resolution used when none is configured.
	DefaultDPI = 96

	boxWidth = 20 * vg.Millimeter
)

// Renderer draws univariate figures and hands them to a Backend.
type Renderer struct {
	backend Backend
	dpi     int
	logger  *slog.Logger
}

// NewRenderer creates a renderer. A non-positive dpi selects DefaultDPI and
// a nil logger selects slog.Default().
func NewRenderer(backend Backend, dpi int, logger *slog.Logger) *Renderer {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		backend: backend,
		dpi:     dpi,
		logger:  logger.With(slog.String("component", "univariate_renderer")),
	}
}

// Backend returns the backend figures are shown on.
func (r *Renderer) Backend() Backend {
	return r.backend
}

// cellPainter adds one column's data to a grid cell and returns the layer it
// added, or nil when there was nothing to draw.
type cellPainter func(p *plot.Plot, values plotter.Values) (plot.Plotter, error)

// Histograms draws a 5-bin histogram of each column into its grid cell and
// shows the figure. An empty column list shows an empty 1x3 grid.
func (r *Renderer) Histograms(ctx context.Context, df dataframe.DataFrame, columns []string) error {
	return r.renderGrid(ctx, "histograms", df, columns, histogramCell)
}

// Boxplots draws a horizontal boxplot of each column into its grid cell and
// shows the figure.
func (r *Renderer) Boxplots(ctx context.Context, df dataframe.DataFrame, columns []string) error {
	return r.renderGrid(ctx, "boxplots", df, columns, addBoxplot)
}

func (r *Renderer) renderGrid(ctx context.Context, kind string, df dataframe.DataFrame, columns []string, paint cellPainter) error {
	start := time.Now()
	grid, err := buildGrid(ctx, kind, df, columns, paint)
	if err != nil {
		return err
	}

	fig := newCanvasFigure(kind, grid.Draw(r.dpi))
	if err := r.backend.Show(ctx, fig); err != nil {
		return apperrors.NewRenderError("show "+kind, err)
	}

	r.logger.DebugContext(ctx, "figure shown",
		slog.String("kind", kind),
		slog.Int("columns", len(columns)),
		slog.Int("grid_rows", grid.Rows),
		slog.Int("grid_cols", grid.Cols),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// buildGrid lays out one titled cell per column, in order, and paints each
// column's values into it. Cells past the last column stay empty.
func buildGrid(ctx context.Context, kind string, df dataframe.DataFrame, columns []string, paint cellPainter) (*SubplotGrid, error) {
	grid := NewSubplotGrid(len(columns))

	for i, column := range columns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		values, err := NumericValues(df, column)
		if err != nil {
			return nil, err
		}

		cell := grid.Cell(i)
		cell.Title.Text = column
		layer, err := paint(cell, values)
		if err != nil {
			return nil, apperrors.NewRenderError(fmt.Sprintf("draw %s of column %q", kind, column), err).
				WithContext("column", column)
		}
		grid.Layers[i] = layer
	}
	return grid, nil
}

func histogramCell(p *plot.Plot, values plotter.Values) (plot.Plotter, error) {
	return addHistogram(p, values, HistogramBins)
}

// NumericValues returns the non-missing values of a numeric column.
// Unknown columns yield a not-found error and non-numeric columns a
// validation error.
func NumericValues(df dataframe.DataFrame, column string) (plotter.Values, error) {
	if df.Err != nil {
		return nil, apperrors.NewParsingError("dataset is unusable", df.Err)
	}

	s := df.Col(column)
	if s.Err != nil {
		return nil, apperrors.NewColumnNotFoundError(column, s.Err)
	}

	switch s.Type() {
	case series.Int, series.Float:
	default:
		// A column with no values at all has no detectable type.
		if allMissing(s) {
			return plotter.Values{}, nil
		}
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("column %q has non-numeric type %s", column, s.Type())).
			WithContext("column", column)
	}

	raw := s.Float()
	values := make(plotter.Values, 0, len(raw))
	for _, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}

func allMissing(s series.Series) bool {
	for _, na := range s.IsNaN() {
		if !na {
			return false
		}
	}
	return true
}

func addHistogram(p *plot.Plot, values plotter.Values, bins int) (plot.Plotter, error) {
	if len(values) == 0 {
		return nil, nil
	}
	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return nil, err
	}
	p.Add(h)
	p.Y.Label.Text = "Count"
	return h, nil
}

func addBoxplot(p *plot.Plot, values plotter.Values) (plot.Plotter, error) {
	if len(values) == 0 {
		return nil, nil
	}
	b, err := plotter.NewBoxPlot(boxWidth, 0, values)
	if err != nil {
		return nil, err
	}
	b.Horizontal = true
	p.Add(b)
	p.HideY()
	return b, nil
}
