package univariate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	apperrors "edacli/internal/errors"
)

// Dual view geometry in inches and its default bin count.
const (
	SingleWidthInch   = 14
	SingleHeightInch  = 4
	DefaultSingleBins = 50
)

// SingleOptions tunes PlotSingleVariable. The zero value gives an untitled
// figure with DefaultSingleBins bins.
type SingleOptions struct {
	Title string
	Bins  int
}

func (o SingleOptions) bins() (int, error) {
	switch {
	case o.Bins == 0:
		return DefaultSingleBins, nil
	case o.Bins < 0:
		return 0, apperrors.NewAppValidationError(fmt.Sprintf("bin count must be positive, got %d", o.Bins))
	default:
		return o.Bins, nil
	}
}

// PlotSingleVariable shows a histogram and a boxplot of one column side by
// side, under an optional figure title.
func (r *Renderer) PlotSingleVariable(ctx context.Context, df dataframe.DataFrame, feature string, opts SingleOptions) error {
	view, err := buildSingle(df, feature, opts)
	if err != nil {
		return err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(SingleWidthInch)*vg.Inch, vg.Length(SingleHeightInch)*vg.Inch),
		vgimg.UseDPI(r.dpi),
	)
	dc := draw.New(c)
	body := drawSuptitle(dc, opts.Title)
	drawTiles([][]*plot.Plot{{view.hist, view.box}}, body)

	if err := r.backend.Show(ctx, newCanvasFigure(opts.Title, c)); err != nil {
		return apperrors.NewRenderError("show single variable view", err)
	}

	r.logger.DebugContext(ctx, "figure shown",
		slog.String("kind", "single"),
		slog.String("feature", feature),
		slog.Int("bins", view.bins))
	return nil
}

// singleView is the histogram pane and the boxplot pane of one feature,
// with the data layers drawn in each. Layers are nil when the feature has
// no values.
type singleView struct {
	hist, box           *plot.Plot
	histLayer, boxLayer plot.Plotter
	bins                int
}

func buildSingle(df dataframe.DataFrame, feature string, opts SingleOptions) (singleView, error) {
	bins, err := opts.bins()
	if err != nil {
		return singleView{}, err
	}

	values, err := NumericValues(df, feature)
	if err != nil {
		return singleView{}, err
	}

	view := singleView{hist: newCell(""), box: newCell(""), bins: bins}
	view.hist.X.Label.Text = feature
	if view.histLayer, err = addHistogram(view.hist, values, bins); err != nil {
		return singleView{}, apperrors.NewRenderError(fmt.Sprintf("draw histogram of column %q", feature), err).
			WithContext("column", feature)
	}

	view.box.X.Label.Text = feature
	if view.boxLayer, err = addBoxplot(view.box, values); err != nil {
		return singleView{}, apperrors.NewRenderError(fmt.Sprintf("draw boxplot of column %q", feature), err).
			WithContext("column", feature)
	}
	return view, nil
}

// drawSuptitle writes a figure-level title across the top of dc and returns
// the canvas left below it. An empty title leaves dc untouched.
func drawSuptitle(dc draw.Canvas, title string) draw.Canvas {
	if title == "" {
		return dc
	}

	header := plot.New()
	header.Title.Text = title
	header.HideAxes()
	header.Draw(dc)

	h := header.Title.TextStyle.Height(title) + header.Title.Padding
	return draw.Crop(dc, 0, 0, 0, -h)
}
