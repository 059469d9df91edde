package univariate

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot/vg"

	apperrors "edacli/internal/errors"
)

// Null chart size in pixels.
const (
	nullChartWidth  = 1024
	nullChartHeight = 480
	nullChartTitle  = "percent_missing by column"
)

// NullChart shows a bar chart of the percentage of missing values per
// column. An empty summary is a validation error since there is nothing to
// draw.
func (r *Renderer) NullChart(ctx context.Context, summary ColumnNullSummary) error {
	if len(summary) == 0 {
		return apperrors.NewAppValidationError("null chart needs at least one column")
	}

	bars := make([]chart.Value, len(summary))
	for i, c := range summary {
		bars[i] = chart.Value{Label: c.Column, Value: c.PercentMissing * 100}
	}

	bc := chart.BarChart{
		Title:    nullChartTitle,
		Width:    nullChartWidth,
		Height:   nullChartHeight,
		DPI:      float64(r.dpi),
		BarWidth: barWidth(len(summary)),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return apperrors.NewRenderError("render null chart", err)
	}

	w := vg.Length(float64(nullChartWidth)/float64(r.dpi)) * vg.Inch
	h := vg.Length(float64(nullChartHeight)/float64(r.dpi)) * vg.Inch
	if err := r.backend.Show(ctx, newEncodedFigure(nullChartTitle, w, h, buf.Bytes())); err != nil {
		return apperrors.NewRenderError("show null chart", err)
	}

	r.logger.DebugContext(ctx, "figure shown",
		slog.String("kind", "null_chart"),
		slog.Int("columns", len(summary)))
	return nil
}

func barWidth(n int) int {
	w := (nullChartWidth - 100) / (2 * n)
	switch {
	case w > 60:
		return 60
	case w < 4:
		return 4
	default:
		return w
	}
}
