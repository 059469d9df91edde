package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"

	"edacli/internal/config"
	"edacli/internal/dataset"
	apperrors "edacli/internal/errors"
	"edacli/internal/exporter"
	"edacli/internal/infrastructure"
	"edacli/internal/univariate"
)

// DatasetStore is the dataset source used by AnalysisService
type DatasetStore interface {
	List(ctx context.Context) ([]dataset.Info, error)
	Open(ctx context.Context, name string) (dataframe.DataFrame, error)
}

// Export formats
const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
)

// AnalysisService runs univariate analyses on stored datasets
type AnalysisService struct {
	store   DatasetStore
	paths   *config.Paths
	metrics *infrastructure.AnalysisMetrics
	dpi     int
	logger  *slog.Logger
}

// NewAnalysisService creates an analysis service with injected dependencies
func NewAnalysisService(store DatasetStore, paths *config.Paths, metrics *infrastructure.AnalysisMetrics, dpi int, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		store:   store,
		paths:   paths,
		metrics: metrics,
		dpi:     dpi,
		logger:  logger.With(slog.String("component", "analysis_service")),
	}
}

// ListDatasets returns the datasets of the store
func (s *AnalysisService) ListDatasets(ctx context.Context) ([]dataset.Info, error) {
	if s.store == nil {
		return nil, ErrNoDatasetStore
	}
	return s.store.List(ctx)
}

// ColumnNulls summarizes missing values per column
func (s *AnalysisService) ColumnNulls(ctx context.Context, name string) (univariate.ColumnNullSummary, error) {
	var summary univariate.ColumnNullSummary
	err := s.run(ctx, "column_nulls", name, func(df dataframe.DataFrame) error {
		var err error
		summary, err = univariate.SummarizeColumnNulls(df)
		return err
	})
	return summary, err
}

// RowNulls summarizes missing values per row, grouped
func (s *AnalysisService) RowNulls(ctx context.Context, name string) (univariate.RowNullSummary, error) {
	var summary univariate.RowNullSummary
	err := s.run(ctx, "row_nulls", name, func(df dataframe.DataFrame) error {
		var err error
		summary, err = univariate.SummarizeRowNulls(df)
		return err
	})
	return summary, err
}

// Describe computes descriptive statistics; no columns means every numeric column
func (s *AnalysisService) Describe(ctx context.Context, name string, columns []string) (univariate.Description, error) {
	var desc univariate.Description
	err := s.run(ctx, "describe", name, func(df dataframe.DataFrame) error {
		var err error
		desc, err = univariate.Describe(df, columns)
		return err
	})
	return desc, err
}

// Histograms renders the histogram grid of columns as PNG
func (s *AnalysisService) Histograms(ctx context.Context, name string, columns []string) ([]byte, error) {
	return s.plot(ctx, "histograms", name, func(r *univariate.Renderer, df dataframe.DataFrame) error {
		return r.Histograms(ctx, df, columns)
	})
}

// Boxplots renders the boxplot grid of columns as PNG
func (s *AnalysisService) Boxplots(ctx context.Context, name string, columns []string) ([]byte, error) {
	return s.plot(ctx, "boxplots", name, func(r *univariate.Renderer, df dataframe.DataFrame) error {
		return r.Boxplots(ctx, df, columns)
	})
}

// SingleVariable renders the histogram and boxplot of one feature as PNG
func (s *AnalysisService) SingleVariable(ctx context.Context, name, feature string, opts univariate.SingleOptions) ([]byte, error) {
	return s.plot(ctx, "single_variable", name, func(r *univariate.Renderer, df dataframe.DataFrame) error {
		return r.PlotSingleVariable(ctx, df, feature, opts)
	})
}

// NullChart renders the missing value bar chart as PNG
func (s *AnalysisService) NullChart(ctx context.Context, name string) ([]byte, error) {
	return s.plot(ctx, "null_chart", name, func(r *univariate.Renderer, df dataframe.DataFrame) error {
		summary, err := univariate.SummarizeColumnNulls(df)
		if err != nil {
			return err
		}
		return r.NullChart(ctx, summary)
	})
}

// ExportSummaries writes the null summaries and description of a dataset to
// the output directory and returns the files written.
func (s *AnalysisService) ExportSummaries(ctx context.Context, name, format string) ([]string, error) {
	if format != ExportCSV && format != ExportXLSX {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("%v: %q", ErrUnknownFormat, format))
	}

	var written []string
	err := s.run(ctx, "export_"+format, name, func(df dataframe.DataFrame) error {
		tables, err := SummaryTables(df)
		if err != nil {
			return err
		}
		written, err = WriteTables(s.paths, s.logger, name, format, tables)
		return err
	})
	return written, err
}

// SummaryTables computes the exportable summaries of df
func SummaryTables(df dataframe.DataFrame) ([]exporter.Table, error) {
	cols, err := univariate.SummarizeColumnNulls(df)
	if err != nil {
		return nil, err
	}
	rows, err := univariate.SummarizeRowNulls(df)
	if err != nil {
		return nil, err
	}
	desc, err := univariate.Describe(df, nil)
	if err != nil {
		return nil, err
	}
	return []exporter.Table{
		exporter.ColumnNullsTable(cols),
		exporter.RowNullsTable(rows),
		exporter.DescribeTable(desc),
	}, nil
}

// WriteTables writes tables for dataset name as one workbook or one CSV
// file per table.
func WriteTables(paths *config.Paths, logger *slog.Logger, name, format string, tables []exporter.Table) ([]string, error) {
	base := baseName(name)
	switch format {
	case ExportXLSX:
		path, err := exporter.NewExcelWriter(paths, logger).WriteWorkbook(base+"_summary.xlsx", tables...)
		if err != nil {
			return nil, apperrors.NewStorageError("write workbook", err)
		}
		return []string{path}, nil
	case ExportCSV:
		w := exporter.NewCSVWriter(paths, logger)
		written := make([]string, 0, len(tables))
		for _, t := range tables {
			path, err := w.WriteTable(fmt.Sprintf("%s_%s.csv", base, t.Name), t, true)
			if err != nil {
				return written, apperrors.NewStorageError("write csv", err)
			}
			written = append(written, path)
		}
		return written, nil
	default:
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("%v: %q", ErrUnknownFormat, format))
	}
}

func (s *AnalysisService) plot(ctx context.Context, kind, name string, draw func(*univariate.Renderer, dataframe.DataFrame) error) ([]byte, error) {
	backend := univariate.NewMemoryBackend()
	renderer := univariate.NewRenderer(backend, s.dpi, s.logger)

	err := s.run(ctx, kind, name, func(df dataframe.DataFrame) error {
		return draw(renderer, df)
	})
	if err != nil {
		return nil, err
	}

	fig := backend.Last()
	if fig == nil {
		return nil, apperrors.NewRenderError(kind, ErrNoFigure)
	}
	png, err := fig.PNG()
	if err != nil {
		return nil, apperrors.NewRenderError("encode "+kind, err)
	}
	if s.metrics != nil {
		s.metrics.FiguresRendered.Add(ctx, 1)
	}
	return png, nil
}

// run opens the dataset, applies fn and records the outcome
func (s *AnalysisService) run(ctx context.Context, kind, name string, fn func(dataframe.DataFrame) error) error {
	if s.store == nil {
		return ErrNoDatasetStore
	}

	start := time.Now()
	ctx = infrastructure.WithDataset(ctx, name)
	logger := s.logger.With(slog.String("analysis", kind))

	df, err := s.store.Open(ctx, name)
	if err == nil {
		err = fn(df)
	}

	duration := time.Since(start)
	s.metrics.RecordAnalysis(ctx, kind, df.Nrow(), duration, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		logger.WarnContext(ctx, "analysis failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration))
		return err
	}

	logger.InfoContext(ctx, "analysis completed",
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()),
		slog.Duration("duration", duration))
	return nil
}

func baseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
