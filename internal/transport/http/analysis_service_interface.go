package http

import (
	"context"

	"edacli/internal/dataset"
	"edacli/internal/univariate"
)

// AnalysisServiceInterface defines the analyses exposed over HTTP
type AnalysisServiceInterface interface {
	ListDatasets(ctx context.Context) ([]dataset.Info, error)
	ColumnNulls(ctx context.Context, name string) (univariate.ColumnNullSummary, error)
	RowNulls(ctx context.Context, name string) (univariate.RowNullSummary, error)
	Describe(ctx context.Context, name string, columns []string) (univariate.Description, error)
	Histograms(ctx context.Context, name string, columns []string) ([]byte, error)
	Boxplots(ctx context.Context, name string, columns []string) ([]byte, error)
	SingleVariable(ctx context.Context, name, feature string, opts univariate.SingleOptions) ([]byte, error)
	NullChart(ctx context.Context, name string) ([]byte, error)
	ExportSummaries(ctx context.Context, name, format string) ([]string, error)
}
