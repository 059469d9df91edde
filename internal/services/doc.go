// Package services implements the analysis layer between the transports
// (HTTP handlers and the CLI) and the univariate core.
//
// # Architecture
//
// Services follow these principles:
//
//  1. Interface-driven dependencies for testability (DatasetStore)
//  2. Context propagation for cancellation and tracing
//  3. Dependency injection of logger, metrics and output paths
//
// # Analysis Service
//
// AnalysisService opens a dataset from the store, runs one analysis on it and
// records the run in the analysis metrics. Plot methods render onto a private
// in-memory backend per call and return PNG bytes, so concurrent requests
// never share a figure.
//
//	svc := services.NewAnalysisService(store, paths, metrics, 96, logger)
//	summary, err := svc.ColumnNulls(ctx, "housing.csv")
//	png, err := svc.Histograms(ctx, "housing.csv", []string{"area", "tax_value"})
//
// # Health Service
//
// HealthService reports liveness, readiness (data and output directories)
// and version information.
package services
