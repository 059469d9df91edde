package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edacli/internal/config"
	apperrors "edacli/internal/errors"
	"edacli/internal/shared/testutil"
)

const housingCSV = `bedrooms,bathrooms,area,city
3,2,1500,Basra
4,,2100,Erbil
2,1,,Mosul
`

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths = config.PathsConfig{
		DataDir:   filepath.Join(base, "data"),
		OutputDir: filepath.Join(base, "figures"),
		LogsDir:   filepath.Join(base, "logs"),
	}
	cfg.Plot.DPI = 48
	cfg.Security.RateLimit.Enabled = false

	logger, _ := testutil.NewTestLogger(t)
	application, err := NewApplication(cfg, logger)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(cfg.Paths.DataDir, "housing.csv"), []byte(housingCSV), 0644))
	return application
}

func serve(a *Application, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestNewApplication(t *testing.T) {
	a := newTestApplication(t)

	assert.NotNil(t, a.Router)
	assert.NotNil(t, a.Server)
	assert.NotNil(t, a.AnalysisService)
	assert.NotNil(t, a.HealthService)
	assert.Equal(t, ":8080", a.Server.Addr)
	assert.DirExists(t, a.Paths.OutputDir)
	assert.DirExists(t, a.Paths.LogsDir)
}

func TestNewApplication_RequiresConfig(t *testing.T) {
	_, err := NewApplication(nil, nil)
	assert.Error(t, err)
}

func TestApplication_Routes(t *testing.T) {
	a := newTestApplication(t)

	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		contentType    string
	}{
		{"root", http.MethodGet, "/", http.StatusOK, "application/json"},
		{"health", http.MethodGet, "/api/health", http.StatusOK, "application/json"},
		{"ready", http.MethodGet, "/api/health/ready", http.StatusOK, "application/json"},
		{"version", http.MethodGet, "/api/version", http.StatusOK, "application/json"},
		{"datasets", http.MethodGet, "/api/datasets", http.StatusOK, "application/json"},
		{"column nulls", http.MethodGet, "/api/datasets/housing.csv/nulls/columns", http.StatusOK, "application/json"},
		{"row nulls", http.MethodGet, "/api/datasets/housing.csv/nulls/rows", http.StatusOK, "application/json"},
		{"describe", http.MethodGet, "/api/datasets/housing.csv/describe", http.StatusOK, "application/json"},
		{"histograms", http.MethodGet, "/api/datasets/housing.csv/plots/hist?columns=bedrooms,area", http.StatusOK, "image/png"},
		{"histograms without columns", http.MethodGet, "/api/datasets/housing.csv/plots/hist", http.StatusOK, "image/png"},
		{"boxplots", http.MethodGet, "/api/datasets/housing.csv/plots/box?columns=bathrooms", http.StatusOK, "image/png"},
		{"single", http.MethodGet, "/api/datasets/housing.csv/plots/single?feature=area&bins=5", http.StatusOK, "image/png"},
		{"null chart", http.MethodGet, "/api/datasets/housing.csv/plots/nulls", http.StatusOK, "image/png"},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, "text/plain"},
		{"unknown route", http.MethodGet, "/api/unknown", http.StatusNotFound, "application/json"},
		{"unknown dataset", http.MethodGet, "/api/datasets/absent.csv/nulls/rows", http.StatusNotFound, "application/json"},
		{"unknown column", http.MethodGet, "/api/datasets/housing.csv/plots/hist?columns=garage", http.StatusNotFound, "application/json"},
		{"string column", http.MethodGet, "/api/datasets/housing.csv/plots/box?columns=city", http.StatusBadRequest, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(a, tt.method, tt.target)

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestApplication_ColumnNullsBody(t *testing.T) {
	a := newTestApplication(t)

	rec := serve(a, http.MethodGet, "/api/datasets/housing.csv/nulls/columns")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Dataset string `json:"dataset"`
		Data    []struct {
			Column         string  `json:"column"`
			RowsMissing    int     `json:"rows_missing"`
			PercentMissing float64 `json:"percent_missing"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Data, 4)
	assert.Equal(t, "bathrooms", body.Data[1].Column)
	assert.Equal(t, 1, body.Data[1].RowsMissing)
	assert.InDelta(t, 1.0/3.0, body.Data[1].PercentMissing, 1e-12)
}

func TestApplication_UnknownColumnProblem(t *testing.T) {
	a := newTestApplication(t)

	rec := serve(a, http.MethodGet, "/api/datasets/housing.csv/plots/single?feature=garage")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.TypeColumnNotFound, body["type"])
	assert.Equal(t, "garage", body["column"])
}

func TestApplication_Export(t *testing.T) {
	a := newTestApplication(t)

	rec := serve(a, http.MethodPost, "/api/datasets/housing.csv/export?format=csv")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.FileExists(t, filepath.Join(a.Paths.OutputDir, "housing_column_nulls.csv"))
	assert.FileExists(t, filepath.Join(a.Paths.OutputDir, "housing_row_nulls.csv"))
	assert.FileExists(t, filepath.Join(a.Paths.OutputDir, "housing_describe.csv"))
}

func TestApplication_MetricsRecordAnalyses(t *testing.T) {
	a := newTestApplication(t)

	serve(a, http.MethodGet, "/api/datasets/housing.csv/nulls/rows")
	rec := serve(a, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.Contains(rec.Body.Bytes(), []byte("analyses_total")))
	assert.True(t, bytes.Contains(rec.Body.Bytes(), []byte("http_requests_total")))
}

func TestApplication_StartupHealthCheck(t *testing.T) {
	a := newTestApplication(t)
	assert.NoError(t, a.performStartupHealthCheck(context.Background()))

	require.NoError(t, os.RemoveAll(a.Paths.DataDir))
	assert.Error(t, a.performStartupHealthCheck(context.Background()))
}

func TestApplication_StartStop(t *testing.T) {
	a := newTestApplication(t)
	a.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, a.Start(ctx, cancel))
	require.NotEmpty(t, a.Addr())

	resp, err := http.Get("http://" + a.Addr() + "/api/health/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.NoError(t, a.Stop(context.Background()))
}

func TestApplication_RunStopsOnCancel(t *testing.T) {
	a := newTestApplication(t)
	a.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
