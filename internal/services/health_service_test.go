package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edacli/internal/config"
)

func TestHealthService_HealthCheck(t *testing.T) {
	hs := NewHealthService("1.2.0", "", config.PathsConfig{}, nil)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, StatusOK, status.Status)
	assert.Equal(t, "1.2.0", status.Version)
	assert.False(t, status.Timestamp.IsZero())
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	assert.NoError(t, os.MkdirAll(dataDir, 0755))

	tests := []struct {
		name     string
		paths    config.PathsConfig
		expected string
	}{
		{"ready", config.PathsConfig{DataDir: dataDir, OutputDir: filepath.Join(base, "output")}, StatusReady},
		{"missing data dir", config.PathsConfig{DataDir: filepath.Join(base, "absent"), OutputDir: base}, StatusNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := NewHealthService("dev", "", tt.paths, nil)
			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.expected, status.Status)
			assert.Contains(t, status.Services, "data")
			assert.Contains(t, status.Services, "output")
		})
	}
}

func TestHealthService_ReadinessLeavesNoProbeFiles(t *testing.T) {
	base := t.TempDir()
	hs := NewHealthService("dev", "", config.PathsConfig{DataDir: base, OutputDir: base}, nil)

	hs.ReadinessCheck(context.Background())

	entries, err := os.ReadDir(base)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHealthService_LivenessAndVersion(t *testing.T) {
	hs := NewHealthService("dev", "2026-01-02T03:04:05Z", config.PathsConfig{}, nil)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, StatusAlive, live.Status)
	require.NotNil(t, live.Runtime)
	assert.Positive(t, live.Runtime.Goroutines)

	version := hs.Version()
	assert.Equal(t, "dev", version.Version)
	assert.Equal(t, "2026-01-02T03:04:05Z", version.BuildTime)
}

func TestHealthService_ReadinessCountsDatasets(t *testing.T) {
	dataDir := t.TempDir()
	for _, name := range []string{"housing.csv", "cities.json", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte("a\n1\n"), 0644))
	}

	hs := NewHealthService("dev", "", config.PathsConfig{DataDir: dataDir, OutputDir: t.TempDir()}, nil)
	status := hs.ReadinessCheck(context.Background())

	require.Equal(t, StatusReady, status.Status)
	data := status.Services["data"]
	require.NotNil(t, data.Datasets)
	assert.Equal(t, 2, *data.Datasets)
	assert.Equal(t, dataDir, data.Path)
}

func TestHealthService_NotReadyExplainsWhy(t *testing.T) {
	base := t.TempDir()
	hs := NewHealthService("dev", "", config.PathsConfig{DataDir: filepath.Join(base, "absent"), OutputDir: base}, nil)

	data := hs.ReadinessCheck(context.Background()).Services["data"]
	assert.Equal(t, StatusNotReady, data.Status)
	assert.Nil(t, data.Datasets)
	assert.Contains(t, data.Message, "not found")
}
