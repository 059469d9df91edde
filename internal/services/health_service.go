package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"edacli/internal/config"
	"edacli/internal/validation"
)

// Health status values
const (
	StatusOK       = "ok"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	StatusAlive    = "alive"
)

// HealthService answers the health, readiness and liveness probes of the
// server. Readiness means datasets can be read from the data directory and
// exports can be written to the output directory.
type HealthService struct {
	version   string
	buildTime string
	paths     config.PathsConfig
	validator *validation.FileValidator
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the body of every probe response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   *RuntimeInfo             `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth is the readiness of one directory the server depends on
type ServiceHealth struct {
	Status   string `json:"status"`
	Path     string `json:"path"`
	Datasets *int   `json:"datasets,omitempty"`
	Message  string `json:"message,omitempty"`
}

// RuntimeInfo describes the running process
type RuntimeInfo struct {
	UptimeSeconds float64 `json:"uptime"`
	GoVersion     string  `json:"go_version"`
	Goroutines    int     `json:"goroutines"`
}

// VersionInfo is the body of GET /api/version
type VersionInfo struct {
	Version     string  `json:"version"`
	BuildTime   string  `json:"build_time,omitempty"`
	GoVersion   string  `json:"go_version"`
	OS          string  `json:"os"`
	Arch        string  `json:"arch"`
	Uptime      float64 `json:"uptime"`
	StartTime   string  `json:"start_time"`
	CurrentTime string  `json:"current_time"`
}

// NewHealthService creates a new health service
func NewHealthService(version, buildTime string, paths config.PathsConfig, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "health_service"))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		paths:     paths,
		validator: validation.NewFileValidator(logger),
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    StatusOK,
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck probes the data and output directories. An empty data
// directory is ready; a missing one is not.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    StatusReady,
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]ServiceHealth{
			"data":   hs.checkData(),
			"output": hs.checkOutput(),
		},
	}

	for name, sh := range status.Services {
		if sh.Status == StatusReady {
			continue
		}
		status.Status = StatusNotReady
		hs.logger.WarnContext(ctx, "service not ready",
			slog.String("service", name),
			slog.String("path", sh.Path),
			slog.String("message", sh.Message))
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    StatusAlive,
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: &RuntimeInfo{
			UptimeSeconds: time.Since(hs.startTime).Seconds(),
			GoVersion:     runtime.Version(),
			Goroutines:    runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() VersionInfo {
	now := time.Now()
	return VersionInfo{
		Version:     hs.version,
		BuildTime:   hs.buildTime,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		Uptime:      now.Sub(hs.startTime).Seconds(),
		StartTime:   hs.startTime.Format(time.RFC3339),
		CurrentTime: now.Format(time.RFC3339),
	}
}

func (hs *HealthService) checkData() ServiceHealth {
	sh := ServiceHealth{Status: StatusReady, Path: hs.paths.DataDir}
	count, err := hs.validator.ValidateInputDirectory(hs.paths.DataDir)
	if err != nil {
		sh.Status = StatusNotReady
		sh.Message = err.Error()
		return sh
	}
	sh.Datasets = &count
	return sh
}

func (hs *HealthService) checkOutput() ServiceHealth {
	sh := ServiceHealth{Status: StatusReady, Path: hs.paths.OutputDir}
	if err := hs.validator.ValidateOutputDirectory(hs.paths.OutputDir); err != nil {
		sh.Status = StatusNotReady
		sh.Message = err.Error()
	}
	return sh
}
