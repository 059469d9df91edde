package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"edacli/internal/config"
	"edacli/internal/dataset"
	apperrors "edacli/internal/errors"
	"edacli/internal/infrastructure"
	customMiddleware "edacli/internal/middleware"
	"edacli/internal/services"
	handlers "edacli/internal/transport/http"
	"edacli/internal/validation"
)

const (
	VERSION = "0.3.0"
	AppName = "eda-server"
)

// BuildTime is set at compile time
var BuildTime = ""

// Application represents the main application container
type Application struct {
	Config          *config.Config
	Paths           *config.Paths
	Router          *chi.Mux
	Server          *http.Server
	Store           *dataset.Store
	AnalysisService *services.AnalysisService
	HealthService   *services.HealthService
	Metrics         *infrastructure.AnalysisMetrics
	OTelProviders   *infrastructure.OTelProviders
	ErrorHandler    *apperrors.ErrorHandler
	Logger          *slog.Logger

	listener net.Listener
}

// NewApplication wires the analysis server from cfg. A nil logger initializes
// the process logger from cfg.Logging.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	if logger == nil {
		var err error
		if logger, err = infrastructure.InitializeLogger(cfg.Logging); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION))

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateAnalysisMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Metrics:       metrics,
		OTelProviders: otelProviders,
		ErrorHandler:  apperrors.NewErrorHandler(logger, cfg.Telemetry.Environment == "development"),
		Logger:        logger,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	a.Store = dataset.NewStore(a.Paths.DataDir, a.Logger)

	a.AnalysisService = services.NewAnalysisService(
		a.Store,
		a.Paths,
		a.Metrics,
		a.Config.Plot.DPI,
		a.Logger,
	)

	a.HealthService = services.NewHealthService(
		VERSION,
		BuildTime,
		config.PathsConfig{
			DataDir:   a.Paths.DataDir,
			OutputDir: a.Paths.OutputDir,
			LogsDir:   a.Paths.LogsDir,
		},
		a.Logger,
	)
}

// setupRouter configures the HTTP router with all routes.
// Middleware order: RequestID, RealIP, OTel, Logger, Recoverer, headers, CORS, rate limit.
// Timeout applies to the dataset routes only.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(middleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics)
	if err != nil {
		a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
	} else {
		r.Use(otelMiddleware.Handler)
	}

	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.ErrorHandler))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.CORS(a.getCORSConfig()))

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.ErrorHandler,
			a.Logger,
		).Handler)
	}

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.setupAPIRoutes(r)

	metricsHandler := handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler)
	r.Get("/metrics", metricsHandler.GetMetrics)

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	validator := customMiddleware.NewQueryValidator(a.Logger, a.ErrorHandler)
	analysisHandler := handlers.NewAnalysisHandler(a.AnalysisService, validator, a.Logger, a.ErrorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))
			r.Mount("/datasets", analysisHandler.Routes())
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]interface{}{
			"name":    AppName,
			"version": VERSION,
			"endpoints": []string{
				"GET /api/datasets",
				"GET /api/datasets/{name}/nulls/columns",
				"GET /api/datasets/{name}/nulls/rows",
				"GET /api/datasets/{name}/describe",
				"GET /api/datasets/{name}/plots/{hist,box,single,nulls}",
				"POST /api/datasets/{name}/export",
				"GET /api/health",
				"GET /api/version",
				"GET /metrics",
			},
		})
	})
}

// getCORSConfig builds the CORS policy from the security config. Methods and
// headers use the middleware defaults.
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		Logger:         a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start binds the listen address and serves in the background. Bind errors
// are returned; a later serve failure is logged and cancels ctx.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	a.listener = ln

	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.String("address", ln.Addr().String()),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}
	return nil
}

// Addr returns the bound address once Start has succeeded
func (a *Application) Addr() string {
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Stop drains in-flight requests within ShutdownTimeout, then flushes telemetry
// and closes the log file.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return infrastructure.CloseLogFile()
}

// Run serves until ctx is cancelled (cmd/eda-server cancels it on SIGINT and
// SIGTERM) or the server fails, then stops gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.InfoContext(ctx, "Stop requested", slog.String("cause", context.Cause(ctx).Error()))
	return a.Stop(context.WithoutCancel(ctx))
}

// performStartupHealthCheck verifies the data directory is readable and the
// output and log directories are writable
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	var warnings []string
	v := validation.NewFileValidator(a.Logger)

	count, err := v.ValidateInputDirectory(a.Paths.DataDir)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("Data directory not readable: %s", a.Paths.DataDir))
	}

	directories := []struct{ name, dir string }{
		{"Output", a.Paths.OutputDir},
		{"Logs", a.Paths.LogsDir},
	}
	for _, d := range directories {
		if err := v.ValidateOutputDirectory(d.dir); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s directory not writable: %s", d.name, d.dir))
		}
	}

	if len(warnings) > 0 {
		return fmt.Errorf("startup health check warnings: %s", strings.Join(warnings, "; "))
	}

	a.Logger.InfoContext(ctx, "Startup health check passed", slog.Int("datasets", count))
	return nil
}
