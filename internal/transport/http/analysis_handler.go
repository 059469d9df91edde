package http

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apperrors "edacli/internal/errors"
	edamw "edacli/internal/middleware"
	"edacli/internal/services"
	"edacli/internal/univariate"
)

// MaxBins bounds the bins query parameter of the single variable plot
const MaxBins = 1000

type datasetParams struct {
	Name string `query:"name" validate:"required,dataset"`
}

// columnsQuery lists the columns of a plot grid. An empty list is valid and
// renders a single row of empty cells.
type columnsQuery struct {
	Columns []string `query:"columns" validate:"dive,required"`
}

type singleQuery struct {
	Feature string `query:"feature" validate:"required"`
	Title   string `query:"title" validate:"max=200"`
	Bins    int    `query:"bins" validate:"gte=0,lte=1000"`
}

// AnalysisHandler handles dataset analysis requests
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	validator    *edamw.QueryValidator
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service AnalysisServiceInterface, validator *edamw.QueryValidator, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListDatasets)

	r.Route("/{name}", func(r chi.Router) {
		r.Use(h.DatasetCtx)

		r.Get("/nulls/columns", h.ColumnNulls)
		r.Get("/nulls/rows", h.RowNulls)
		r.Get("/describe", h.Describe)

		r.Route("/plots", func(r chi.Router) {
			r.Get("/hist", h.Histograms)
			r.Get("/box", h.Boxplots)
			r.Get("/single", h.SingleVariable)
			r.Get("/nulls", h.NullChart)
		})

		r.Post("/export", h.Export)
	})

	return r
}

// DatasetCtx validates the dataset name path parameter
func (h *AnalysisHandler) DatasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.validator.Check(w, r, datasetParams{Name: chi.URLParam(r, "name")}) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListDatasets handles GET /api/datasets
func (h *AnalysisHandler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	infos, err := h.service.ListDatasets(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"count":  len(infos),
		"data":   infos,
	})
}

// ColumnNulls handles GET /api/datasets/{name}/nulls/columns
func (h *AnalysisHandler) ColumnNulls(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	summary, err := h.service.ColumnNulls(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"dataset": name,
		"data":    summary,
	})
}

// RowNulls handles GET /api/datasets/{name}/nulls/rows
func (h *AnalysisHandler) RowNulls(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	summary, err := h.service.RowNulls(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"dataset": name,
		"rows":    summary.Total(),
		"data":    summary,
	})
}

// Describe handles GET /api/datasets/{name}/describe
func (h *AnalysisHandler) Describe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	columns := edamw.SplitList(r.URL.Query().Get("columns"))

	desc, err := h.service.Describe(r.Context(), name, columns)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"dataset": name,
		"data":    desc,
	})
}

// Histograms handles GET /api/datasets/{name}/plots/hist
func (h *AnalysisHandler) Histograms(w http.ResponseWriter, r *http.Request) {
	q := columnsQuery{Columns: edamw.SplitList(r.URL.Query().Get("columns"))}
	if !h.validator.Check(w, r, q) {
		return
	}

	png, err := h.service.Histograms(r.Context(), chi.URLParam(r, "name"), q.Columns)
	h.respondPNG(w, r, png, err)
}

// Boxplots handles GET /api/datasets/{name}/plots/box
func (h *AnalysisHandler) Boxplots(w http.ResponseWriter, r *http.Request) {
	q := columnsQuery{Columns: edamw.SplitList(r.URL.Query().Get("columns"))}
	if !h.validator.Check(w, r, q) {
		return
	}

	png, err := h.service.Boxplots(r.Context(), chi.URLParam(r, "name"), q.Columns)
	h.respondPNG(w, r, png, err)
}

// SingleVariable handles GET /api/datasets/{name}/plots/single
func (h *AnalysisHandler) SingleVariable(w http.ResponseWriter, r *http.Request) {
	bins, ok := h.validator.ValidateInt(w, r, "bins", 0, MaxBins, 0)
	if !ok {
		return
	}

	q := singleQuery{
		Feature: r.URL.Query().Get("feature"),
		Title:   r.URL.Query().Get("title"),
		Bins:    bins,
	}
	if !h.validator.Check(w, r, q) {
		return
	}

	png, err := h.service.SingleVariable(r.Context(), chi.URLParam(r, "name"), q.Feature,
		univariate.SingleOptions{Title: q.Title, Bins: q.Bins})
	h.respondPNG(w, r, png, err)
}

// NullChart handles GET /api/datasets/{name}/plots/nulls
func (h *AnalysisHandler) NullChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.service.NullChart(r.Context(), chi.URLParam(r, "name"))
	h.respondPNG(w, r, png, err)
}

// Export handles POST /api/datasets/{name}/export
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, ok := h.validator.ValidateEnum(w, r, "format",
		[]string{services.ExportXLSX, services.ExportCSV}, services.ExportXLSX)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	written, err := h.service.ExportSummaries(r.Context(), name, format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	files := make([]string, 0, len(written))
	for _, path := range written {
		files = append(files, filepath.Base(path))
	}

	h.logger.InfoContext(r.Context(), "summaries exported",
		slog.String("dataset", name),
		slog.String("format", format),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("files", len(files)))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"dataset": name,
		"format":  format,
		"files":   files,
	})
}

func (h *AnalysisHandler) respondPNG(w http.ResponseWriter, r *http.Request, png []byte, err error) {
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write figure",
			slog.String("error", err.Error()))
	}
}
