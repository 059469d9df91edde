package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edacli/internal/shared/testutil"
)

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "context deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "api validation error",
			err:        ErrValidation("columns", "at least one column is required"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "dataset not found",
			err:        NewNotFoundError("dataset \"sales.csv\"", nil),
			wantStatus: http.StatusNotFound,
			wantType:   TypeDatasetNotFound,
		},
		{
			name:       "column not found",
			err:        fmt.Errorf("hist: %w", NewColumnNotFoundError("price", nil)),
			wantStatus: http.StatusNotFound,
			wantType:   TypeColumnNotFound,
		},
		{
			name:       "non numeric column",
			err:        NewAppValidationError("column \"city\" is not numeric"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "unreadable dataset",
			err:        NewParsingError("malformed csv", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDatasetInvalid,
		},
		{
			name:       "render failure",
			err:        NewRenderError("encode png", nil),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeRenderFailed,
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false)

			req := httptest.NewRequest(http.MethodGet, "/api/datasets/sales.csv/nulls/columns", nil)
			rec := httptest.NewRecorder()

			handler.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/api/datasets/sales.csv/nulls/columns", body["instance"])
			assert.NotContains(t, body, "stack")
			assert.True(t, logs.ContainsMessage("request failed"))
		})
	}
}

func TestErrorHandler_HandleError_Nil(t *testing.T) {
	handler := NewErrorHandler(nil, false)
	rec := httptest.NewRecorder()

	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, 0, rec.Body.Len())
}

func TestErrorHandler_IncludeStack(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, true)
	rec := httptest.NewRecorder()

	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), fmt.Errorf("boom"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "stack")
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	handler := NewErrorHandler(nil, false)

	rec := httptest.NewRecorder()
	handler.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/datasets", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "DELETE")
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeColumnNotFound, "Resource Not Found", "column \"x\" not found", "/api/x").
		WithExtension("column", "x")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "x", body["column"])
	assert.Equal(t, TypeColumnNotFound, body["type"])
	assert.NotContains(t, body, "Extensions")
}

func TestProblemDetails_ExtensionsCannotShadowMembers(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed", "bad bins", "/api/x").
		WithExtension("status", 200).
		WithExtension("bins", -1)

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
	assert.Equal(t, float64(-1), body["bins"])
}

func TestErrorHandler_RateLimitAndValidationDetails(t *testing.T) {
	handler := NewErrorHandler(nil, false)
	req := httptest.NewRequest(http.MethodGet, "/api/datasets", nil)

	problem := handler.ErrorToProblem(ErrRateLimitExceeded, req)
	assert.Equal(t, http.StatusTooManyRequests, problem.Status)
	assert.Equal(t, TypeRateLimit, problem.Type)

	problem = handler.ErrorToProblem(NewValidationErrors([]ValidationError{
		{Field: "bins", Message: "bins must be at most 1000"},
		{Field: "feature", Message: "feature is required"},
	}), req)
	assert.Equal(t, http.StatusBadRequest, problem.Status)
	assert.Equal(t, "invalid query parameters: bins, feature", problem.Detail)
	assert.Equal(t, CodeValidationFailed, problem.Extensions["error_code"])
}

func TestErrorHandler_ConfigErrorIsInternal(t *testing.T) {
	handler := NewErrorHandler(nil, false)
	problem := handler.ErrorToProblem(NewConfigError("bad port", nil),
		httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, problem.Status)
	assert.Equal(t, TypeInternal, problem.Type)
	assert.Equal(t, "CONFIG", problem.Extensions["error_type"])
}
