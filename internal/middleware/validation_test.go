package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "edacli/internal/errors"
)

type plotQuery struct {
	Dataset string   `query:"dataset" validate:"required,dataset"`
	Columns []string `query:"columns" validate:"min=1,dive,required"`
	Bins    int      `query:"bins" validate:"gte=0,lte=1000"`
}

func newTestValidator() *QueryValidator {
	return NewQueryValidator(nil, apperrors.NewErrorHandler(nil, false))
}

func TestQueryValidator_ValidateStruct(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name   string
		query  plotQuery
		fields []string
	}{
		{"valid", plotQuery{Dataset: "housing.csv", Columns: []string{"area"}, Bins: 50}, nil},
		{"traversal", plotQuery{Dataset: "../secret.csv", Columns: []string{"area"}}, []string{"dataset"}},
		{"bad extension", plotQuery{Dataset: "notes.txt", Columns: []string{"area"}}, []string{"dataset"}},
		{"no columns", plotQuery{Dataset: "housing.xlsx"}, []string{"columns"}},
		{"bins out of range", plotQuery{Dataset: "housing.json", Columns: []string{"a"}, Bins: 5000}, []string{"bins"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.query)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var apiErr *apperrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

			details, ok := apiErr.Details.([]apperrors.ValidationError)
			require.True(t, ok)
			var fields []string
			for _, d := range details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestQueryValidator_Check(t *testing.T) {
	v := newTestValidator()
	req := httptest.NewRequest(http.MethodGet, "/api/datasets/x", nil)
	rec := httptest.NewRecorder()

	ok := v.Check(rec, req, plotQuery{Dataset: "x"})
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.TypeValidation, body["type"])
	assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
}

func TestQueryValidator_ValidateInt(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		query    string
		expected int
		ok       bool
	}{
		{"", 7, true},
		{"?bins=20", 20, true},
		{"?bins=abc", 0, false},
		{"?bins=-1", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/plots/single"+tt.query, nil)

			got, ok := v.ValidateInt(rec, req, "bins", 0, 1000, 7)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestQueryValidator_ValidateEnum(t *testing.T) {
	v := newTestValidator()

	rec := httptest.NewRecorder()
	got, ok := v.ValidateEnum(rec, httptest.NewRequest(http.MethodPost, "/export", nil), "format", []string{"csv", "xlsx"}, "xlsx")
	assert.True(t, ok)
	assert.Equal(t, "xlsx", got)

	rec = httptest.NewRecorder()
	_, ok = v.ValidateEnum(rec, httptest.NewRequest(http.MethodPost, "/export?format=pdf", nil), "format", []string{"csv", "xlsx"}, "xlsx")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b,"))
	assert.Nil(t, SplitList(""))
}
