package errors

import (
	"net/http"
	"strings"
)

// Error codes carried by APIError and echoed as the problem's error_code.
const (
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// APIError is a request-level failure raised before any dataset is opened:
// a query parameter that fails validation, or a client over its rate limit.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// ValidationError names one rejected query parameter.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrRateLimitExceeded is returned to clients throttled by the rate limiter.
var ErrRateLimitExceeded = &APIError{
	StatusCode: http.StatusTooManyRequests,
	ErrorCode:  CodeRateLimitExceeded,
	Message:    "Rate limit exceeded",
}

// ErrValidation reports a single invalid parameter.
func ErrValidation(field, message string) *APIError {
	return NewValidationErrors([]ValidationError{{Field: field, Message: message}})
}

// NewValidationErrors reports every invalid parameter of a request at once.
func NewValidationErrors(fields []ValidationError) *APIError {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  CodeValidationFailed,
		Message:    "invalid query parameters: " + strings.Join(names, ", "),
		Details:    fields,
	}
}
