package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an AppError. The HTTP layer maps each type to a status.
type ErrorType string

const (
	ErrTypeNotFound   ErrorType = "NOT_FOUND"  // dataset, file or column absent
	ErrTypeValidation ErrorType = "VALIDATION" // caller input unusable as given
	ErrTypeParsing    ErrorType = "PARSING"    // dataset could not be decoded
	ErrTypeStorage    ErrorType = "STORAGE"    // filesystem failure
	ErrTypeRender     ErrorType = "RENDER"     // figure drawing or encoding failed
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError is a domain failure. Cause keeps the library error (gota, excelize,
// gonum/plot, os) so callers can still inspect it with errors.Is and errors.As.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%s] %s", e.Type, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key surfaced as an extension of the HTTP problem.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = map[string]interface{}{}
	}
	e.Context[key] = value
	return e
}

// NewAppError creates an application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{Type: errType, Message: message, Cause: cause}
}

// IsType reports whether err (or anything it wraps) is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == errType
}

// NewNotFoundError reports that resource, e.g. `dataset "sales.csv"`, does not exist.
func NewNotFoundError(resource string, cause error) *AppError {
	return NewAppError(ErrTypeNotFound, resource+" not found", cause)
}

// NewColumnNotFoundError reports a column name absent from a dataset.
func NewColumnNotFoundError(column string, cause error) *AppError {
	return NewNotFoundError(fmt.Sprintf("column %q", column), cause).WithContext("column", column)
}

func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

func NewRenderError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRender, message, cause)
}

func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
