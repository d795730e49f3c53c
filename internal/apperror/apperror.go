// Package apperror defines the error taxonomy shared by the service and HTTP
// layers: validation, not-found, conflict, unauthorized, and internal errors.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

// AppError pairs a taxonomy sentinel with a human-readable message.
// Handlers map the sentinel to an HTTP status via errors.Is.
type AppError struct {
	Err     error
	Message string
	Field   string // optional: the field that caused a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func Validation(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Internal wraps an unexpected storage or infrastructure failure. The cause
// is preserved for logging but the message shown to callers stays generic.
func Internal(cause error) *AppError {
	return &AppError{
		Err:     errors.Join(ErrInternal, cause),
		Message: "internal error",
	}
}
