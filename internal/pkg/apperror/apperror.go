package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// StatusClientClosedRequest is reported when the caller abandoned the request
// before the data fetch finished.
const StatusClientClosedRequest = 499

// AppError is a custom error type that includes an HTTP status code and a user-facing message.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code and message,
// so package-level sentinels keep working with errors.Is after being copied.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds a 400 error with a formatted message.
func Validation(format string, args ...any) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// FromContext translates cancellation and deadline errors into AppErrors.
// It returns nil when err is not context related.
func FromContext(err error) *AppError {
	switch {
	case errors.Is(err, context.Canceled):
		return Wrap(err, StatusClientClosedRequest, "request cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, http.StatusGatewayTimeout, "request timed out")
	}
	return nil
}

// StatusCode returns the HTTP status carried by err, or 500 when err is not an AppError.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
