package errors

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for common errors
var (
	ErrBadRequest      = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	ErrNotFound        = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	ErrTooManyRequests = func(msg string) *HTTPError { return NewHTTPError(http.StatusTooManyRequests, msg) }
	ErrInternal        = func(msg string) *HTTPError { return NewHTTPError(http.StatusInternalServerError, msg) }
)
