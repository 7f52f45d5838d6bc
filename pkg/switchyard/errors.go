package switchyard

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is returned by handlers and guards to produce a specific status
type HTTPError struct {
	Code     int    `json:"-"`
	Message  string `json:"error"`
	Internal error  `json:"-"`
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("code=%d, message=%s, internal=%v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("code=%d, message=%s", e.Code, e.Message)
}

// Unwrap returns the internal error
func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// WithInternal attaches the underlying cause, which is never sent to clients
func (e *HTTPError) WithInternal(err error) *HTTPError {
	e.Internal = err
	return e
}

// NewHTTPError creates an HTTPError. The message defaults to the status text.
func NewHTTPError(code int, message ...string) *HTTPError {
	msg := http.StatusText(code)
	if len(message) > 0 {
		msg = message[0]
	}
	return &HTTPError{Code: code, Message: msg}
}

// ErrUnauthorized creates a 401 Unauthorized error
func ErrUnauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// ErrForbidden creates a 403 Forbidden error
func ErrForbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message)
}

// ErrTooManyRequests creates a 429 Too Many Requests error
func ErrTooManyRequests(message string) *HTTPError {
	return NewHTTPError(http.StatusTooManyRequests, message)
}

// ErrorResponse maps err to the status code and body adapters send.
// Errors that are not an HTTPError become a 500.
func ErrorResponse(err error) (int, map[string]string) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, map[string]string{"error": httpErr.Message}
	}
	return http.StatusInternalServerError, map[string]string{"error": err.Error()}
}
