package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports missing or malformed input. No mutation happened.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// NotFound reports a referenced document that does not exist.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// Conflict reports a uniqueness violation or a pending-state clash.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

// Forbidden reports a caller lacking the standing or role for an operation.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message, nil)
}

// Upstream reports a failed call to an external collaborator. Retryable by
// the caller; never carries processor internals in the message.
func Upstream(message string, err error) *Error {
	return New(http.StatusBadGateway, message, err)
}

// Storage reports an unavailable or failing store. Always logged by the
// caller, never silently swallowed.
func Storage(err error) *Error {
	return New(http.StatusInternalServerError, "Internal server error", err)
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "unauthorized access", nil)
	ErrForbidden      = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// From converts any error into an *Error, defaulting to a storage error.
func From(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return Storage(err)
}
