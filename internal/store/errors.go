package store

import (
	"fmt"
	"net/http"
)

// Error is a persistence error with an HTTP status code.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)

	sentinel *Error // Sentinel this error was derived from
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match a derived error against the sentinel it came from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.root() == t
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Code:     e.Code,
		Message:  msg,
		Err:      e.Err,
		sentinel: e.root(),
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:     e.Code,
		Message:  e.Message,
		Err:      err,
		sentinel: e.root(),
	}
}

func (e *Error) root() *Error {
	if e.sentinel != nil {
		return e.sentinel
	}
	return e
}

// Sentinel errors.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}

	// ErrInvalidReference is returned when a write points at a missing row.
	ErrInvalidReference = &Error{
		Code:    http.StatusBadRequest,
		Message: "referenced resource does not exist",
	}

	// ErrInUse is returned when deleting a row other records still point at.
	ErrInUse = &Error{
		Code:    http.StatusConflict,
		Message: "resource is still referenced",
	}
)
