// Package errs defines the error taxonomy shared by services and handlers.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code surfaced to API callers.
type Code string

const (
	CodeValidation   Code = "validation_error"
	CodeUnauthorized Code = "unauthorized"
	CodeConflict     Code = "conflict"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal_error"
)

var (
	// ErrNotFound is returned by stores when no document matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by stores when a (slug, locale) key is taken.
	ErrDuplicate = errors.New("duplicate key")
)

// Error is a domain error. Message is safe to show to the caller; Err is the
// underlying cause and is only ever logged.
type Error struct {
	Code    Code
	Reason  string // finer-grained reason, e.g. "email_invalid"
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error code to an HTTP status.
func (e *Error) Status() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeConflict:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Validation reports a missing or malformed field. Reason doubles as the
// i18n message key.
func Validation(reason, field, msg string) *Error {
	return &Error{Code: CodeValidation, Reason: reason, Field: field, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Reason: "unauthorized", Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Reason: "slug_taken", Field: "slug", Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Reason: "not_found", Message: msg}
}

// Internal wraps an infrastructure failure behind a generic message.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Reason: "internal", Message: "Something went wrong. Please try again.", Err: err}
}

// As extracts a domain error from err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// PartialWriteError reports a dual-locale write where only some documents
// were written. Nothing is rolled back.
type PartialWriteError struct {
	Op      string
	Slug    string
	Written int
	Err     error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s %q: partial write (%d of 2 documents): %v", e.Op, e.Slug, e.Written, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
