package board

import (
	"fmt"
	"net/http"
)

// Code classifies an operation failure. Every code maps to exactly one
// HTTP status at the transport boundary.
type Code int

const (
	CodeBadRequest Code = iota
	CodeUnauthorized
	CodeForbidden
	CodeNotFound
	CodeMethodNotAllowed
	CodeMisconfigured
)

// HTTPStatus returns the status code a failure is surfaced as.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Error is a board operation failure: a taxonomy code plus a short
// human-readable reason. The presentation layer localizes; we do not.
type Error struct {
	Code   Code
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func BadRequest(format string, args ...interface{}) *Error {
	return &Error{Code: CodeBadRequest, Reason: fmt.Sprintf(format, args...)}
}

func Unauthorized(reason string) *Error {
	return &Error{Code: CodeUnauthorized, Reason: reason}
}

func Forbidden(reason string) *Error {
	return &Error{Code: CodeForbidden, Reason: reason}
}

func NotFound(reason string) *Error {
	return &Error{Code: CodeNotFound, Reason: reason}
}

func Misconfigured(reason string) *Error {
	return &Error{Code: CodeMisconfigured, Reason: reason}
}
