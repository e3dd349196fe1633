// Package apierr provides structured error types for MatGraph platform
// API calls.
//
// Every non-2xx response the transport layer sees is turned into an
// *Error carrying the failed operation, a standard error code, the HTTP
// status, and a retryability flag. Callers can branch on retryability
// without inspecting status codes, and the cause chain integrates with
// Go's standard errors package.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Standard error codes used across platform operations.
const (
	// CodeUnauthorized indicates missing or expired credentials.
	CodeUnauthorized = "UNAUTHORIZED"

	// CodeForbidden indicates the caller lacks access to the resource.
	CodeForbidden = "FORBIDDEN"

	// CodeNotFound indicates the resource does not exist.
	CodeNotFound = "NOT_FOUND"

	// CodeConflict indicates the request conflicted with current state.
	CodeConflict = "CONFLICT"

	// CodeInvalid indicates the platform rejected the request body.
	CodeInvalid = "INVALID_REQUEST"

	// CodeThrottled indicates the caller exceeded a rate limit.
	CodeThrottled = "THROTTLED"

	// CodeServer indicates a platform-side failure.
	CodeServer = "SERVER_ERROR"

	// CodeTransport indicates the request never produced a response.
	CodeTransport = "TRANSPORT_ERROR"
)

// Error is a structured error for a failed platform API call.
type Error struct {
	// Op is the operation that failed (e.g. "register batch").
	Op string

	// Code is a standard error code constant.
	Code string

	// Message is a human-readable description, typically taken from
	// the platform's error response body.
	Message string

	// HTTPStatus is the response status code, zero if the request
	// never produced a response.
	HTTPStatus int

	// Retryable indicates whether repeating the identical request can
	// reasonably be expected to succeed.
	Retryable bool

	// Cause is the underlying error, if any.
	Cause error
}

// New creates a structured platform error.
func New(op, code, message string) *Error {
	return &Error{Op: op, Code: code, Message: message}
}

// Wrap creates a transport-level error around an underlying failure,
// such as a connection reset. Transport failures are retryable.
func Wrap(op string, cause error) *Error {
	return &Error{
		Op:        op,
		Code:      CodeTransport,
		Message:   "request failed",
		Retryable: true,
		Cause:     cause,
	}
}

// FromStatus maps a non-2xx HTTP response to a structured error.
// Server-side failures (5xx) and throttling (429) are retryable;
// client errors are not.
func FromStatus(op string, status int, body string) *Error {
	e := &Error{Op: op, HTTPStatus: status, Message: strings.TrimSpace(body)}
	switch {
	case status == http.StatusUnauthorized:
		e.Code = CodeUnauthorized
	case status == http.StatusForbidden:
		e.Code = CodeForbidden
	case status == http.StatusNotFound:
		e.Code = CodeNotFound
	case status == http.StatusConflict:
		e.Code = CodeConflict
	case status == http.StatusTooManyRequests:
		e.Code = CodeThrottled
		e.Retryable = true
	case status >= 500:
		e.Code = CodeServer
		e.Retryable = true
	default:
		e.Code = CodeInvalid
	}
	return e
}

// WithCause adds an underlying error and returns the error for
// chaining.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// Error implements the error interface. Format:
// "op [CODE 422]: message: cause", with empty parts omitted.
func (e *Error) Error() string {
	var head string
	if e.HTTPStatus != 0 {
		head = fmt.Sprintf("%s [%s %d]", e.Op, e.Code, e.HTTPStatus)
	} else {
		head = fmt.Sprintf("%s [%s]", e.Op, e.Code)
	}
	parts := []string{head}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause, enabling errors.Is and
// errors.As through the chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports equality for errors.Is: two Errors match when their
// operation and code match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Op == t.Op && e.Code == t.Code
}

// IsRetryable reports whether err is (or wraps) a retryable platform
// error.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}
