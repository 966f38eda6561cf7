// Package apierr defines the single error shape every backend call fails
// with, and the rules that turn a transport or HTTP failure into it.
package apierr

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind is the coarse classification of a failed request.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindValidation Kind = "validation"
	KindServer     Kind = "server"
	KindUnknown    Kind = "unknown"
)

// LoginPath identifies the login endpoint. A 401 from it means bad
// credentials, not an expired session.
const LoginPath = "/auth/login"

// Error is the normalized failure returned by the HTTP client core. It is
// built once per failed request and never modified afterwards.
type Error struct {
	Message    string
	StatusCode int
	Kind       Kind
	// Code is a short machine-readable cause such as ECONNREFUSED or HTTP_404.
	Code      string
	Details   any
	Path      string
	RequestID string
	Timestamp time.Time

	cause error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsLoginFailure reports whether the error is a 401 from the login endpoint.
func (e *Error) IsLoginFailure() bool {
	return e.StatusCode == 401 && strings.Contains(e.Path, LoginPath)
}

// Validation builds a local validation failure that never reached the network.
func Validation(message string) *Error {
	return &Error{
		Message:   message,
		Kind:      KindValidation,
		Code:      "LOCAL_VALIDATION",
		Timestamp: time.Now().UTC(),
	}
}

// As extracts the normalized error from err, if there is one.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the classification of err, or KindUnknown for errors that
// did not come from the client core.
func KindOf(err error) Kind {
	if apiErr, ok := As(err); ok {
		return apiErr.Kind
	}
	return KindUnknown
}

func IsLoginFailure(err error) bool {
	apiErr, ok := As(err)
	return ok && apiErr.IsLoginFailure()
}

func IsUnauthorized(err error) bool {
	apiErr, ok := As(err)
	return ok && apiErr.StatusCode == 401
}

func IsNotFound(err error) bool {
	apiErr, ok := As(err)
	return ok && apiErr.StatusCode == 404
}

// Describe turns err into the short title and longer description shown to the
// user. Raw payloads and stack traces never leak through here.
func Describe(err error) (title, description string) {
	apiErr, ok := As(err)
	if !ok {
		return "Unexpected error", MessageUnexpected
	}

	switch {
	case apiErr.IsLoginFailure():
		return "Login failed", apiErr.Message
	case apiErr.StatusCode == 401:
		return "Session expired", "log in again to continue"
	}

	switch apiErr.Kind {
	case KindNetwork:
		return "Connection problem", apiErr.Message
	case KindValidation:
		return "Request rejected", apiErr.Message
	case KindServer:
		return "Server error", apiErr.Message
	default:
		return "Unexpected error", apiErr.Message
	}
}
