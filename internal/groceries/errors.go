package groceries

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a client failure. Every error returned by a Client
// method carries exactly one kind.
type ErrorKind string

const (
	// ErrKindTransport means the request could not be completed (network
	// failure, timeout, or an unexpected HTTP status)
	ErrKindTransport ErrorKind = "transport"

	// ErrKindParse means the response was received but could not be decoded
	ErrKindParse ErrorKind = "parse"

	// ErrKindAuth means the server rejected the credentials or access token
	ErrKindAuth ErrorKind = "auth"
)

// APIError is the error type returned by all Client operations
type APIError struct {
	// Kind is the failure classification
	Kind ErrorKind

	// Op is the client operation that failed (e.g. "login", "load lists")
	Op string

	// Err is the underlying cause
	Err error
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying cause
func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(kind ErrorKind, op string, err error) *APIError {
	return &APIError{Kind: kind, Op: op, Err: err}
}

// IsTransport reports whether err is a client error of kind transport
func IsTransport(err error) bool {
	return isKind(err, ErrKindTransport)
}

// IsParse reports whether err is a client error of kind parse
func IsParse(err error) bool {
	return isKind(err, ErrKindParse)
}

// IsAuth reports whether err is a client error of kind auth
func IsAuth(err error) bool {
	return isKind(err, ErrKindAuth)
}

func isKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}
