package recommender

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes recommender failures
type ErrorKind string

const (
	// KindValidation indicates a malformed request
	KindValidation ErrorKind = "validation"

	// KindNotFound indicates an unknown user, book or model
	KindNotFound ErrorKind = "not_found"

	// KindUnavailable indicates the backing service cannot be reached
	KindUnavailable ErrorKind = "unavailable"

	// KindInternal indicates anything else
	KindInternal ErrorKind = "internal"
)

// Error is the typed error returned by every Service implementation
type Error struct {
	Kind    ErrorKind `json:"error"`
	Message string    `json:"message"`

	// StatusCode is set when the error came over HTTP
	StatusCode int `json:"-"`

	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Kind)}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	parts = append(parts, e.Message)
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// NewError creates a typed error
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates a typed error with an underlying cause
func WrapError(kind ErrorKind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ErrUnknownUser is returned when a user has no history and no seed books were given
var ErrUnknownUser = &Error{Kind: KindNotFound, Message: "unknown user"}

// KindOf returns the kind of err, or KindInternal for untyped errors
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// IsUnavailable reports whether err means the service could not be reached
func IsUnavailable(err error) bool {
	return err != nil && KindOf(err) == KindUnavailable
}
