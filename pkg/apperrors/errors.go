package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies application errors so the route layer can map them to HTTP
// statuses without inspecting messages.
type Kind string

const (
	// KindInvalidInput covers malformed ids, missing required fields and
	// out-of-range values.
	KindInvalidInput Kind = "INVALID_INPUT"

	// KindNotFound means no record exists for the given id.
	KindNotFound Kind = "NOT_FOUND"

	// KindLocationUnresolved means no usable coordinates could be derived
	// from the supplied location descriptor.
	KindLocationUnresolved Kind = "LOCATION_UNRESOLVED"

	// KindUpstreamProvider covers geocoding/LLM calls that failed or
	// returned an unexpected shape.
	KindUpstreamProvider Kind = "UPSTREAM_PROVIDER"

	// KindInternal is everything else.
	KindInternal Kind = "INTERNAL"
)

// Error is the typed application error carried from services to the route
// boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidInput creates an invalid-input error.
func InvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// NotFound creates a not-found error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// LocationUnresolved creates a location-unresolved error.
func LocationUnresolved(message string) *Error {
	return &Error{Kind: KindLocationUnresolved, Message: message}
}

// UpstreamProvider wraps a failed external provider call. The wrapped error is
// kept for logs; the message is what callers may surface.
func UpstreamProvider(message string, err error) *Error {
	return &Error{Kind: KindUpstreamProvider, Message: message, Err: err}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the Kind of err, or KindInternal when err is not an
// application error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of err. Upstream and internal
// failures get a generic message so provider detail is never leaked.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case KindUpstreamProvider:
			return "upstream provider request failed"
		case KindInternal:
			return "internal server error"
		default:
			return ae.Message
		}
	}
	return "internal server error"
}
