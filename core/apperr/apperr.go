package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for propagation and presentation.
type Kind string

const (
	KindNotFound            Kind = "NotFound"
	KindInvalidState        Kind = "InvalidState"
	KindValidation          Kind = "ValidationError"
	KindUpstreamUnavailable Kind = "UpstreamUnavailable"
	KindInternal            Kind = "InternalError"
)

// Error is a classified error carrying a user-facing message.
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

// Is matches any *Error with the same kind, so errors.Is(err, apperr.NotFound("")) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an unknown identifier.
func NotFound(format string, args ...any) *Error {
	return newf(KindNotFound, format, args...)
}

// InvalidState reports a disallowed transition.
func InvalidState(format string, args ...any) *Error {
	return newf(KindInvalidState, format, args...)
}

// Validation reports a malformed request.
func Validation(format string, args ...any) *Error {
	return newf(KindValidation, format, args...)
}

// Upstream wraps a failure talking to the authoritative source.
func Upstream(err error, format string, args ...any) *Error {
	e := newf(KindUpstreamUnavailable, format, args...)
	e.Err = err
	return e
}

// Internal wraps an unexpected failure.
func Internal(err error, format string, args ...any) *Error {
	e := newf(KindInternal, format, args...)
	e.Err = err
	return e
}

// KindOf returns the kind of err, or KindInternal when err is not classified.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Status maps an error to an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Body is the structured error payload returned by every endpoint.
type Body struct {
	Error BodyError `json:"error"`
}

// BodyError carries the kind and message of a failed request.
type BodyError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// ToBody renders err for the API. Internal errors do not leak their cause.
func ToBody(err error) Body {
	var e *Error
	if errors.As(err, &e) {
		msg := e.Message
		if e.Kind != KindInternal && e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return Body{Error: BodyError{Kind: e.Kind, Message: msg}}
	}
	return Body{Error: BodyError{Kind: KindInternal, Message: "internal error"}}
}
