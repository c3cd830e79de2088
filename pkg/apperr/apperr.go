// Package apperr is the error taxonomy shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUpstreamUnavailable
	KindUpstreamFormat
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindUpstreamFormat:
		return "upstream_format"
	}
	return "internal"
}

// Status maps a kind to its HTTP status. Conflict answers 400, as the
// client has always treated a duplicate registration as a bad request.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case KindUpstreamFormat:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(k Kind, msg string) *Error { return &Error{Kind: k, Msg: msg} }

func Wrap(k Kind, msg string, err error) *Error { return &Error{Kind: k, Msg: msg, Err: err} }

func Validation(msg string) *Error   { return New(KindValidation, msg) }
func Unauthorized(msg string) *Error { return New(KindUnauthorized, msg) }
func Forbidden(msg string) *Error    { return New(KindForbidden, msg) }
func NotFound(msg string) *Error     { return New(KindNotFound, msg) }
func Conflict(msg string) *Error     { return New(KindConflict, msg) }

func Unavailable(msg string, err error) *Error { return Wrap(KindUpstreamUnavailable, msg, err) }
func BadFormat(msg string, err error) *Error   { return Wrap(KindUpstreamFormat, msg, err) }
func Internal(msg string, err error) *Error    { return Wrap(KindInternal, msg, err) }

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// Public is the message safe to show a client. Internal failures never
// leak their detail.
func Public(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	return "internal server error"
}
