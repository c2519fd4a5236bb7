// Package apperr defines the error taxonomy surfaced to callers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the caller.
type Kind string

const (
	// KindNotFound covers unknown tokens, bills, items and participants.
	KindNotFound Kind = "NOT_FOUND"
	// KindStateConflict means the operation is illegal in the current state.
	KindStateConflict Kind = "STATE_CONFLICT"
	// KindValidation means a required field is missing or malformed.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindUpstream means an external collaborator failed.
	KindUpstream Kind = "UPSTREAM_FAILURE"
	// KindRateLimited means the caller should retry later.
	KindRateLimited Kind = "RATE_LIMITED"
	// KindInternal covers storage and programming errors.
	KindInternal Kind = "INTERNAL"
)

// Error is a structured application error.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports a missing entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", entity)}
}

// StateConflict reports an operation attempted outside its legal state.
func StateConflict(message, detail string) *Error {
	return &Error{Kind: KindStateConflict, Message: message, Detail: detail}
}

// Validation reports a bad or missing input.
func Validation(message, detail string) *Error {
	return &Error{Kind: KindValidation, Message: message, Detail: detail}
}

// Upstream wraps a collaborator failure.
func Upstream(service string, err error) *Error {
	e := &Error{Kind: KindUpstream, Message: fmt.Sprintf("%s unavailable", service), Err: err}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// RateLimited reports a throttled caller.
func RateLimited(message string) *Error {
	return &Error{Kind: KindRateLimited, Message: message}
}

// Internal wraps an unexpected error. The detail is not meant for end users.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
