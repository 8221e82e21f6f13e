// Package serrors defines the structured error type that crosses component
// boundaries. Every failure surfaced to a caller is one of a small set of
// kinds; raw infrastructure errors never leave the service layer.
package serrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindDenied is an authorization denial. It deliberately carries no
	// detail about the resource so callers cannot probe for existence.
	KindDenied Kind = "denied"
	// KindValidation is malformed input, detected before a transaction opens.
	KindValidation Kind = "validation"
	// KindNotFound is a missing record within the caller's visible scope.
	KindNotFound Kind = "not_found"
	// KindConflict is a uniqueness violation (e.g. duplicate tenant-scoped slug).
	KindConflict Kind = "conflict"
	// KindReferential is a delete blocked by dependent rows.
	KindReferential Kind = "referential"
	// KindTransaction is an infrastructure failure; the whole write may be
	// retried because nothing partial was committed.
	KindTransaction Kind = "transaction"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Field is the dotted path of the offending input field, empty when the
	// error is not tied to a single field.
	Field string
	// Dependents is the number of rows blocking a referential delete.
	Dependents int
	cause      error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.cause = cause
	return &clone
}

func NewError(code, message, field string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Field: field}
}

func Denied(code, message string) *Error {
	return &Error{Kind: KindDenied, Code: code, Message: message}
}

func Validation(code, message, field string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Field: field}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func Referential(code, message string, dependents int) *Error {
	return &Error{Kind: KindReferential, Code: code, Message: message, Dependents: dependents}
}

func Transaction(code, message string, cause error) *Error {
	return &Error{Kind: KindTransaction, Code: code, Message: message, cause: cause}
}

// KindOf reports the kind of err when it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// AsError returns the structured error wrapped in err, if any.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
