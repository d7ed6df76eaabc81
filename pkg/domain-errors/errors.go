// Package domainerrors defines the coded errors services hand back to callers.
//
// Stores report facts through pkg/platform/sentinel; services translate those
// facts into one of the codes below so the surrounding layer (HTTP, CLI) can map
// them without knowing anything about storage.
package domainerrors

import (
	"errors"
	"fmt"

	"mealcare/pkg/platform/sentinel"
)

// Code classifies a domain error.
type Code string

const (
	// CodeInvalidInput marks a malformed or missing field, or an unknown enum value.
	CodeInvalidInput Code = "invalid_input"
	// CodeConflict marks a violated uniqueness invariant.
	CodeConflict Code = "conflict"
	// CodeVersionConflict marks a stale version on an optimistic update.
	CodeVersionConflict Code = "version_conflict"
	// CodeImmutable marks an attempt to modify or remove an audit record.
	CodeImmutable Code = "immutable_record"
	// CodeNotFound marks a referenced row that does not exist.
	CodeNotFound Code = "not_found"
	// CodeInvalidState marks an operation the entity's lifecycle does not allow.
	CodeInvalidState Code = "invalid_state"
	// CodeUnauthorized marks rejected credentials.
	CodeUnauthorized Code = "unauthorized"
	CodeTimeout      Code = "timeout"
	CodeInternal     Code = "internal"
)

// Error carries a code, a caller-safe message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to err.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any *Error in err's chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	for err != nil {
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// CodeOf returns the outermost code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// FromStore translates a store error into a coded error. Errors that already
// carry a code pass through untouched.
func FromStore(err error, subject string) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return Wrap(err, CodeNotFound, subject+" not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return Wrap(err, CodeConflict, subject+" already exists")
	case errors.Is(err, sentinel.ErrVersionConflict):
		return Wrap(err, CodeVersionConflict, subject+" was modified by another writer")
	case errors.Is(err, sentinel.ErrImmutable):
		return Wrap(err, CodeImmutable, subject+" is immutable")
	case errors.Is(err, sentinel.ErrInvalidState):
		return Wrap(err, CodeInvalidState, subject+" is in the wrong state")
	case errors.Is(err, sentinel.ErrInvalidValue):
		return Wrap(err, CodeInvalidInput, subject+" has an invalid value")
	case errors.Is(err, sentinel.ErrUnavailable):
		return Wrap(err, CodeTimeout, "storage unavailable")
	default:
		return Wrap(err, CodeInternal, "failed to access "+subject)
	}
}
