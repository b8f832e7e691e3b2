// Package bloomerr defines the error kinds shared across the bloomlattice
// packages. Every public operation that can fail returns an error whose
// message is the formatted text and which unwraps to one of the sentinels
// below, so callers can branch with errors.Is.
package bloomerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals a precondition violated at the call site:
	// nil arguments, out-of-range parameters, or an incompatible argument.
	ErrInvalidArgument = errors.New("bloomlattice: invalid argument")

	// ErrImmutable signals a mutating call on an immutable wrapper.
	ErrImmutable = errors.New("bloomlattice: immutable")

	// ErrInvalidState signals a structural precondition violated at
	// construction time.
	ErrInvalidState = errors.New("bloomlattice: invalid state")
)

// InvalidArgument wraps ErrInvalidArgument with a formatted message.
func InvalidArgument(format string, args ...any) error {
	return wrap(ErrInvalidArgument, format, args...)
}

// Immutable wraps ErrImmutable with a formatted message.
func Immutable(format string, args ...any) error {
	return wrap(ErrImmutable, format, args...)
}

// InvalidState wraps ErrInvalidState with a formatted message.
func InvalidState(format string, args ...any) error {
	return wrap(ErrInvalidState, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
