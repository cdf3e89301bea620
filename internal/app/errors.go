// Package app contains the application services behind the primary ports.
// Services orchestrate repositories and the pure core packages; they hold no
// scheduling math of their own.
package app

import (
	"errors"
	"fmt"
)

// NotFoundError marks lookups for entities that do not exist. Collaborators
// render these without a stack of wrapping context.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NotFound builds a NotFoundError.
func NotFound(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// InvariantError marks operations rejected because they would violate an
// engine invariant, like a duplicate revision for one (item, date, mode) key.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return e.Msg }

// Invariant builds an InvariantError.
func Invariant(format string, args ...any) error {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

// IsInvariant reports whether err is (or wraps) an InvariantError.
func IsInvariant(err error) bool {
	var target *InvariantError
	return errors.As(err, &target)
}
