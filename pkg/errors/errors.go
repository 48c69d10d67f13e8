// Package errors carries kind-tagged errors so callers can tell user-facing
// conditions apart from internal invariant violations without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Standard error functions
var (
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)

// Kind classifies an error for handling and transport mapping.
type Kind string

const (
	// KindInvariant marks a broken internal invariant. It always indicates a
	// logic defect in the caller or the store, never a recoverable condition.
	KindInvariant Kind = "invariant_violation"
	// KindNotFound marks a lookup that referenced a record the store does not
	// hold. For this engine that is a caller bug, not ordinary control flow.
	KindNotFound Kind = "not_found"
)

// Error is the concrete kind-tagged error type.
type Error struct {
	Kind    Kind
	Message string

	cause error
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Invariantf builds a KindInvariant error.
func Invariantf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvariant, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a KindNotFound error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: err}
}

// KindOf returns the kind of err, or the empty string for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsInvariant reports whether err is kind-tagged as an invariant violation.
func IsInvariant(err error) bool { return KindOf(err) == KindInvariant }

// IsNotFound reports whether err is kind-tagged as a missing record.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
