// Package errs provides the unified error type used across tablegen.
//
// Every subsystem (database drivers, renderers, writers, object store) wraps
// its native errors into *errs.Error before returning them to callers. Callers
// use the Is* predicates to decide whether a failure skips one table or aborts
// the whole run, without importing driver-specific packages.
//
// Usage:
//
//	// In a driver, wrap native errors:
//	return errs.Wrap(errs.ErrKindQueryFailed, "metadata query failed", pgErr)
//
//	// In the pipeline, check the error kind:
//	if errs.IsNoColumns(err) {
//	    // skip the table, keep the worker alive
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing subsystem-specific codes.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindNotFound                 // no rows, no object, no bucket
	ErrKindConnectionFailed         // cannot reach the backend
	ErrKindTimeout                  // context deadline
	ErrKindQueryFailed              // SQL or storage operation error
	ErrKindInvalidInput             // bad arguments or configuration
	ErrKindPermissionDenied         // access denied / auth failure
	ErrKindUnsupportedType          // column type code has no mapping
	ErrKindNoColumns                // metadata query returned no column descriptors
	ErrKindRenderFailed             // artifact text could not be produced
	ErrKindWriteFailed              // artifact could not be persisted
	ErrKindInterrupted              // context cancelled while waiting
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindQueryFailed:
		return "query_failed"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindPermissionDenied:
		return "permission_denied"
	case ErrKindUnsupportedType:
		return "unsupported_type"
	case ErrKindNoColumns:
		return "no_columns"
	case ErrKindRenderFailed:
		return "render_failed"
	case ErrKindWriteFailed:
		return "write_failed"
	case ErrKindInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all tablegen subsystems.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original driver-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with a formatted message.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsNotFound reports whether err represents a "not found" result.
func IsNotFound(err error) bool {
	return KindOf(err) == ErrKindNotFound
}

// IsTimeout reports whether err was caused by a deadline.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrKindTimeout
}

// IsConnectionFailed reports whether err is a connectivity or auth failure.
func IsConnectionFailed(err error) bool {
	return KindOf(err) == ErrKindConnectionFailed
}

// IsQueryFailed reports whether err is a backend operation failure.
func IsQueryFailed(err error) bool {
	return KindOf(err) == ErrKindQueryFailed
}

// IsInvalidInput reports whether err was caused by bad input or configuration.
func IsInvalidInput(err error) bool {
	return KindOf(err) == ErrKindInvalidInput
}

// IsPermissionDenied reports whether err is an access control failure.
func IsPermissionDenied(err error) bool {
	return KindOf(err) == ErrKindPermissionDenied
}

// IsUnsupportedType reports whether a column type could not be mapped.
func IsUnsupportedType(err error) bool {
	return KindOf(err) == ErrKindUnsupportedType
}

// IsNoColumns reports whether a table yielded no column descriptors.
func IsNoColumns(err error) bool {
	return KindOf(err) == ErrKindNoColumns
}

// IsWriteFailed reports whether an artifact could not be persisted.
func IsWriteFailed(err error) bool {
	return KindOf(err) == ErrKindWriteFailed
}

// IsInterrupted reports whether a blocking wait was cancelled.
func IsInterrupted(err error) bool {
	return KindOf(err) == ErrKindInterrupted
}

// KindOf extracts the ErrKind from any error in the chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
