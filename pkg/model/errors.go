package model

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned by the store adapter when a lookup matches
	// no document. The query engine translates it into a NotFoundError.
	ErrNotFound = errors.New("document not found")
)

// ErrorKind is the closed set of externally observable failure classes.
type ErrorKind int

const (
	// DbError covers store failures and document decode failures.
	DbError ErrorKind = iota
	// NotFoundError means an exact-key lookup matched zero records.
	NotFoundError
	// InvalidFieldError means a caller-supplied argument failed validation.
	InvalidFieldError
	// IOError covers failures reading external resources. It is only
	// produced at the batch loader boundary, never on the query path.
	IOError
)

// Code returns the machine-readable tag exposed to transports.
func (k ErrorKind) Code() string {
	switch k {
	case NotFoundError:
		return "NOT_FOUND"
	case InvalidFieldError:
		return "INVALID_FIELD"
	case IOError:
		return "IO_ERROR"
	default:
		return "DB_ERROR"
	}
}

// defaultMessage is the user-facing text used when no explicit message is set.
func (k ErrorKind) defaultMessage() string {
	switch k {
	case NotFoundError:
		return "The requested item was not found"
	case InvalidFieldError:
		return "Invalid field value provided"
	default:
		return "An unexpected error has occurred"
	}
}

// AppError is the single error type that crosses the query engine boundary.
// Message is optional user-facing text; Cause is an optional internal
// diagnostic that is never shown to callers unless no other text exists.
type AppError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error resolves the user-visible message: the explicit message if set,
// otherwise the kind default. The cause stays internal.
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.defaultMessage()
}

// Unwrap exposes the internal cause to errors.Is / errors.As chains.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError builds an AppError with an explicit user-facing message.
func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// WrapDbError classifies an internal store or decode failure as a DbError,
// keeping the original error as the diagnostic cause.
func WrapDbError(cause error) *AppError {
	return &AppError{Kind: DbError, Cause: cause}
}

// WrapIOError classifies a file read failure at the loader boundary.
func WrapIOError(cause error) *AppError {
	return &AppError{Kind: IOError, Cause: cause}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// IsCanceled returns true if the error is due to context cancellation or
// deadline exceeded. It checks both direct context errors and wrapped errors
// (e.g., from the MongoDB driver).
func IsCanceled(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "context canceled") || strings.Contains(errStr, "context deadline exceeded")
}
