// Package domainerrors provides coded errors for the engine's public surface.
//
// Every operation fails with exactly one of these codes; transports map codes
// to their own status vocabulary without string matching. Wrap preserves the
// cause chain for errors.Is / errors.Unwrap while pinning the outward code.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeAlreadyInitialized signals a repeated one-time setup call.
	CodeAlreadyInitialized Code = "already_initialized"
	// CodeNotFound signals a lookup of a nonexistent id or an uninitialized
	// singleton.
	CodeNotFound Code = "not_found"
	// CodeFeederNotRegistered signals that the authenticated wallet resolves
	// to no registered feeder (sentinel id 0).
	CodeFeederNotRegistered Code = "feeder_not_registered"
	// CodeUnauthorized signals that authentication succeeded but the principal
	// does not own or administer the target entity.
	CodeUnauthorized Code = "unauthorized"
	// CodeTransferFailed signals a rejection by the value-transfer collaborator.
	CodeTransferFailed Code = "transfer_failed"

	CodeBadRequest         Code = "bad_request"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal_error"
)

// Error is a domain error with a stable code and a human-readable message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a domain error with the given code.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// non-domain errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
