// Package errors provides structured error types for brd2tpl.
//
// Every failure that can abort a template run carries a machine-readable
// [Code], so the CLI and tests can tell the kinds apart without matching
// message text:
//   - PROJECT_OPEN: the board project cannot be opened
//   - UNKNOWN_LAYER: a layer name is missing from the layer catalog
//   - EXTERNAL_RENDER: the board exporter failed
//   - MARKER_NOT_FOUND: the marker resource cannot be located
//   - GEOMETRY: malformed page geometry (empty or mismatched composites)
//   - INVALID_INPUT: option validation failures
//   - INVALID_CONFIG: malformed config files or recipes
//   - INVALID_MARKER: malformed marker shape files
//   - OUTPUT_WRITE: the template file cannot be written
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownLayer, "unknown layer %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownLayer) {
//	    // Handle catalog error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeProjectOpen, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure kinds of a template run.
const (
	ErrCodeProjectOpen    Code = "PROJECT_OPEN"
	ErrCodeUnknownLayer   Code = "UNKNOWN_LAYER"
	ErrCodeExternalRender Code = "EXTERNAL_RENDER"
	ErrCodeMarkerNotFound Code = "MARKER_NOT_FOUND"
	ErrCodeGeometry       Code = "GEOMETRY"
	ErrCodeOutputWrite    Code = "OUTPUT_WRITE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidMarker Code = "INVALID_MARKER"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message followed by the user message of
// the cause, so no code prefix appears anywhere in the chain.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
