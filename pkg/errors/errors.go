// Package errors provides structured error types for Arbor.
//
// This package defines error codes and types that enable:
//   - Consistent reporting of refused edits across the HTTP API and terminal UI
//   - Machine-readable codes for presentation layers (e.g. disabling menu items)
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Edit guards use domain codes (ROOT_PROTECTED, SELF_PASTE, ...). A guard
// failure always means "document unchanged"; it is never an internal fault.
// Ambient failures use INVALID_*, *_NOT_FOUND and INTERNAL_ERROR.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeRootProtected, "cannot cut the root")
//	if errors.Is(err, errors.ErrCodeRootProtected) {
//	    // Leave the menu item disabled
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Edit guards
	ErrCodeInvalidLabel   Code = "INVALID_LABEL"
	ErrCodeNodeNotFound   Code = "NODE_NOT_FOUND"
	ErrCodeRootProtected  Code = "ROOT_PROTECTED"
	ErrCodeHasChildren    Code = "HAS_CHILDREN"
	ErrCodeClipboardEmpty Code = "CLIPBOARD_EMPTY"
	ErrCodeSelfPaste      Code = "SELF_PASTE"
	ErrCodeCyclicPaste    Code = "CYCLIC_PASTE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidSeed   Code = "INVALID_SEED"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsGuard reports whether err is a refused edit (document unchanged) rather
// than a failure.
func IsGuard(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidLabel, ErrCodeNodeNotFound, ErrCodeRootProtected, ErrCodeHasChildren,
		ErrCodeClipboardEmpty, ErrCodeSelfPaste, ErrCodeCyclicPaste:
		return true
	}
	return false
}
