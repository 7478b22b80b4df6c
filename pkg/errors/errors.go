// Package errors provides structured error types for plotgrid.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library API
//   - Machine-readable error codes for programmatic handling
//   - Typed errors for size-convergence failures
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - DESIGN_*, LAYOUT_*: grid description failures
//   - CONVERGENCE_*, ALLOCATION_*: sizing failures
//   - INVALID_*: input validation failures
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDesignMatrix, "index %d missing", i)
//	if errors.Is(err, errors.ErrCodeDesignMatrix) {
//	    // Handle malformed design
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "render %s", leaf)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Design and layout errors
	ErrCodeDesignMatrix   Code = "DESIGN_MATRIX"
	ErrCodeDesignParse    Code = "DESIGN_PARSE"
	ErrCodeLayoutMismatch Code = "LAYOUT_MISMATCH"
	ErrCodeDeferredLayout Code = "DEFERRED_LAYOUT"
	ErrCodeChildCount     Code = "CHILD_COUNT"

	// Sizing errors
	ErrCodeTooManyIterations   Code = "CONVERGENCE_TOO_MANY_ITERATIONS"
	ErrCodeBelowMinimumSize    Code = "CONVERGENCE_BELOW_MIN_SIZE"
	ErrCodeAllocationExhausted Code = "ALLOCATION_EXHAUSTED"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidArea      Code = "INVALID_AREA"
	ErrCodeUnsupportedChild Code = "UNSUPPORTED_CHILD"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	// Backend and internal errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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

// coder is implemented by typed errors that map onto a Code.
type coder interface {
	ErrorCode() Code
}

// Is reports whether err has the given error code.
// It walks the error chain looking for an *Error or a typed error
// with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is in the chain.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.ErrorCode()
		}
		err = errors.Unwrap(err)
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

// Size is a width/height pair in inches carried by sizing errors.
type Size struct {
	Width  float64
	Height float64
}

func (s Size) String() string {
	return fmt.Sprintf("%.4gin x %.4gin", s.Width, s.Height)
}

// ConvergenceError reports a leaf that never rendered at its requested size.
type ConvergenceError struct {
	Reason     Code // ErrCodeTooManyIterations or ErrCodeBelowMinimumSize
	Iterations int  // Corrections applied before giving up
	Desired    Size // Requested size
	Last       Size // Last corrected request
}

// Error implements the error interface.
func (e *ConvergenceError) Error() string {
	switch e.Reason {
	case ErrCodeBelowMinimumSize:
		return fmt.Sprintf("%s: corrected size %s for target %s fell below minimum pixel size",
			e.Reason, e.Last, e.Desired)
	default:
		return fmt.Sprintf("%s: no convergence to %s within %d iterations (last %s)",
			e.Reason, e.Desired, e.Iterations, e.Last)
	}
}

// ErrorCode returns the failure reason.
func (e *ConvergenceError) ErrorCode() Code {
	return e.Reason
}

// AllocationError reports that every rescale attempt failed.
// Last is the size of the final attempt.
type AllocationError struct {
	Attempts int
	Last     Size
	Cause    error
}

// Error implements the error interface.
func (e *AllocationError) Error() string {
	msg := fmt.Sprintf("%s: could not fit figure after %d attempt(s), last size %s",
		ErrCodeAllocationExhausted, e.Attempts, e.Last)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// ErrorCode returns ErrCodeAllocationExhausted.
func (e *AllocationError) ErrorCode() Code {
	return ErrCodeAllocationExhausted
}

// Unwrap returns the leaf failure that triggered the final attempt.
func (e *AllocationError) Unwrap() error {
	return e.Cause
}
