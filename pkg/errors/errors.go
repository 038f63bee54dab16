// Package errors provides structured error types for lexorder.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - CYCLE_DETECTED, RANK_COLLISION: inconsistent precedence evidence
//   - CACHE_ERROR: result cache failures (never fatal)
//   - INTERNAL_*: Unexpected internal errors
//
// # Inference Failures
//
// The inference kernel fails in exactly two ways, each with a typed error
// carrying the dense alphabet indices involved: [CycleError] and
// [RankCollisionError]. Both implement Code, so [GetCode] resolves them
// like any *Error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "word %d is not valid UTF-8", i)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	var cycle *errors.CycleError
//	if stderrors.As(err, &cycle) {
//	    fmt.Println(cycle.Index)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Inference errors
	ErrCodeCycleDetected Code = "CYCLE_DETECTED"
	ErrCodeRankCollision Code = "RANK_COLLISION"

	// Cache errors
	ErrCodeCache Code = "CACHE_ERROR"

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

// coded is implemented by error types that carry their own code.
type coded interface {
	error
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error, *CycleError or
// *RankCollisionError with a matching code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coded
	if errors.As(err, &c) {
		return c.Code()
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

// CycleError reports a character whose longest outgoing chain reached the
// alphabet size, which only happens when the precedence graph has a cycle.
type CycleError struct {
	Index int // dense alphabet index of the offending character
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected at index %d", e.Index)
}

// Code returns the error code for this error type.
func (e *CycleError) Code() Code {
	return ErrCodeCycleDetected
}

// RankCollisionError reports two characters that resolved to the same rank.
// The adjacency evidence does not single out one total order.
type RankCollisionError struct {
	Rank     int // contested rank
	Index    int // character that tried to take the rank
	Existing int // character already holding the rank
}

// Error implements the error interface.
func (e *RankCollisionError) Error() string {
	return fmt.Sprintf("rank %d of index %d already assigned to index %d", e.Rank, e.Index, e.Existing)
}

// Code returns the error code for this error type.
func (e *RankCollisionError) Code() Code {
	return ErrCodeRankCollision
}
