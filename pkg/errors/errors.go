/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured errors with stable machine-readable
// codes shared by the graph builder, the query surface, and the HTTP server.
package errors

import (
	"errors"
	"fmt"
)

// Error codes as constants.
const (
	// Build-time codes. A dataset that fails with one of these yields no
	// usable graph at all.
	ErrCodeDuplicateName   = "DUPLICATE_NAME"
	ErrCodeUnknownAncestor = "UNKNOWN_ANCESTOR"
	ErrCodeCyclicGraph     = "CYCLIC_GRAPH"

	// Query-time codes. These are expected outcomes, not programming errors.
	ErrCodeAmbiguousMatch      = "AMBIGUOUS_MATCH"
	ErrCodeUnsupportedCompiler = "UNSUPPORTED_COMPILER"
	ErrCodeUnknownTarget       = "UNKNOWN_TARGET"

	// General codes.
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
)

// StructuredError is an error with a stable code and an optional wrapped cause.
type StructuredError struct {
	Code    string
	Message string
	Err     error

	// Details carries structured context attached at wrap time, surfaced
	// verbatim in API error responses.
	Details map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *StructuredError) Unwrap() error {
	return e.Err
}

// New creates a StructuredError with the given code and formatted message.
func New(code, format string, args ...any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a StructuredError wrapping err with the given code and message.
func Wrap(code, message string, err error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WrapWithContext creates a StructuredError wrapping err with the given
// code, message, and detail map.
func WrapWithContext(code, message string, err error, details map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
}

// CodeOf returns the code carried by err, or ErrCodeInternal if err is not
// a StructuredError.
func CodeOf(err error) string {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	var se *StructuredError
	return errors.As(err, &se) && se.Code == code
}
