// File: api/errors.go
// Package api defines the error taxonomy shared by all hioload-echo layers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "fmt"

// Common errors used across the library. Lower layers wrap them with
// fmt.Errorf("...: %w", ...) so callers can classify with errors.Is.
var (
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrResource        = fmt.Errorf("resource unavailable")
	ErrBind            = fmt.Errorf("bind failed")
	ErrInvalidState    = fmt.Errorf("invalid state")
	ErrAccept          = fmt.Errorf("accept failed")
	ErrNotSupported    = fmt.Errorf("operation not supported")
	ErrClosed          = fmt.Errorf("endpoint is closed")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeResource
	ErrCodeBind
	ErrCodeInvalidState
	ErrCodeAccept
	ErrCodeNotSupported
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
