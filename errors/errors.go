// Package errors carries the coded error taxonomy of the session engine.
// Transport errors are the only retryable kind; everything else reflects
// a decision the backend or the local state machine already made.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrWorkerPanic marks a supervised worker that crashed and recovered.
var ErrWorkerPanic = New(CodeUnknown, "worker panic")

type AppError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func Validation(msg string) error { return New(CodeValidation, msg) }
func Permission(msg string) error { return New(CodePermission, msg) }
func NotFound(msg string) error   { return New(CodeNotFound, msg) }
func Conflict(msg string) error   { return New(CodeConflict, msg) }
func NotJoined(msg string) error  { return New(CodeNotJoined, msg) }

func Transport(msg string, cause error) error {
	return Wrap(CodeTransport, msg, cause)
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
