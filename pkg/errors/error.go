// Package errors gives failures a stable code shared by the HTTP responses and the logs.
package errors

import (
	"errors"
	"fmt"
)

// AppError is a failure with a code from codes.go and a message safe to show a client.
// The wrapped cause is only logged.
type AppError struct {
	Code    string
	Message string
	Details map[string]interface{}
	cause   error
}

// New creates an error without a cause
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches code and message to err. It returns nil when err is nil.
func Wrap(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, cause: err}
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause.Error())
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// WithDetail adds a client visible detail and returns e
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// CodeOf returns the code of the outermost AppError in the chain, or ErrInternal
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}
