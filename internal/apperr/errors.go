// Package apperr defines the coded application errors used across the
// server. Every failure is scoped to a single operation: handlers map
// codes to HTTP statuses and nothing here is fatal to the process.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation    Code = "validation"
	CodeAuthorization Code = "authorization"
	CodeNotFound      Code = "not_found"
	CodeConflict      Code = "conflict"
	CodePrecondition  Code = "precondition"
	CodeTransport     Code = "transport"
)

type Error struct {
	Code    Code
	Message string
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.cause.Error())
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// CodeOf returns the code of err, or CodeTransport for any error that
// does not carry one. A nil err has no code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return CodeTransport
}

func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

func IsConflict(err error) bool {
	return HasCode(err, CodeConflict)
}

func IsValidation(err error) bool {
	return HasCode(err, CodeValidation)
}
