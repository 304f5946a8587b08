package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Codes group failures by the subsystem they came from.
const (
	ErrConfig  = "CONFIG"
	ErrCollect = "COLLECT"
	ErrEvents  = "EVENTS"
	ErrTerm    = "TERM"
)

// Error carries what failed, why, and what the user can do about it.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New builds an Error with no underlying cause.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap attaches a message to an underlying error under the ErrEvents code.
// Use WrapWithCode when the failure belongs to another subsystem.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrEvents,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode attaches a code, message, and suggestion to an underlying
// error.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error renders the multi-line form: the failure first, then the cause,
// then the suggestion.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode reports whether err is (or wraps) an Error carrying the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Code == code
	}
	return false
}
