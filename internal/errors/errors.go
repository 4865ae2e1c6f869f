// Package errors provides the coded error type used for loader and
// collaborator failures. Step and command failures are deliberately not
// errors: the engine models them as results.
package errors

import (
	"errors"
	"fmt"
)

// Codes carried by loader and collaborator errors.
const (
	CodeWorkflowNotFound = "workflow_not_found"
	CodeInvalidYAML      = "invalid_yaml"
	CodeInvalidWorkflow  = "invalid_workflow"
	CodeJobNotFound      = "job_not_found"
	CodeReportWrite      = "report_write"
)

// Error pairs a stable code with a human-readable message and an optional
// wrapped cause. The code never appears in Error(); it exists for callers
// that branch on failure kind.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
