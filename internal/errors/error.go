package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"
	CategoryRegistry   Category = "registry"
	CategoryBuild      Category = "build"
	CategoryCLI        Category = "cli"
)

// StarError is a structured error with a code, suggestions, and documentation.
type StarError struct {
	// Code is a unique error identifier (e.g., "E243").
	Code string

	// Category is the error type (config, registry, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *StarError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *StarError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same error code.
func (e *StarError) Is(target error) bool {
	t, ok := target.(*StarError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *StarError) WithSuggestion(s string) *StarError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *StarError) WithDetail(d string) *StarError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detailed explanation to the error.
func (e *StarError) WithDetailf(format string, args ...any) *StarError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *StarError) Wrap(err error) *StarError {
	e.Wrapped = err
	return e
}

// New creates a StarError from a registered error code.
func New(code string) *StarError {
	template, ok := registry[code]
	if !ok {
		return &StarError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &StarError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new StarError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *StarError {
	return &StarError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a StarError.
func FromError(err error, code string) *StarError {
	if err == nil {
		return nil
	}
	var se *StarError
	if stderrors.As(err, &se) {
		return se
	}
	return New(code).WithDetail(err.Error()).Wrap(err)
}

// Is is errors.Is from the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is errors.As from the standard library.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Code returns the code of the first StarError in err's chain, or "".
func Code(err error) string {
	var se *StarError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}
