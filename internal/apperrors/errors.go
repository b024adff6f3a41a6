package apperrors

import (
	"fmt"
	"strings"
)

// AppError is an error carrying a taxonomy code. Cause is for server logs and
// development responses only; it never reaches production clients.
type AppError struct {
	Code  Code
	Field string
	Value string
	Cause error
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, Message(e.Code), e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, Message(e.Code))
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError for the given code.
func New(code Code) *AppError {
	return &AppError{Code: code}
}

// Wrap creates an AppError preserving the underlying cause.
func Wrap(code Code, cause error) *AppError {
	return &AppError{Code: code, Cause: cause}
}

// ValidationError represents a single offending input field.
type ValidationError struct {
	Code    Code   `json:"error_code"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every offending field so the caller can redisplay
// the whole form in one round trip.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// HasErrors reports whether any field failed validation.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}
