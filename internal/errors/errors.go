package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeLoginRejected ErrorCode = "AUTH-001"
	ErrCodeNotLoggedIn   ErrorCode = "AUTH-002"

	// Agent transport errors (AGENT-001 to AGENT-099)
	ErrCodeAgentUnreachable ErrorCode = "AGENT-001"
	ErrCodeAgentStatus      ErrorCode = "AGENT-002"
	ErrCodeAgentPayload     ErrorCode = "AGENT-003"

	// Validation errors (INPUT-001 to INPUT-099)
	ErrCodeMissingField  ErrorCode = "INPUT-001"
	ErrCodeBadSelection  ErrorCode = "INPUT-002"
	ErrCodeNoSearchFirst ErrorCode = "INPUT-003"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionRebind ErrorCode = "SESSION-001"

	// State file errors (IO-001 to IO-099)
	ErrCodeStateRead  ErrorCode = "IO-001"
	ErrCodeStateWrite ErrorCode = "IO-002"
	ErrCodeConfigLoad ErrorCode = "IO-003"
)

// SkylineError represents an enhanced error with code, suggestions, and a cause
type SkylineError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *SkylineError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *SkylineError) Unwrap() error {
	return e.Cause
}

// New creates a new SkylineError
func New(code ErrorCode, message string) *SkylineError {
	return &SkylineError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new SkylineError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *SkylineError {
	return &SkylineError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *SkylineError) WithSuggestion(suggestion string) *SkylineError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *SkylineError) WithSuggestions(suggestions ...string) *SkylineError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Common error constructors for frequently used errors

// NewLoginRejectedError surfaces the server's rejection message verbatim.
func NewLoginRejectedError(detail string) *SkylineError {
	return New(ErrCodeLoginRejected, detail).
		WithSuggestion("Check your email and password").
		WithSuggestion("Run 'skyline login' to try again")
}

// NewNotLoggedInError creates an error for operations that need an identity.
func NewNotLoggedInError(what string) *SkylineError {
	return New(ErrCodeNotLoggedIn, fmt.Sprintf("you must be logged in to %s", what)).
		WithSuggestion("Run 'skyline login' first")
}

// NewAgentUnreachableError creates a transport failure error.
func NewAgentUnreachableError(cause error) *SkylineError {
	return Wrap(ErrCodeAgentUnreachable, "could not reach the booking agent", cause).
		WithSuggestion("Check that the agent service is running").
		WithSuggestion("Verify agent.base_url in ~/.skyline/config.yaml")
}

// NewMissingFieldError creates a validation error for an empty required field.
func NewMissingFieldError(field string) *SkylineError {
	return New(ErrCodeMissingField, fmt.Sprintf("%s must not be empty", field))
}

// IsCode reports whether err is a SkylineError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	se, ok := err.(*SkylineError)
	return ok && se.Code == code
}
