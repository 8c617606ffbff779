package exitcode

import (
	"os"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationError indicates a required input field was empty or malformed
	ValidationError = 3

	// AuthError indicates an authentication failure
	AuthError = 5

	// NetworkError indicates the agent service could not be reached
	NetworkError = 6

	// Interrupted indicates the user cancelled with an interrupt signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	se, ok := err.(*errors.SkylineError)
	if !ok {
		return GeneralError
	}

	switch se.Code {
	case errors.ErrCodeLoginRejected, errors.ErrCodeNotLoggedIn:
		return AuthError
	case errors.ErrCodeAgentUnreachable, errors.ErrCodeAgentStatus, errors.ErrCodeAgentPayload:
		return NetworkError
	case errors.ErrCodeMissingField, errors.ErrCodeBadSelection, errors.ErrCodeNoSearchFirst:
		return ValidationError
	default:
		return GeneralError
	}
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ValidationError:
		return "Validation error (missing or malformed input)"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	default:
		return "Unknown error"
	}
}
