// Package errors defines the error taxonomy and exit codes for pkgmon.
//
// The monitor loop is designed so that no per-project error is fatal:
// read failures downgrade to an Unknown classification, watch failures
// degrade a single project, and discovery timeouts exclude a single root.
// The only fatal conditions are configuration errors and interrupt.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates the command completed successfully, including a
	// monitor run terminated by interrupt.
	ExitSuccess = 0

	// ExitFailure indicates a critical error occurred (e.g., the watcher
	// could not be created, or a collaborator command failed).
	ExitFailure = 2

	// ExitConfigError indicates a configuration or validation error.
	// The command could not proceed due to invalid config.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitConfigError,
//	    Message: "failed to load config",
//	    Err:     err,
//	}
type ExitError struct {
	// Code is the exit code for the command.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewConfigError creates an ExitError with the config error exit code.
//
// Parameters:
//   - message: Human-readable description of the configuration problem
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: Error carrying ExitConfigError
func NewConfigError(message string, err error) *ExitError {
	return &ExitError{Code: ExitConfigError, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
//
// It performs the following operations:
//   - Returns ExitSuccess for nil errors
//   - Returns the embedded code for ExitError values (via errors.As)
//   - Returns ExitFailure for all other errors
//
// Parameters:
//   - err: The error to inspect, may be nil
//
// Returns:
//   - int: The exit code to use for process termination
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}
