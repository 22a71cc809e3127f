package errors

import (
	"errors"
	"fmt"
)

// Exit codes for seabox. Everything unrecoverable exits non-zero;
// runtime failures carry the external process's exit code through.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// SeaboxError is the base error type for seabox
type SeaboxError struct {
	Code    int
	Message string
	Cause   error
}

func (e *SeaboxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SeaboxError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *SeaboxError) ExitCode() int {
	return e.Code
}

// New creates a new SeaboxError
func New(code int, message string) *SeaboxError {
	return &SeaboxError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SeaboxError
func Wrap(code int, message string, cause error) *SeaboxError {
	return &SeaboxError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// NoImage returns an error when no image could be resolved
func NoImage() *SeaboxError {
	return New(ExitFailure, "no default image found and no image provided with --image")
}

// ContainerExists returns an error for a create on an existing name
func ContainerExists(name string) *SeaboxError {
	return New(ExitFailure, fmt.Sprintf("a container with name '%s' already exists", name))
}

// ContainerNotFound returns an error for a missing container
func ContainerNotFound(name string) *SeaboxError {
	return New(ExitFailure, fmt.Sprintf("a container with name '%s' does not exist", name))
}

// DirectoryNotFound returns an error for a missing mount directory
func DirectoryNotFound(dir string) *SeaboxError {
	return New(ExitFailure, fmt.Sprintf("directory '%s' does not exist", dir))
}

// MountSpecError returns an error for a malformed host:container mount
func MountSpecError(spec string) *SeaboxError {
	return New(ExitFailure, fmt.Sprintf("invalid format for mount: %s", spec))
}

// RuntimeFailed returns an error for a failed runtime invocation.
// A non-zero external exit code is propagated as the tool's own.
func RuntimeFailed(op string, exitCode int, cause error) *SeaboxError {
	code := exitCode
	if code == 0 {
		code = ExitFailure
	}
	return Wrap(code, fmt.Sprintf("podman %s failed", op), cause)
}

// ParseError returns an error for malformed external output.
// Identity decisions hang off this data, so there is no recovery path.
func ParseError(what string, cause error) *SeaboxError {
	return Wrap(ExitFailure, fmt.Sprintf("cannot parse %s", what), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *SeaboxError {
	return Wrap(ExitFailure, message, cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var sbErr *SeaboxError
	if errors.As(err, &sbErr) {
		return sbErr.ExitCode()
	}
	return ExitFailure
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
