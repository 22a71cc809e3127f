// Package errors provides error types and exit-code handling for seabox.
//
// All errors carry an exit code. main() maps any returned error to a
// process exit code via GetExitCode; errors without a SeaboxError in
// their chain exit with the general failure code 1.
//
// Runtime failures are special: when an external podman invocation exits
// non-zero, RuntimeFailed propagates that exit code as seabox's own.
//
// Usage:
//
//	if res.ExitCode != 0 {
//	    return errors.RuntimeFailed("pull", res.ExitCode, nil)
//	}
package errors
