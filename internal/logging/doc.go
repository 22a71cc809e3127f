// Package logging provides logging utilities for seabox.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("resolved config", "image", cfg.Image)
//	logging.Warn("could not record box", "name", name, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Deleting container %s", name)
//	logging.UserSuccess("Container %s created", name)
//	logging.UserWarning("Config file not found at %s", path)
//	logging.UserError("Failed to start container: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
