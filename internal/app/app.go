// Package app provides the application context for seabox.
// It allows dependency injection for testing.
package app

import (
	"github.com/seabox-dev/seabox/internal/config"
	"github.com/seabox-dev/seabox/internal/logging"
	"github.com/seabox-dev/seabox/internal/runtime"
	"github.com/seabox-dev/seabox/internal/state"
)

// App holds the application dependencies
type App struct {
	// ConfigPath is the location of the TOML config file.
	ConfigPath string

	// StateDir is where box records are kept.
	StateDir string

	// Executor runs synthesized argument vectors.
	Executor runtime.Executor
}

// Option is a function that configures the App
type Option func(*App)

// WithConfigPath sets a custom config file location
func WithConfigPath(path string) Option {
	return func(a *App) {
		a.ConfigPath = path
	}
}

// WithStateDir sets a custom box record directory
func WithStateDir(dir string) Option {
	return func(a *App) {
		a.StateDir = dir
	}
}

// WithExecutor sets a custom executor
func WithExecutor(e runtime.Executor) Option {
	return func(a *App) {
		a.Executor = e
	}
}

// New creates a new App with the given options. Platform paths are
// discovered for anything not provided; the real CLI executor is the
// default.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Executor == nil {
		app.Executor = &runtime.CLIExecutor{}
	}

	if app.ConfigPath == "" {
		path, err := config.Path()
		if err != nil {
			logging.Debug("cannot determine config path", "error", err)
		} else {
			app.ConfigPath = path
		}
	}

	if app.StateDir == "" {
		dir, err := state.Dir()
		if err != nil {
			logging.Debug("cannot determine state directory", "error", err)
		} else {
			app.StateDir = dir
		}
	}

	return app
}

// Default is the process-wide application context.
var Default = New()

// SetDefault replaces the default app (used by tests).
func SetDefault(a *App) {
	Default = a
}
