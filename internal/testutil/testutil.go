// Package testutil provides test utilities for command tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seabox-dev/seabox/internal/app"
	"github.com/seabox-dev/seabox/internal/runtime"
	"github.com/seabox-dev/seabox/internal/state"
)

// TestEnv holds the test environment
type TestEnv struct {
	T          *testing.T
	TmpDir     string
	ConfigPath string
	StateDir   string
	Executor   *runtime.MockExecutor
	App        *app.App
	cleanup    func()
}

// NewTestEnv creates a new test environment with a mock executor and
// installs it as the default app.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config", "seabox.toml")
	stateDir := filepath.Join(tmpDir, "boxes")

	for _, dir := range []string{filepath.Dir(configPath), stateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	mock := runtime.NewMockExecutor()

	testApp := app.New(
		app.WithConfigPath(configPath),
		app.WithStateDir(stateDir),
		app.WithExecutor(mock),
	)

	originalDefault := app.Default
	app.SetDefault(testApp)

	return &TestEnv{
		T:          t,
		TmpDir:     tmpDir,
		ConfigPath: configPath,
		StateDir:   stateDir,
		Executor:   mock,
		App:        testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// WriteConfig writes TOML config contents to the test config path
func (e *TestEnv) WriteConfig(contents string) {
	e.T.Helper()

	if err := os.WriteFile(e.ConfigPath, []byte(contents), 0644); err != nil {
		e.T.Fatalf("Failed to write config: %v", err)
	}
}

// AddRecord saves a box record into the test state directory
func (e *TestEnv) AddRecord(record *state.Record) {
	e.T.Helper()

	if err := state.Save(e.StateDir, record); err != nil {
		e.T.Fatalf("Failed to save box record: %v", err)
	}
}

// GetRecord loads a box record, returning nil when absent
func (e *TestEnv) GetRecord(name string) *state.Record {
	e.T.Helper()

	record, err := state.Load(e.StateDir, name)
	if err != nil {
		return nil
	}
	return record
}
