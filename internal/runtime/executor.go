package runtime

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Result holds the outcome of a captured external invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Executor runs fully synthesized argument vectors. The synthesis engine
// never executes anything itself, so substituting an Executor is enough
// to test every flow without a container runtime present.
type Executor interface {
	// Run executes argv with captured stdout/stderr. A non-zero exit
	// code is returned in the Result, not as an error; err is reserved
	// for failures to run the process at all.
	Run(argv []string) (Result, error)

	// RunInteractive executes argv with inherited stdio and returns the
	// process exit code.
	RunInteractive(argv []string) (int, error)

	// Replace replaces the current process image with argv. On success
	// it does not return.
	Replace(argv []string) error
}

// CLIExecutor is the real Executor backed by os/exec and syscall.Exec.
type CLIExecutor struct{}

func (e *CLIExecutor) Run(argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, fmt.Errorf("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("%s failed: %w", argv[0], err)
	}

	return result, nil
}

func (e *CLIExecutor) RunInteractive(argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, fmt.Errorf("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("%s failed: %w", argv[0], err)
	}

	return 0, nil
}

func (e *CLIExecutor) Replace(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("%s not found: %w", argv[0], err)
	}

	return syscall.Exec(path, argv, os.Environ())
}

var _ Executor = (*CLIExecutor)(nil)
