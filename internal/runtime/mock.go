package runtime

import (
	"fmt"
	"strings"
	"sync"
)

// MockExecutor is an Executor for tests. It records every argument
// vector it receives and serves canned results keyed by the runtime
// operation (the tokens following the runtime binary, e.g.
// "image inspect" or "run").
type MockExecutor struct {
	mu sync.Mutex

	// Results maps operations to canned results.
	Results map[string]Result

	// RunErrs maps operations to injected process-launch failures.
	RunErrs map[string]error

	// Calls records every argv passed to Run or RunInteractive.
	Calls [][]string

	// Replaced records the argv handed to Replace; the executor treats
	// the transition as a handoff and returns nil.
	Replaced [][]string

	// ReplaceErr, when set, is returned by Replace.
	ReplaceErr error
}

// NewMockExecutor creates an empty mock.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Results: make(map[string]Result),
		RunErrs: make(map[string]error),
	}
}

// Op extracts the operation key from an argument vector: the one or two
// tokens following the runtime binary.
func Op(argv []string) string {
	for i, tok := range argv {
		if tok != Binary {
			continue
		}
		rest := argv[i+1:]
		if len(rest) == 0 {
			return ""
		}
		switch rest[0] {
		case "image", "container":
			if len(rest) > 1 {
				return rest[0] + " " + rest[1]
			}
		}
		return rest[0]
	}
	return strings.Join(argv, " ")
}

// SetResult sets the canned result for an operation.
func (m *MockExecutor) SetResult(op string, res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results[op] = res
}

// SetRunErr injects a launch failure for an operation.
func (m *MockExecutor) SetRunErr(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunErrs[op] = err
}

// CallsFor returns the recorded argvs whose operation matches op.
func (m *MockExecutor) CallsFor(op string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [][]string
	for _, argv := range m.Calls {
		if Op(argv) == op {
			out = append(out, argv)
		}
	}
	return out
}

func (m *MockExecutor) lookup(argv []string) (Result, error) {
	op := Op(argv)
	if err, ok := m.RunErrs[op]; ok {
		return Result{}, err
	}
	if res, ok := m.Results[op]; ok {
		return res, nil
	}
	return Result{}, nil
}

func (m *MockExecutor) Run(argv []string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, argv)
	return m.lookup(argv)
}

func (m *MockExecutor) RunInteractive(argv []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, argv)
	res, err := m.lookup(argv)
	return res.ExitCode, err
}

func (m *MockExecutor) Replace(argv []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replaced = append(m.Replaced, argv)
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	return nil
}

// LastReplaced returns the most recent Replace argv, or an error when
// none was recorded.
func (m *MockExecutor) LastReplaced() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Replaced) == 0 {
		return nil, fmt.Errorf("no process replacement recorded")
	}
	return m.Replaced[len(m.Replaced)-1], nil
}

var _ Executor = (*MockExecutor)(nil)
