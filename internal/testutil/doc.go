// Package testutil provides the shared command-test environment.
//
// NewTestEnv builds a sandboxed app context: a temp config path, a temp
// box record directory and a mock executor, installed as the process
// default for the duration of the test.
//
//	func TestCreate(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    defer env.Cleanup()
//
//	    env.WriteConfig(`image = "ubuntu"`)
//	    env.Executor.SetResult("inspect", runtime.Result{ExitCode: 1})
//
//	    // run the command under test, then assert on env.Executor.Calls
//	}
package testutil
