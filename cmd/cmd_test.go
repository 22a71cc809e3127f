package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/seabox-dev/seabox/internal/config"
	"github.com/seabox-dev/seabox/internal/errors"
	"github.com/seabox-dev/seabox/internal/identity"
	"github.com/seabox-dev/seabox/internal/runtime"
	"github.com/seabox-dev/seabox/internal/state"
	"github.com/seabox-dev/seabox/internal/testutil"
)

func executeCommand(args ...string) (string, string, error) {
	// Reset flag values before each test
	createFlags = boxFlags{}
	tempFlags = boxFlags{}
	enterShell = ""
	enterUser = ""
	listLocal = false
	verbose = false
	jsonOutput = false
	dryRun = false

	// Cobra's --help flag sticks across executions; clear it so a help
	// invocation doesn't short-circuit the commands of later tests.
	var resetHelp func(c *cobra.Command)
	resetHelp = func(c *cobra.Command) {
		if f := c.Flags().Lookup("help"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
		for _, sub := range c.Commands() {
			resetHelp(sub)
		}
	}
	resetHelp(rootCmd)

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	// Reset args for next test
	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "seabox") {
		t.Error("Help output should contain 'seabox'")
	}
	if !strings.Contains(stdout, "container") {
		t.Error("Help output should mention containers")
	}
}

func TestGlobalFlags(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help failed: %v", err)
	}

	for _, flag := range []string{"--verbose", "--json", "--dry-run"} {
		if !strings.Contains(stdout, flag) {
			t.Errorf("Help should document %s", flag)
		}
	}
}

func TestCreateCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("create", "--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	for _, flag := range []string{
		"--image", "--shell", "--dir", "--no-dir", "--volume",
		"--pass-through", "--root", "--install-sudo", "--no-password",
		"--unsafe-setup-passwordless-sudo",
	} {
		if !strings.Contains(stdout, flag) {
			t.Errorf("Create help should mention %s", flag)
		}
	}
}

func TestTempCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("temp", "--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "throwaway") {
		t.Error("Temp help should describe its purpose")
	}
}

// boxFlagsCommand builds a detached command carrying the shared box
// flags, so flag parsing state doesn't leak between tests.
func boxFlagsCommand(args ...string) (*cobra.Command, *boxFlags, error) {
	var f boxFlags
	cmd := &cobra.Command{Use: "t", RunE: func(*cobra.Command, []string) error { return nil }}
	f.register(cmd)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cmd, &f, err
}

func TestBoxFlags_Profile(t *testing.T) {
	t.Run("unset flags stay nil", func(t *testing.T) {
		cmd, f, err := boxFlagsCommand()
		if err != nil {
			t.Fatal(err)
		}

		p := f.profile(cmd)
		if p.Image != nil || p.InstallSudo != nil || p.NoPassword != nil || p.UnsafeSetupPasswordlessSudo != nil {
			t.Errorf("empty flag set should produce an empty profile, got %+v", p)
		}
	})

	t.Run("set flags populate the layer", func(t *testing.T) {
		cmd, f, err := boxFlagsCommand(
			"--image", "fedora",
			"--install-sudo=false",
			"--no-password",
			"--unsafe-setup-passwordless-sudo",
		)
		if err != nil {
			t.Fatal(err)
		}

		p := f.profile(cmd)
		if p.Image == nil || *p.Image != "fedora" {
			t.Error("image flag should populate the profile")
		}
		if p.InstallSudo == nil || *p.InstallSudo != false {
			t.Error("explicit --install-sudo=false should be an override, not an unset")
		}
		if p.NoPassword == nil || !*p.NoPassword {
			t.Error("no-password flag should populate the profile")
		}
		if p.UnsafeSetupPasswordlessSudo == nil || !*p.UnsafeSetupPasswordlessSudo {
			t.Error("unsafe-setup-passwordless-sudo flag should populate the profile")
		}
	})

	t.Run("no-passwd alias", func(t *testing.T) {
		cmd, f, err := boxFlagsCommand("--no-passwd")
		if err != nil {
			t.Fatal(err)
		}

		p := f.profile(cmd)
		if p.NoPassword == nil || !*p.NoPassword {
			t.Error("--no-passwd should behave like --no-password")
		}
	})
}

func TestBuildCreateOptions(t *testing.T) {
	cfg := config.Config{Image: "debian"}

	t.Run("volumes and pass-through", func(t *testing.T) {
		f := &boxFlags{
			noDir:       true,
			volumes:     []string{"/host/a:/ctr/a"},
			passThrough: "--pidfile '/tmp/pid file'",
		}

		opts, err := buildCreateOptions("dev", cfg, f, identityFor(1042))
		if err != nil {
			t.Fatal(err)
		}

		if !opts.NoDefaultMount {
			t.Error("no-dir should omit the default mount")
		}
		if len(opts.Mounts) != 1 || opts.Mounts[0].Source != "/host/a" || opts.Mounts[0].Dest != "/ctr/a" {
			t.Errorf("Mounts = %+v", opts.Mounts)
		}
		want := []string{"--pidfile", "/tmp/pid file"}
		if len(opts.PassThrough) != 2 || opts.PassThrough[0] != want[0] || opts.PassThrough[1] != want[1] {
			t.Errorf("PassThrough = %v, want %v", opts.PassThrough, want)
		}
		if opts.UID != 1042 || opts.GID != 1042 {
			t.Error("identity decision should flow into the options")
		}
	})

	t.Run("malformed volume", func(t *testing.T) {
		f := &boxFlags{noDir: true, volumes: []string{"/only-one-part"}}
		if _, err := buildCreateOptions("dev", cfg, f, identityFor(1000)); err == nil {
			t.Error("malformed volume spec should be rejected")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		f := &boxFlags{dir: "/does/not/exist/anywhere"}
		if _, err := buildCreateOptions("dev", cfg, f, identityFor(1000)); err == nil {
			t.Error("nonexistent --dir should be rejected")
		}
	})
}

func TestEnterBox_NotFound(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	env.Executor.SetResult("container inspect", runtime.Result{ExitCode: 125})

	synth := runtime.NewSynthesizer("sudo")
	err := enterBox(synth, "ghost", "")
	if err == nil {
		t.Fatal("entering a missing box should fail")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEnterBox_ReplacesProcess(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	inspect := fmt.Sprintf(`[{
		"Id": "abc123",
		"State": {"Running": true},
		"Config": {"User": "1042:1042"},
		"Mounts": [{"Source": %q, "Destination": "/mount"}]
	}]`, cwd)
	env.Executor.SetResult("container inspect", runtime.Result{ExitCode: 0, Stdout: inspect})

	synth := runtime.NewSynthesizer("sudo")
	if err := enterBox(synth, "dev", "/bin/zsh"); err != nil {
		t.Fatalf("enterBox failed: %v", err)
	}

	if len(env.Executor.CallsFor("start")) != 0 {
		t.Error("a running container should not be started")
	}

	argv, err := env.Executor.LastReplaced()
	if err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(argv, " ")
	if !strings.Contains(joined, "--user 1042:1042") {
		t.Errorf("enter should use the container's configured user: %v", argv)
	}
	if !strings.Contains(joined, "-w /mount/") {
		t.Errorf("enter from the mount source should land at the mount root: %v", argv)
	}
	if argv[len(argv)-1] != "/bin/zsh" {
		t.Errorf("requested shell should be the command, got %v", argv)
	}
}

func TestEnterBox_StartsStopped(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	inspect := `[{
		"Id": "abc123",
		"State": {"Running": false},
		"Config": {"User": "1000:1000"},
		"Mounts": []
	}]`
	env.Executor.SetResult("container inspect", runtime.Result{ExitCode: 0, Stdout: inspect})

	synth := runtime.NewSynthesizer("sudo")
	if err := enterBox(synth, "dev", ""); err != nil {
		t.Fatalf("enterBox failed: %v", err)
	}

	if len(env.Executor.CallsFor("start")) != 1 {
		t.Error("a stopped container should be started before entering")
	}
	if _, err := env.Executor.LastReplaced(); err != nil {
		t.Error("enter should still replace the process after starting")
	}
}

func TestRemoveBox(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	env.AddRecord(state.NewRecord("dev", "debian", "abc123", false))

	synth := runtime.NewSynthesizer("sudo")
	if err := removeBox(synth, "dev"); err != nil {
		t.Fatalf("removeBox failed: %v", err)
	}

	if len(env.Executor.CallsFor("kill")) != 1 {
		t.Error("remove should kill the container first")
	}
	if len(env.Executor.CallsFor("container rm")) != 1 {
		t.Error("remove should force-remove the container")
	}
	if env.GetRecord("dev") != nil {
		t.Error("remove should drop the box record")
	}
}

func TestRemoveBox_RuntimeFailure(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	env.Executor.SetResult("container rm", runtime.Result{ExitCode: 2})

	synth := runtime.NewSynthesizer("sudo")
	err := removeBox(synth, "dev")
	if err == nil {
		t.Fatal("a failed removal should be an error")
	}
	if errors.GetExitCode(err) != 2 {
		t.Errorf("exit code = %d, want the runtime's 2", errors.GetExitCode(err))
	}
}

func identityFor(uid int) identity.Decision {
	return identity.Decision{UID: uid, GID: uid}
}

func TestCreate_NameCollision(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	// An inspect that succeeds means the name is taken.
	env.Executor.SetResult("container inspect", runtime.Result{ExitCode: 0})

	_, _, err := executeCommand("create", "dev", "--image", "debian", "--no-dir")
	if err == nil {
		t.Fatal("create on an existing name should fail")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error: %v", err)
	}
	if len(env.Executor.CallsFor("run")) != 0 {
		t.Error("no container should be created after a collision")
	}
}

func TestCreate_HappyPath(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	env.Executor.SetResult("container inspect", runtime.Result{ExitCode: 1})
	env.Executor.SetResult("image inspect", runtime.Result{
		ExitCode: 0,
		Stdout:   `[{"Labels":{"SEABOX_USER_ID":"1042"}}]`,
	})

	_, _, err := executeCommand("create", "dev", "--image", "debian", "--no-dir")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	runs := env.Executor.CallsFor("run")
	if len(runs) != 1 {
		t.Fatalf("expected exactly one run invocation, got %d", len(runs))
	}
	joined := strings.Join(runs[0], " ")
	if runs[0][len(runs[0])-1] != "/bin/sh" {
		t.Errorf("detached create should idle on /bin/sh, got %q", runs[0][len(runs[0])-1])
	}
	if !strings.Contains(joined, "-u 1042:1042") {
		t.Errorf("labeled identity should flow into the run: %v", runs[0])
	}
	if !strings.Contains(joined, " -d ") {
		t.Errorf("create should detach: %v", runs[0])
	}

	execs := env.Executor.CallsFor("exec")
	if len(execs) != 1 {
		t.Fatalf("create should end with one bootstrap exec, got %d", len(execs))
	}
	setup := strings.Join(execs[0], " ")
	if !strings.Contains(setup, "--user root") {
		t.Errorf("bootstrap should run as root: %v", execs[0])
	}
	if !strings.Contains(setup, "SUDO_INSTALL=") {
		t.Error("bootstrap exec should carry the rendered init script")
	}

	rec := env.GetRecord("dev")
	if rec == nil {
		t.Fatal("create should save a box record")
	}
	if rec.Image != "debian" || rec.Rootful {
		t.Errorf("record = %+v", rec)
	}
}

func TestCreate_RootModeEnters(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	env.Executor.SetResult("container inspect", runtime.Result{ExitCode: 1})

	_, _, err := executeCommand("create", "rootbox", "--image", "debian", "--root", "--no-dir")
	if err != nil {
		t.Fatalf("root create failed: %v", err)
	}

	if len(env.Executor.CallsFor("image inspect")) != 0 {
		t.Error("root mode should skip identity resolution")
	}

	execs := env.Executor.CallsFor("exec")
	if len(execs) != 1 {
		t.Fatalf("root create should still end with an enter, got %d execs", len(execs))
	}
	joined := strings.Join(execs[0], " ")
	if !strings.Contains(joined, "--user root") {
		t.Errorf("root create should enter as root: %v", execs[0])
	}
	if strings.Contains(joined, "SUDO_INSTALL=") {
		t.Errorf("root create needs no bootstrap script: %v", execs[0])
	}

	rec := env.GetRecord("rootbox")
	if rec == nil || !rec.Rootful {
		t.Errorf("record should be rootful, got %+v", rec)
	}
}

func TestConfigShow(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	env.WriteConfig("image = \"debian\"\n")

	stdout, _, err := executeCommand("config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	if !strings.Contains(stdout, "# Viewing '"+env.ConfigPath+"'") {
		t.Errorf("output should lead with the viewed path, got %q", stdout)
	}
	if !strings.Contains(stdout, `image = "debian"`) {
		t.Errorf("output should include the file contents, got %q", stdout)
	}
}
