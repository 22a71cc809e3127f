package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seabox-dev/seabox/internal/config"
	"github.com/seabox-dev/seabox/internal/errors"
	"github.com/seabox-dev/seabox/internal/logging"
	"github.com/seabox-dev/seabox/internal/runtime"
	"github.com/seabox-dev/seabox/internal/script"
	"github.com/seabox-dev/seabox/internal/workspace"
)

var enterCmd = &cobra.Command{
	Use:   "enter <name>",
	Short: "Enter a box, starting it if needed",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnter,
}

var (
	enterShell string
	enterUser  string
)

func init() {
	enterCmd.Flags().StringVarP(&enterShell, "shell", "s", "", "Shell to run inside the container")
	enterCmd.Flags().StringVarP(&enterUser, "user", "u", "", "User to enter as (defaults to the container's configured user)")
	rootCmd.AddCommand(enterCmd)
}

func runEnter(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Profile{})
	if err != nil {
		return err
	}
	return enterBoxAs(newSynthesizer(cfg), args[0], enterUser, enterShell)
}

// enterBox enters a box as its configured user. Shared with pick.
func enterBox(synth *runtime.Synthesizer, name, shell string) error {
	return enterBoxAs(synth, name, "", shell)
}

// enterBoxAs resolves the container's state, starts it when stopped and
// replaces this process with the interactive exec.
func enterBoxAs(synth *runtime.Synthesizer, name, userOverride, shell string) error {
	exec := getExecutor()

	command := entryCommand(shell)

	if dryRun {
		// The container cannot be inspected without running anything, so
		// the printed enter assumes a stopped box entered at the mount
		// root by its configured user.
		user := userOverride
		if user == "" {
			user = script.NewUserName
		}
		runtime.PrintCommand(synth.InspectContainer(name))
		runtime.PrintCommand(synth.Start(name))
		runtime.PrintCommand(synth.Enter(user, name, runtime.MountRoot, command))
		fmt.Println("# container state cannot be inspected during a dry run; the enter above assumes a stopped box with a created user")
		return nil
	}

	res, err := exec.Run(synth.InspectContainer(name))
	if err != nil {
		return errors.RuntimeFailed("container inspect", 0, err)
	}
	if res.ExitCode != 0 {
		return errors.ContainerNotFound(name)
	}

	inspect, err := parseContainerInspect(res.Stdout)
	if err != nil {
		return err
	}

	user := userOverride
	if user == "" {
		user = inspect.Config.User
	}
	if user == "" {
		user = "root"
	}

	workdir := runtime.MountRoot
	if source := inspect.primaryMountSource(); source != "" {
		cwd, err := os.Getwd()
		if err == nil {
			workdir = workspace.ContainerWorkdir(workspace.RelativeToMount(source, cwd))
		}
	}

	if !inspect.State.Running {
		logging.Debug("starting stopped container", "name", name)
		code, err := exec.RunInteractive(synth.Start(name))
		if err != nil {
			return errors.RuntimeFailed("start", 0, err)
		}
		if code != 0 {
			return errors.RuntimeFailed("start", code, nil)
		}
	}

	return exec.Replace(synth.Enter(user, name, workdir, command))
}
