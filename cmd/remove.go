package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seabox-dev/seabox/internal/config"
	"github.com/seabox-dev/seabox/internal/errors"
	"github.com/seabox-dev/seabox/internal/runtime"
	"github.com/seabox-dev/seabox/internal/state"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>...",
	Aliases: []string{"rm"},
	Short:   "Remove one or more boxes",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Profile{})
	if err != nil {
		return err
	}
	synth := newSynthesizer(cfg)

	for _, name := range args {
		if err := removeBox(synth, name); err != nil {
			return err
		}
	}
	return nil
}

// removeBox kills and force-removes one box and drops its record. A
// failed kill is expected for stopped containers and ignored.
func removeBox(synth *runtime.Synthesizer, name string) error {
	exec := getExecutor()

	if dryRun {
		runtime.PrintCommand(synth.Kill(name))
		runtime.PrintCommand(synth.Remove(name))
		return nil
	}

	logInfo("Deleting container %s", name)

	if _, err := exec.RunInteractive(synth.Kill(name)); err != nil {
		return errors.RuntimeFailed("kill", 0, err)
	}

	code, err := exec.RunInteractive(synth.Remove(name))
	if err != nil {
		return errors.RuntimeFailed("container rm", 0, err)
	}
	if code != 0 {
		return errors.RuntimeFailed("container rm", code, nil)
	}

	if err := state.Delete(stateDir(), name); err != nil {
		logWarning("Could not delete box record: %v", err)
	}
	return nil
}
