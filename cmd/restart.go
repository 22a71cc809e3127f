package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seabox-dev/seabox/internal/config"
	"github.com/seabox-dev/seabox/internal/errors"
	"github.com/seabox-dev/seabox/internal/runtime"
)

var restartCmd = &cobra.Command{
	Use:   "restart <name>...",
	Short: "Restart one or more boxes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRestart,
}

func init() {
	rootCmd.AddCommand(restartCmd)
}

func runRestart(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Profile{})
	if err != nil {
		return err
	}
	synth := newSynthesizer(cfg)

	for _, name := range args {
		if err := restartBox(synth, name); err != nil {
			return err
		}
	}
	return nil
}

func restartBox(synth *runtime.Synthesizer, name string) error {
	exec := getExecutor()

	if dryRun {
		runtime.PrintCommand(synth.Kill(name))
		runtime.PrintCommand(synth.Start(name))
		return nil
	}

	// Kill fails for stopped containers; a restart of those is a start.
	if _, err := exec.RunInteractive(synth.Kill(name)); err != nil {
		return errors.RuntimeFailed("kill", 0, err)
	}

	code, err := exec.RunInteractive(synth.Start(name))
	if err != nil {
		return errors.RuntimeFailed("start", 0, err)
	}
	if code != 0 {
		return errors.RuntimeFailed("start", code, nil)
	}

	logSuccess("Container %s restarted", name)
	return nil
}
