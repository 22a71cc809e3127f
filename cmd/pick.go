package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seabox-dev/seabox/internal/config"
	"github.com/seabox-dev/seabox/internal/errors"
	"github.com/seabox-dev/seabox/internal/state"
	"github.com/seabox-dev/seabox/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick a box to enter or remove",
	Args:  cobra.NoArgs,
	RunE:  runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	records, err := state.List(stateDir())
	if err != nil {
		return err
	}

	if len(records) == 0 {
		logInfo("No boxes recorded")
		logInfo("Create one with: seabox create <name>")
		return nil
	}

	result, err := tui.RunPicker(records)
	if err != nil {
		return errors.Wrap(errors.ExitFailure, "box picker failed", err)
	}

	cfg, cfgErr := resolveConfig(config.Profile{})
	if cfgErr != nil {
		return cfgErr
	}
	synth := newSynthesizer(cfg)

	switch result.Action {
	case tui.ActionEnter:
		return enterBox(synth, result.Box.Name, "")
	case tui.ActionRemove:
		return removeBox(synth, result.Box.Name)
	}
	return nil
}
