package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seabox-dev/seabox/internal/errors"
	"github.com/seabox-dev/seabox/internal/identity"
	"github.com/seabox-dev/seabox/internal/logging"
	"github.com/seabox-dev/seabox/internal/runtime"
	"github.com/seabox-dev/seabox/internal/script"
)

var tempCmd = &cobra.Command{
	Use:   "temp [name]",
	Short: "Run a throwaway box that removes itself on exit",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTemp,
}

var tempFlags boxFlags

func init() {
	tempFlags.register(tempCmd)
	rootCmd.AddCommand(tempCmd)
}

func runTemp(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	cfg, err := resolveConfig(tempFlags.profile(cmd))
	if err != nil {
		return err
	}
	if cfg.Image == "" {
		return errors.NoImage()
	}

	logging.Debug("starting throwaway box", "name", name, "image", cfg.Image)

	exec := getExecutor()
	synth := newSynthesizer(cfg)

	decision := identity.Decision{}
	if !tempFlags.root {
		decision, err = newResolver(synth).Determine(cfg.Image, dryRun)
		if err != nil {
			return err
		}
	}

	opts, err := buildCreateOptions(name, cfg, &tempFlags, decision)
	if err != nil {
		return err
	}
	opts.Temp = true

	// A throwaway box starts as root and the bootstrap script switches
	// to the resolved user itself; there is no separate setup step.
	var entry []string
	if tempFlags.root {
		entry = entryCommand(tempFlags.shell)
	} else {
		rendered := script.Render(script.Params{
			CreateUser:       decision.CreateUser,
			UID:              decision.UID,
			PasswordlessSudo: cfg.UnsafeSetupPasswordlessSudo,
			NoPassword:       cfg.NoPassword,
			InstallSudo:      cfg.InstallSudo,
			Shell:            tempFlags.shell,
			Verbose:          logging.Verbose,
		})
		entry = script.ShellCommand(rendered)
	}

	argv := append(synth.Create(opts), entry...)

	if dryRun {
		runtime.PrintCommand(argv)
		return nil
	}

	code, err := exec.RunInteractive(argv)
	if err != nil {
		return errors.RuntimeFailed("run", 0, err)
	}
	if code != 0 {
		return errors.RuntimeFailed("run", code, nil)
	}
	return nil
}
