package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seabox-dev/seabox/internal/config"
	"github.com/seabox-dev/seabox/internal/errors"
	"github.com/seabox-dev/seabox/internal/identity"
	"github.com/seabox-dev/seabox/internal/logging"
	"github.com/seabox-dev/seabox/internal/runtime"
	"github.com/seabox-dev/seabox/internal/script"
	"github.com/seabox-dev/seabox/internal/state"
	"github.com/seabox-dev/seabox/internal/workspace"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a persistent box",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreate,
}

var createFlags boxFlags

func init() {
	createFlags.register(createCmd)
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := resolveConfig(createFlags.profile(cmd))
	if err != nil {
		return err
	}
	if cfg.Image == "" {
		return errors.NoImage()
	}

	logging.Debug("creating box", "name", name, "image", cfg.Image)

	exec := getExecutor()
	synth := newSynthesizer(cfg)

	if dryRun {
		runtime.PrintCommand(synth.InspectContainer(name))
	} else {
		res, err := exec.Run(synth.InspectContainer(name))
		if err != nil {
			return errors.RuntimeFailed("container inspect", 0, err)
		}
		if res.ExitCode == 0 {
			return errors.ContainerExists(name)
		}
	}

	decision := identity.Decision{}
	if !createFlags.root {
		decision, err = newResolver(synth).Determine(cfg.Image, dryRun)
		if err != nil {
			return err
		}
	}

	opts, err := buildCreateOptions(name, cfg, &createFlags, decision)
	if err != nil {
		return err
	}

	// The detached container idles on a plain /bin/sh; the shell the
	// user actually lands in comes from the enter that follows.
	createArgv := append(synth.Create(opts), "/bin/sh")

	setup := setupArgv(synth, name, cfg, &createFlags, decision)

	if dryRun {
		runtime.PrintCommand(createArgv)
		runtime.PrintCommand(setup)
		return nil
	}

	logInfo("Creating container %s from %s", name, cfg.Image)

	code, err := exec.RunInteractive(createArgv)
	if err != nil {
		return errors.RuntimeFailed("run", 0, err)
	}
	if code != 0 {
		return errors.RuntimeFailed("run", code, nil)
	}

	saveRecord(exec, synth, name, cfg.Image, createFlags.root)

	logSuccess("Container %s created", name)

	code, err = exec.RunInteractive(setup)
	if err != nil {
		return errors.RuntimeFailed("exec", 0, err)
	}
	if code != 0 {
		return errors.RuntimeFailed("exec", code, nil)
	}

	return nil
}

// buildCreateOptions assembles the runtime options shared by create and
// temp from the effective config, the flags and the identity decision.
func buildCreateOptions(name string, cfg config.Config, f *boxFlags, decision identity.Decision) (runtime.CreateOptions, error) {
	hostUID, hostGID := hostIDs()

	opts := runtime.CreateOptions{
		Name:    name,
		Image:   cfg.Image,
		Root:    f.root,
		UID:     decision.UID,
		GID:     decision.GID,
		HostUID: hostUID,
		HostGID: hostGID,
	}

	if f.noDir {
		opts.NoDefaultMount = true
	} else {
		dir, err := workspace.ResolveDir(f.dir)
		if err != nil {
			return runtime.CreateOptions{}, err
		}
		opts.Dir = dir
	}

	mounts, err := parseMounts(f.volumes)
	if err != nil {
		return runtime.CreateOptions{}, err
	}
	opts.Mounts = mounts

	passThrough, err := runtime.SplitPassThrough(f.passThrough)
	if err != nil {
		return runtime.CreateOptions{}, errors.ConfigError("invalid pass-through arguments", err)
	}
	opts.PassThrough = passThrough

	return opts, nil
}

// entryCommand returns the interactive command for an enter: the
// requested shell, or the in-container shell probe.
func entryCommand(shell string) []string {
	if shell != "" {
		return []string{shell}
	}
	return script.DefaultShellCommand()
}

// setupArgv returns the initial enter issued right after creation: the
// rendered bootstrap script run as root, or a plain root shell for root
// boxes which need no bootstrap.
func setupArgv(synth *runtime.Synthesizer, name string, cfg config.Config, f *boxFlags, decision identity.Decision) []string {
	if f.root {
		return synth.Enter("root", name, runtime.MountRoot, entryCommand(f.shell))
	}

	rendered := script.Render(script.Params{
		CreateUser:       decision.CreateUser,
		UID:              decision.UID,
		PasswordlessSudo: cfg.UnsafeSetupPasswordlessSudo,
		NoPassword:       cfg.NoPassword,
		InstallSudo:      cfg.InstallSudo,
		Shell:            f.shell,
		Verbose:          logging.Verbose,
	})

	return synth.Enter("root", name, runtime.MountRoot, script.ShellCommand(rendered))
}

// saveRecord writes the box record. Failures are warnings: the runtime
// listing stays authoritative.
func saveRecord(exec runtime.Executor, synth *runtime.Synthesizer, name, image string, rootful bool) {
	containerID := ""
	if res, err := exec.Run(synth.InspectContainer(name)); err == nil && res.ExitCode == 0 {
		if inspect, err := parseContainerInspect(res.Stdout); err == nil {
			containerID = inspect.ID
		}
	}

	rec := state.NewRecord(name, image, containerID, rootful)
	if err := state.Save(stateDir(), rec); err != nil {
		logWarning("Could not save box record: %v", err)
	}
}
