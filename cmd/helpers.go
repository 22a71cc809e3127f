package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seabox-dev/seabox/internal/app"
	"github.com/seabox-dev/seabox/internal/config"
	"github.com/seabox-dev/seabox/internal/errors"
	"github.com/seabox-dev/seabox/internal/identity"
	"github.com/seabox-dev/seabox/internal/runtime"
)

// getExecutor returns the application executor.
func getExecutor() runtime.Executor {
	return app.Default.Executor
}

// stateDir returns the box record directory.
func stateDir() string {
	return app.Default.StateDir
}

// hostIDs returns the caller's effective uid and gid.
func hostIDs() (int, int) {
	return os.Getuid(), os.Getgid()
}

// boxFlags are the flags shared by create and temp.
type boxFlags struct {
	image       string
	shell       string
	dir         string
	noDir       bool
	volumes     []string
	passThrough string
	root        bool
	installSudo bool
	noPassword  bool
	unsafeSudo  bool
}

// register adds the shared box flags to a command.
func (f *boxFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.image, "image", "i", "", "Image to use for the container")
	cmd.Flags().StringVarP(&f.shell, "shell", "s", "", "Shell to run inside the container")
	cmd.Flags().StringVarP(&f.dir, "dir", "d", "", "Host directory to mount (defaults to the current directory)")
	cmd.Flags().BoolVar(&f.noDir, "no-dir", false, "Don't mount a host directory")
	cmd.Flags().StringArrayVarP(&f.volumes, "volume", "v", nil, "Extra host:container bind mount (can be repeated)")
	cmd.Flags().StringVarP(&f.passThrough, "pass-through", "p", "", "Extra arguments passed to podman run verbatim")
	cmd.Flags().BoolVarP(&f.root, "root", "r", false, "Run as root inside the container")
	cmd.Flags().BoolVar(&f.installSudo, "install-sudo", false, "Install sudo in the container without prompting")
	cmd.Flags().BoolVar(&f.noPassword, "no-password", false, "Don't prompt for a password for a created user")
	cmd.Flags().BoolVar(&f.noPassword, "no-passwd", false, "Don't prompt for a password for a created user")
	_ = cmd.Flags().MarkHidden("no-passwd")
	cmd.Flags().BoolVar(&f.unsafeSudo, "unsafe-setup-passwordless-sudo", false, "Give a created user passwordless sudo")
}

// profile maps the flags the user actually set onto a config layer.
// Unset flags stay nil so lower layers show through.
func (f *boxFlags) profile(cmd *cobra.Command) config.Profile {
	var p config.Profile
	flags := cmd.Flags()

	if flags.Changed("image") {
		p.Image = &f.image
	}
	if flags.Changed("install-sudo") {
		p.InstallSudo = &f.installSudo
	}
	if flags.Changed("no-password") || flags.Changed("no-passwd") {
		p.NoPassword = &f.noPassword
	}
	if flags.Changed("unsafe-setup-passwordless-sudo") {
		p.UnsafeSetupPasswordlessSudo = &f.unsafeSudo
	}
	return p
}

// resolveConfig merges file, environment and CLI layers into the
// effective configuration for this invocation.
func resolveConfig(cli config.Profile) (config.Config, error) {
	file, err := config.Load(app.Default.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	env, err := config.EnvOverrides()
	if err != nil {
		return config.Config{}, err
	}
	return config.Resolve(file, env, cli), nil
}

// newSynthesizer builds the argument synthesizer for a configuration.
func newSynthesizer(cfg config.Config) *runtime.Synthesizer {
	return runtime.NewSynthesizer(cfg.SudoCommand)
}

// newResolver builds an identity resolver on the app executor.
func newResolver(synth *runtime.Synthesizer) *identity.Resolver {
	return &identity.Resolver{Exec: getExecutor(), Synth: synth}
}

// containerInspect is the slice element shape of `podman container
// inspect`, reduced to the fields entering needs.
type containerInspect struct {
	ID    string `json:"Id"`
	State struct {
		Running bool `json:"Running"`
	} `json:"State"`
	Config struct {
		User string `json:"User"`
	} `json:"Config"`
	Mounts []struct {
		Source      string `json:"Source"`
		Destination string `json:"Destination"`
	} `json:"Mounts"`
}

// parseContainerInspect decodes inspect output. Malformed output is
// fatal; the enter path trusts this data.
func parseContainerInspect(out string) (*containerInspect, error) {
	var inspect []containerInspect
	if err := json.Unmarshal([]byte(out), &inspect); err != nil {
		return nil, errors.ParseError("container inspect output", err)
	}
	if len(inspect) == 0 {
		return nil, errors.ParseError("container inspect output", nil)
	}
	return &inspect[0], nil
}

// primaryMountSource returns the host source of the mount at the mount
// root, or "" when the container has none.
func (c *containerInspect) primaryMountSource() string {
	root := strings.TrimSuffix(runtime.MountRoot, "/")
	for _, m := range c.Mounts {
		if strings.TrimSuffix(m.Destination, "/") == root {
			return m.Source
		}
	}
	return ""
}

// parseMounts converts --volume flags into mount specs.
func parseMounts(volumes []string) ([]runtime.MountSpec, error) {
	var mounts []runtime.MountSpec
	for _, v := range volumes {
		spec, err := runtime.ParseMountSpec(v)
		if err != nil {
			return nil, err
		}
		mounts = append(mounts, spec)
	}
	return mounts, nil
}
