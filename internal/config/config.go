package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/seabox-dev/seabox/internal/errors"
)

const (
	// AppName is used for the config directory, container labels and
	// hostname prefixes.
	AppName = "seabox"

	// DefaultSudoCommand prefixes every privileged runtime invocation.
	DefaultSudoCommand = "sudo"

	// EnvPrefix selects environment-variable overrides.
	EnvPrefix = "SEABOX_"
)

// Profile is one sparse configuration layer. Every field is optional;
// nil means "inherit from the next lower layer". It is used for the
// global section of the config file, for each per-image section, for the
// environment layer and for the CLI flag layer.
type Profile struct {
	Image                       *string `toml:"image"`
	SudoCommand                 *string `toml:"sudo_command"`
	InstallSudo                 *bool   `toml:"install_sudo"`
	NoPassword                  *bool   `toml:"no_password"`
	UnsafeSetupPasswordlessSudo *bool   `toml:"unsafe_setup_passwordless_sudo"`
}

// File is the parsed on-disk configuration: a flat global profile plus
// per-image override sections keyed by image name. It is read once at
// startup and never mutated.
type File struct {
	Base   Profile
	Images map[string]Profile
}

// Config is the effective configuration for one invocation. After
// Resolve it is always fully populated; InstallSudo keeps its tri-state
// because "unset" means "prompt inside the container".
type Config struct {
	Image                       string
	SudoCommand                 string
	InstallSudo                 *bool
	NoPassword                  bool
	UnsafeSetupPasswordlessSudo bool
}

// Defaults returns the built-in bottom layer.
func Defaults() Config {
	return Config{
		SudoCommand: DefaultSudoCommand,
	}
}

// apply overlays a sparse profile onto a config. Only populated fields
// override; the result is a new value.
func apply(cfg Config, p Profile) Config {
	if p.Image != nil {
		cfg.Image = *p.Image
	}
	if p.SudoCommand != nil {
		cfg.SudoCommand = *p.SudoCommand
	}
	if p.InstallSudo != nil {
		v := *p.InstallSudo
		cfg.InstallSudo = &v
	}
	if p.NoPassword != nil {
		cfg.NoPassword = *p.NoPassword
	}
	if p.UnsafeSetupPasswordlessSudo != nil {
		cfg.UnsafeSetupPasswordlessSudo = *p.UnsafeSetupPasswordlessSudo
	}
	return cfg
}

// Resolve merges the configuration layers into one effective Config.
// Precedence, highest wins: CLI > environment > matched per-image
// profile > global profile > built-in defaults.
//
// Resolution runs in two passes because the image name is itself a
// config value subject to the same precedence: the first pass ignores
// per-image profiles and only establishes the provisional image name;
// if that name has a profile in the file, the second pass re-merges
// with the profile slotted in below environment and CLI.
func Resolve(file *File, env, cli Profile) Config {
	first := apply(apply(apply(Defaults(), file.Base), env), cli)

	if first.Image != "" {
		if profile, ok := file.Images[first.Image]; ok {
			return apply(apply(apply(apply(Defaults(), file.Base), profile), env), cli)
		}
	}

	return first
}

// EnvOverrides reads the SEABOX_-prefixed environment variables into a
// profile. A boolean variable that is set but unparsable is a fatal
// config error rather than a silent default.
func EnvOverrides() (Profile, error) {
	return envOverrides(os.Getenv)
}

// envOverrides is the testable core of EnvOverrides.
func envOverrides(getenv func(string) string) (Profile, error) {
	var p Profile

	if v := getenv(EnvPrefix + "IMAGE"); v != "" {
		p.Image = &v
	}
	if v := getenv(EnvPrefix + "SUDO_COMMAND"); v != "" {
		p.SudoCommand = &v
	}

	boolVars := []struct {
		name string
		dst  **bool
	}{
		{"INSTALL_SUDO", &p.InstallSudo},
		{"NO_PASSWORD", &p.NoPassword},
		{"UNSAFE_SETUP_PASSWORDLESS_SUDO", &p.UnsafeSetupPasswordlessSudo},
	}
	for _, bv := range boolVars {
		v := getenv(EnvPrefix + bv.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return Profile{}, errors.ConfigError("invalid boolean in "+EnvPrefix+bv.name, err)
		}
		*bv.dst = &parsed
	}

	return p, nil
}

// Path returns the config file location under the platform config
// directory, e.g. ~/.config/seabox/seabox.toml on Linux.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.ConfigError("cannot determine config directory", err)
	}
	return filepath.Join(dir, AppName, AppName+".toml"), nil
}

// Load reads and parses the config file at path. A missing file yields
// an empty File; a malformed file is a fatal config error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Images: map[string]Profile{}}, nil
		}
		return nil, errors.ConfigError("cannot read config file "+path, err)
	}
	return Parse(string(data))
}

// Parse decodes a config file. Top-level keys form the global profile;
// every table is a per-image override keyed by the image name (quoted
// in TOML when it contains dots or slashes). Duplicate image tables are
// rejected by the decoder, so there is no last-one-wins ambiguity.
func Parse(data string) (*File, error) {
	var base Profile
	md, err := toml.Decode(data, &base)
	if err != nil {
		return nil, errors.ConfigError("cannot parse config file", err)
	}

	var raw map[string]toml.Primitive
	md, err = toml.Decode(data, &raw)
	if err != nil {
		return nil, errors.ConfigError("cannot parse config file", err)
	}

	file := &File{
		Base:   base,
		Images: map[string]Profile{},
	}

	for key, prim := range raw {
		if isBaseKey(key) {
			continue
		}
		var p Profile
		if err := md.PrimitiveDecode(prim, &p); err != nil {
			return nil, errors.ConfigError("invalid profile for image "+key, err)
		}
		file.Images[key] = p
	}

	return file, nil
}

func isBaseKey(key string) bool {
	switch key {
	case "image", "sudo_command", "install_sudo", "no_password", "unsafe_setup_passwordless_sudo":
		return true
	}
	return false
}
