// Package script parameterizes the fixed in-container bootstrap assets.
//
// The bootstrap script itself is an opaque asset: this package only
// owns the substitution contract, replacing placeholder tokens with
// values derived from the effective configuration and the identity
// decision. Boolean flags become presence markers ("1" or ""), the
// tri-state sudo installation flag becomes one of install/no_install/
// prompt, and an empty shell means auto-detect inside the container.
package script

import (
	_ "embed"
	"strconv"
	"strings"
)

//go:embed init.sh
var initScript string

// NewUserName is the account the bootstrap script creates when the
// image has no usable user.
const NewUserName = "user"

// Params are the substitution inputs for the bootstrap script.
type Params struct {
	CreateUser       bool
	Username         string
	UID              int
	PasswordlessSudo bool
	NoPassword       bool

	// InstallSudo is tri-state: nil renders as "prompt".
	InstallSudo *bool

	// Shell overrides the in-container shell; empty means auto-detect.
	Shell string

	Verbose bool
}

func presence(b bool) string {
	if b {
		return "1"
	}
	return ""
}

func sudoInstallMode(installSudo *bool) string {
	switch {
	case installSudo == nil:
		return "prompt"
	case *installSudo:
		return "install"
	default:
		return "no_install"
	}
}

// Render substitutes the placeholder tokens and returns the script text.
func Render(p Params) string {
	username := p.Username
	if username == "" {
		username = NewUserName
	}

	return strings.NewReplacer(
		"INSERT_CREATE_USER", presence(p.CreateUser),
		"INSERT_NEW_USERNAME", username,
		"INSERT_CONTAINER_ID", strconv.Itoa(p.UID),
		"INSERT_SUDO_INSTALL", sudoInstallMode(p.InstallSudo),
		"INSERT_PASSWORDLESS_SUDO", presence(p.PasswordlessSudo),
		"INSERT_CREATE_PASSWORD", presence(p.NoPassword),
		"INSERT_VERBOSE", presence(p.Verbose),
		"INSERT_SHELL", p.Shell,
	).Replace(initScript)
}

// ShellCommand wraps rendered script text as a shell invocation.
func ShellCommand(rendered string) []string {
	return []string{"/bin/sh", "-c", rendered}
}

// defaultShellProbe resolves the entered user's login shell from the
// container's passwd, falling back to bash then sh.
const defaultShellProbe = `USER=$(id -un)
SHELL_PATH=$(awk -F: -v u="$USER" '$1==u {print $7}' /etc/passwd)

if [ -z "$SHELL_PATH" ]; then
    if command -v /bin/bash >/dev/null 2>&1; then
        SHELL_PATH="/bin/bash"
    else
        SHELL_PATH="/bin/sh"
    fi
fi

export SHELL="$SHELL_PATH"
exec "$SHELL_PATH"`

// DefaultShellCommand returns the fixed entry command used when no
// shell was requested explicitly.
func DefaultShellCommand() []string {
	return []string{"/bin/sh", "-c", defaultShellProbe}
}
