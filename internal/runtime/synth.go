package runtime

import (
	"fmt"

	"github.com/seabox-dev/seabox/internal/config"
)

const (
	// Binary is the container runtime CLI this tool orchestrates.
	Binary = "podman"

	// LabelKey tags every created container so list/stop/restart only
	// ever see containers this tool created.
	LabelKey = config.AppName
)

// Synthesizer builds the exact argument vectors handed to the runtime.
// It performs no I/O and never executes anything; execution belongs to
// an Executor.
type Synthesizer struct {
	// SudoCommand prefixes every invocation (privilege escalation).
	SudoCommand string
}

// NewSynthesizer creates a synthesizer using the given privilege
// escalation command.
func NewSynthesizer(sudoCommand string) *Synthesizer {
	return &Synthesizer{SudoCommand: sudoCommand}
}

// CreateOptions describes one container creation (persistent or
// ephemeral). All paths are already resolved and validated.
type CreateOptions struct {
	Name  string
	Image string

	// Root runs the container as root id 0:0 with a wide identity map.
	Root bool

	// Temp makes the container remove itself on exit instead of
	// detaching.
	Temp bool

	// Dir is the resolved host directory for the primary mount.
	Dir string

	// NoDefaultMount omits the primary mount entirely.
	NoDefaultMount bool

	// Mounts are additional user-supplied bind mounts.
	Mounts []MountSpec

	// PassThrough is spliced verbatim into the argument vector.
	PassThrough []string

	// UID and GID are the container identity from resolution.
	UID int
	GID int

	// HostUID and HostGID are the caller's effective ids.
	HostUID int
	HostGID int
}

// Hostname returns the container hostname for a box name. Anonymous
// ephemeral boxes get the bare application name.
func Hostname(name string) string {
	if name == "" {
		return config.AppName
	}
	return config.AppName + "-" + name
}

// IDMap returns the idmap expression for these options.
func (o CreateOptions) IDMap() string {
	if o.Root {
		return RootIDMap()
	}
	return UserIDMap(o.HostUID, o.HostGID, o.UID, o.GID)
}

// User returns the -u value. Ephemeral containers always start as root
// and defer the identity switch to the entry script.
func (o CreateOptions) User() string {
	if o.Temp {
		return "0:0"
	}
	return fmt.Sprintf("%d:%d", o.UID, o.GID)
}

func (s *Synthesizer) base(args ...string) []string {
	return append([]string{s.SudoCommand, Binary}, args...)
}

// Create builds the run invocation for create and temp. The entry
// command (shell or init script) is appended by the caller.
func (s *Synthesizer) Create(opts CreateOptions) []string {
	hostname := Hostname(opts.Name)
	idmap := opts.IDMap()

	args := s.base("run",
		"--label", LabelKey+"=true",
		"--privileged",
		"-it",
	)

	if opts.Temp {
		args = append(args, "--rm")
	} else {
		args = append(args, "-d")
	}

	args = append(args, opts.PassThrough...)

	args = append(args,
		"--network", "host",
		"--hostname", hostname,
		"--add-host", hostname+":127.0.0.1",
		"-u", opts.User(),
		"--passwd=false",
		"-w", MountRoot,
	)

	if !opts.NoDefaultMount {
		primary := MountSpec{Source: opts.Dir, Dest: MountRoot}
		args = append(args, "--mount", primary.Arg(idmap))
	}

	for _, m := range opts.Mounts {
		args = append(args, "--mount", m.Arg(idmap))
	}

	if opts.Name != "" {
		args = append(args, "--name", opts.Name)
	}

	return append(args, opts.Image)
}

// InspectContainer builds the container inspect invocation.
func (s *Synthesizer) InspectContainer(name string) []string {
	return s.base("container", "inspect", name)
}

// InspectImage builds the image inspect invocation.
func (s *Synthesizer) InspectImage(image string) []string {
	return s.base("image", "inspect", image)
}

// Pull builds the image pull invocation.
func (s *Synthesizer) Pull(image string) []string {
	return s.base("pull", image)
}

// DumpPasswd builds a throwaway run that prints the image's user
// database, used by the identity heuristic.
func (s *Synthesizer) DumpPasswd(image string) []string {
	return s.base("run", "--rm", "--entrypoint", "cat", image, "/etc/passwd")
}

// Enter builds the interactive exec invocation.
func (s *Synthesizer) Enter(user, name, workdir string, command []string) []string {
	args := s.base("exec", "-it",
		"-w", workdir,
		"--user", user,
		name,
	)
	return append(args, command...)
}

// Start builds the container start invocation.
func (s *Synthesizer) Start(name string) []string {
	return s.base("start", name)
}

// Kill builds the container kill invocation.
func (s *Synthesizer) Kill(name string) []string {
	return s.base("kill", name)
}

// Remove builds the forced container removal invocation.
func (s *Synthesizer) Remove(name string) []string {
	return s.base("container", "rm", "--force", name)
}

// List builds the label-filtered listing invocation.
func (s *Synthesizer) List() []string {
	return s.base("ps", "--all", "--filter", "label="+LabelKey+"=true")
}
