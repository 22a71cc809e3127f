package identity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/seabox-dev/seabox/internal/errors"
	"github.com/seabox-dev/seabox/internal/logging"
	"github.com/seabox-dev/seabox/internal/runtime"
)

const (
	// UserIDLabel is the well-known image label carrying a pre-selected
	// container UID.
	UserIDLabel = "SEABOX_USER_ID"

	// BandLow and BandHigh bound the conventional "first normal user"
	// UID band scanned in /etc/passwd. Entries below are system
	// accounts; entries at or above BandHigh are dynamically allocated.
	BandLow  = 1000
	BandHigh = 2000

	// DefaultUID is the fallback identity used when a user has to be
	// created inside the container.
	DefaultUID = 1000
)

// Decision is the result of identity resolution for an image: either a
// known container UID/GID, or CreateUser with the default identity
// pending user creation by the entry script.
type Decision struct {
	UID        int
	GID        int
	CreateUser bool
}

// CreateUserDecision is the sentinel for images with no known user.
func CreateUserDecision() Decision {
	return Decision{UID: DefaultUID, GID: DefaultUID, CreateUser: true}
}

// Resolver determines what identity a process inside a given image
// should run as. Evidence is gathered through the injected executor.
type Resolver struct {
	Exec  runtime.Executor
	Synth *runtime.Synthesizer
}

// imageInspect is the slice element shape of `podman image inspect`.
type imageInspect struct {
	Labels map[string]string `json:"Labels"`
}

// passwdEntry is one parsed line of an image's user database.
type passwdEntry struct {
	Name string
	UID  int
	GID  int
}

// Determine resolves the UID/GID decision for image. Order of evidence,
// first hit wins: the UserIDLabel image label; a passwd scan of the
// [BandLow,BandHigh) band with the largest UID winning; the create-user
// sentinel.
//
// In dry-run mode no external process is invoked: the argument vectors
// that would run are printed and the sentinel is returned so command
// synthesis can still render a complete invocation.
func (r *Resolver) Determine(image string, dryRun bool) (Decision, error) {
	if dryRun {
		runtime.PrintCommand(r.Synth.InspectImage(image))
		runtime.PrintCommand(r.Synth.DumpPasswd(image))
		fmt.Println("# container user cannot be determined during a dry run; assuming a new user is required")
		return CreateUserDecision(), nil
	}

	inspectOut, err := r.inspectOrPull(image)
	if err != nil {
		return Decision{}, err
	}

	if uid, ok, err := labelUID(inspectOut); err != nil {
		return Decision{}, err
	} else if ok {
		logging.Debug("container identity from image label", "image", image, "uid", uid)
		return Decision{UID: uid, GID: uid}, nil
	}

	res, err := r.Exec.Run(r.Synth.DumpPasswd(image))
	if err != nil {
		return Decision{}, errors.RuntimeFailed("run", 0, err)
	}

	entries, err := parsePasswd(res.Stdout)
	if err != nil {
		return Decision{}, err
	}

	if best, ok := selectBandUser(entries); ok {
		logging.Debug("container identity from passwd scan",
			"image", image, "user", best.Name, "uid", best.UID, "gid", best.GID)
		return Decision{UID: best.UID, GID: best.GID}, nil
	}

	logging.Debug("no container user found, one will be created", "image", image)
	return CreateUserDecision(), nil
}

// inspectOrPull returns the image inspect output, pulling the image
// first when it is not present locally. A failed pull is fatal.
func (r *Resolver) inspectOrPull(image string) (string, error) {
	res, err := r.Exec.Run(r.Synth.InspectImage(image))
	if err != nil {
		return "", errors.RuntimeFailed("image inspect", 0, err)
	}
	if res.ExitCode == 0 {
		return res.Stdout, nil
	}

	logging.Info("image not present locally, pulling", "image", image)

	code, err := r.Exec.RunInteractive(r.Synth.Pull(image))
	if err != nil {
		return "", errors.RuntimeFailed("pull", 0, err)
	}
	if code != 0 {
		return "", errors.RuntimeFailed("pull", code, nil)
	}

	res, err = r.Exec.Run(r.Synth.InspectImage(image))
	if err != nil {
		return "", errors.RuntimeFailed("image inspect", 0, err)
	}
	if res.ExitCode != 0 {
		return "", errors.RuntimeFailed("image inspect", res.ExitCode, nil)
	}
	return res.Stdout, nil
}

// labelUID extracts the UserIDLabel value from inspect output. A label
// that is present but unparsable is fatal; the value controls what the
// container process runs as.
func labelUID(inspectJSON string) (int, bool, error) {
	var inspect []imageInspect
	if err := json.Unmarshal([]byte(inspectJSON), &inspect); err != nil {
		return 0, false, errors.ParseError("image inspect output", err)
	}
	if len(inspect) == 0 {
		return 0, false, nil
	}

	value, ok := inspect[0].Labels[UserIDLabel]
	if !ok {
		return 0, false, nil
	}

	uid, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, errors.ParseError(UserIDLabel+" label", err)
	}
	return uid, true, nil
}

// parsePasswd parses `name:pw:uid:gid:...` lines. Malformed lines are
// fatal rather than skipped.
func parsePasswd(output string) ([]passwdEntry, error) {
	var entries []passwdEntry

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 4 {
			return nil, errors.ParseError("passwd line", fmt.Errorf("%q", line))
		}
		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, errors.ParseError("passwd uid", err)
		}
		gid, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, errors.ParseError("passwd gid", err)
		}
		entries = append(entries, passwdEntry{Name: fields[0], UID: uid, GID: gid})
	}

	return entries, nil
}

// selectBandUser applies the band policy: keep entries with
// BandLow <= uid < BandHigh and pick the largest UID as the best guess
// for the image's primary non-root user.
func selectBandUser(entries []passwdEntry) (passwdEntry, bool) {
	var best passwdEntry
	found := false
	for _, e := range entries {
		if e.UID < BandLow || e.UID >= BandHigh {
			continue
		}
		if !found || e.UID > best.UID {
			best = e
			found = true
		}
	}
	return best, found
}
