package runtime

import (
	"fmt"
	"strings"

	"github.com/seabox-dev/seabox/internal/errors"
)

// MountRoot is the fixed in-container destination of the primary mount.
const MountRoot = "/mount/"

// RootIDMap returns the idmap expression for root-equivalent containers:
// identity-map a wide range so the container root sees host ownership
// unchanged across [0,2000).
func RootIDMap() string {
	return "0-0-2000;gids=0-0-2000"
}

// UserIDMap returns the idmap expression mapping a single host id onto a
// single container id, with everything else identity-mapped so no other
// host ids leak through under a different owner.
func UserIDMap(hostUID, hostGID, containerUID, containerGID int) string {
	return fmt.Sprintf("%d-%d-1#0-0-1;gids=%d-%d-1#0-0-1",
		hostUID, containerUID, hostGID, containerGID)
}

// MountSpec is one bind mount handed to the runtime.
type MountSpec struct {
	Source string
	Dest   string
}

// ParseMountSpec parses a user-supplied "host:container" pair. Exactly
// two colon-delimited fields are required; anything else is fatal.
func ParseMountSpec(spec string) (MountSpec, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return MountSpec{}, errors.MountSpecError(spec)
	}
	return MountSpec{Source: parts[0], Dest: parts[1]}, nil
}

// Arg renders the --mount argument value with the given idmap expression.
func (m MountSpec) Arg(idmap string) string {
	return fmt.Sprintf("type=bind,source=%s,destination=%s,idmap=uids=%s",
		m.Source, m.Dest, idmap)
}
