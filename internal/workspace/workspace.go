// Package workspace resolves host directories against container mounts.
//
// Entering a container preserves the caller's subdirectory context: the
// current directory is expressed relative to the container's recorded
// primary mount source, so repeated enters from different subdirectories
// of the same project land in the matching place under /mount.
package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/seabox-dev/seabox/internal/errors"
	"github.com/seabox-dev/seabox/internal/runtime"
)

// RelativeToMount returns cwd relative to the mount source, or "" when
// cwd is not inside the mount source. Entering then lands at the mount
// root instead of failing.
func RelativeToMount(mountSource, cwd string) string {
	if mountSource == "" {
		return ""
	}

	src, err := filepath.Abs(mountSource)
	if err != nil {
		return ""
	}
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return ""
	}

	rel, err := filepath.Rel(src, dir)
	if err != nil {
		return ""
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return rel
}

// ContainerWorkdir maps a relative path onto the in-container mount
// root. An empty relative path is the mount root itself.
func ContainerWorkdir(rel string) string {
	return runtime.MountRoot + rel
}

// ResolveDir resolves the primary mount source: the explicit directory
// flag when given (fatal if it does not exist), the process working
// directory otherwise.
func ResolveDir(explicit string) (string, error) {
	if explicit == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(errors.ExitFailure, "current working directory not found", err)
		}
		return cwd, nil
	}

	abs, err := filepath.Abs(explicit)
	if err != nil {
		return "", errors.DirectoryNotFound(explicit)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.DirectoryNotFound(explicit)
	}
	return resolved, nil
}
