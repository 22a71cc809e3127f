// Package config implements seabox's layered configuration resolution.
//
// Four sparse layers are merged into one effective Config:
//
//	CLI flags > environment (SEABOX_*) > per-image profile > global profile > defaults
//
// The on-disk file is TOML at the platform config directory. Its
// top-level keys form the global profile; nested tables are per-image
// profiles, keyed by image name:
//
//	image = "docker.io/library/debian"
//	no_password = true
//
//	["docker.io/library/debian"]
//	install_sudo = true
//
// Resolution is two-pass: the image name is itself a config value, so a
// first merge without per-image profiles establishes which profile (if
// any) participates in the final merge. See Resolve.
//
// Resolution never fails: absent values fall back to built-in defaults,
// and the result is always fully populated. Only I/O and malformed
// input produce errors.
package config
