// Package identity decides what UID/GID a process inside a container
// image should run as.
//
// Order of evidence, first hit wins:
//
//  1. The SEABOX_USER_ID image label — an explicit opt-in signal.
//  2. A throwaway run dumping the image's /etc/passwd, filtered to the
//     [1000,2000) band with the largest UID winning. The band excludes
//     system accounts below and dynamically allocated ids above; it is
//     an explicit, named policy, not incidental behavior.
//  3. The create-user sentinel: no known user exists, the entry script
//     must create one, and synthesis falls back to 1000:1000.
//
// The decision is security-relevant — it controls what the container
// process runs as — so malformed labels and malformed passwd lines are
// fatal parse errors with no recovery.
package identity
