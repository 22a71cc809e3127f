// Package runtime synthesizes podman argument vectors and executes them.
//
// The two concerns are strictly separated:
//
//   - Synthesizer builds exact, bit-stable argument vectors for every
//     runtime operation (create, enter, stop, restart, list, pull,
//     inspect) including UID/GID idmap expressions and bind-mount specs.
//     It performs no I/O.
//   - Executor runs fully built vectors. CLIExecutor is the real one;
//     MockExecutor records calls and serves canned inspect/passwd output
//     so every flow is testable without a container runtime installed.
//
// Entering a container ends in Executor.Replace, which swaps the current
// process image and does not return; tests treat that transition as a
// handoff recorded on the mock.
//
// Dry-run mode renders vectors with PrintCommand (shell-quoted, one per
// line) instead of passing them to an Executor.
package runtime
