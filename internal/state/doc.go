// Package state persists local records of created containers.
//
// One JSON file per box lives under the platform config directory.
// Records are written on create and removed on remove; they are
// best-effort bookkeeping for the picker and `list --local`, not a
// second source of truth — the runtime's label filter remains
// authoritative for what exists.
//
// Box names come from user input, so record paths are joined with
// filepath-securejoin to keep crafted names inside the record
// directory.
package state
