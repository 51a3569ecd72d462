// Package process spawns, tracks and gracefully terminates OS child
// processes within the lifetime of the host process.
//
// A Registry owns the set of currently-live children. Every spawn
// registers its Handle; the handle is unregistered when the OS reports
// exit, just before its Closed channel resolves. DespawnAll drains the
// whole registry concurrently and is the backbone of the fatal-fault
// path (Recover/Fatal), which prevents orphaned children when the host
// goes down.
//
// Restartable is a single-slot supervised process cell: overlapping
// Restart calls coalesce onto one in-flight transition so at most one
// physical child is ever live per cell.
//
// This package is a minimal primitive, not a process orchestrator:
// there are no supervisor trees, restart policies or health probes.
package process
