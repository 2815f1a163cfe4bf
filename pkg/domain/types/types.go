package types

import "github.com/google/uuid"

// Version is the application version, overridden at build time via ldflags.
var Version = "unknown"

// RunID identifies a single trigger invocation of the format workflow.
// Artifacts, status links, and the persisted run record are all keyed by it.
type RunID string

// NewRunID issues a new random RunID.
func NewRunID() RunID {
	return RunID(uuid.NewString())
}

// String returns the ID as a plain string.
func (x RunID) String() string {
	return string(x)
}
