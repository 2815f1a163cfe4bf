package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrRunNotFound is returned by run repositories when no record exists
	// for the requested RunID.
	ErrRunNotFound = goerr.New("workflow run not found")

	// ErrArtifactNotFound is returned by artifact stores when the requested
	// key has no content (never published, or expired by retention).
	ErrArtifactNotFound = goerr.New("artifact not found")
)
