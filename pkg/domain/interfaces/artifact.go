package interfaces

import "context"

// ArtifactStore stores intermediate run artifacts such as patches.
// Keys are slash-separated paths; objects are write-once.
type ArtifactStore interface {
	// Put stores data under the key, overwriting any existing object
	Put(ctx context.Context, key string, data []byte) error

	// Get returns the object stored under the key.
	// Returns types.ErrArtifactNotFound when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
}
