package interfaces

import (
	"context"

	"github.com/m-mizutani/tailor/pkg/domain/model"
)

// WorkspaceFactory creates fresh checkouts of a commit. Each call yields an
// isolated working tree; callers must Close it.
type WorkspaceFactory interface {
	Checkout(ctx context.Context, commit *model.CommitRef) (Workspace, error)
}

// Workspace is a dedicated working tree pinned to one commit.
type Workspace interface {
	// Dir returns the root path of the working tree
	Dir() string

	// Diff returns the unified diff of uncommitted changes in the working
	// tree. Empty string when the tree is clean.
	Diff(ctx context.Context) (string, error)

	// Apply applies a unified diff to the working tree
	Apply(ctx context.Context, patch []byte) error

	// CommitAndPush stages all changes, commits them with the given identity
	// and message, and pushes the commit to the workspace branch. Returns
	// the new commit SHA.
	CommitAndPush(ctx context.Context, message, name, email string) (string, error)

	// Close removes the working tree
	Close() error
}
