package interfaces

import (
	"context"

	"github.com/m-mizutani/tailor/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// GetPullRequestHead resolves the head commit of a pull request.
	// fork is true when the head repository is not the base repository.
	GetPullRequestHead(ctx context.Context, owner, repo string, number int) (head *model.CommitRef, fork bool, err error)

	// ListChangedFiles returns all changed file paths of a pull request,
	// following pagination to the end
	ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error)

	// CreateCommitStatus publishes a commit status on the commit's SHA
	CreateCommitStatus(ctx context.Context, commit *model.CommitRef, status *model.CommitStatus) error

	// Token returns a credential for authenticated git operations over HTTPS
	Token(ctx context.Context) (string, error)
}
