// Package gitws provides isolated git working trees pinned to a commit.
// Clone, checkout, commit and push go through go-git; patch text operations
// (diff, apply) shell out to git, which go-git does not implement.
package gitws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/m-mizutani/tailor/pkg/domain/interfaces"
	"github.com/m-mizutani/tailor/pkg/domain/model"
)

const workspaceDirPrefix = "tailor-ws-"

// remoteURL resolves the clone URL for a commit. Tests override this to
// point at local repositories.
var remoteURL = func(commit *model.CommitRef) string {
	return commit.CloneURL()
}

// TokenProvider supplies the credential used for remote git operations.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Factory creates workspaces by cloning the commit's repository.
type Factory struct {
	tokens TokenProvider
}

// New creates a workspace factory. The token provider is consulted for every
// remote operation so short-lived installation tokens stay fresh.
func New(tokens TokenProvider) *Factory {
	return &Factory{tokens: tokens}
}

// Checkout clones the repository branch and pins the working tree to the
// exact commit SHA, even when the branch has moved on since the trigger.
func (f *Factory) Checkout(ctx context.Context, commit *model.CommitRef) (interfaces.Workspace, error) {
	dir, err := os.MkdirTemp("", workspaceDirPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace dir: %w", err)
	}

	remote := remoteURL(commit)
	auth, err := authFor(ctx, f.tokens, remote)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           remote,
		ReferenceName: plumbing.NewBranchReferenceName(commit.Branch),
		SingleBranch:  true,
		Auth:          auth,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to clone %s: %w", remote, err)
	}

	// Move the local branch back to the pinned SHA so later commits build on
	// the commit the trigger saw, not on whatever the branch tip is now.
	refName := plumbing.NewBranchReferenceName(commit.Branch)
	pinned := plumbing.NewHashReference(refName, plumbing.NewHash(commit.SHA))
	if err := repo.Storer.SetReference(pinned); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to pin branch %s to %s: %w", commit.Branch, commit.ShortSHA(), err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Branch: refName, Force: true}); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to checkout %s at %s: %w", commit.Branch, commit.ShortSHA(), err)
	}

	return &workspace{
		dir:    dir,
		repo:   repo,
		commit: commit,
		tokens: f.tokens,
	}, nil
}

func authFor(ctx context.Context, tokens TokenProvider, remote string) (transport.AuthMethod, error) {
	// Local paths in tests use the file transport, which takes no auth.
	if !strings.HasPrefix(remote, "https://") && !strings.HasPrefix(remote, "http://") {
		return nil, nil
	}

	token, err := tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get git credential: %w", err)
	}
	return &githttp.BasicAuth{
		Username: "x-access-token",
		Password: token,
	}, nil
}

type workspace struct {
	dir    string
	repo   *git.Repository
	commit *model.CommitRef
	tokens TokenProvider
}

// Dir returns the root path of the working tree
func (w *workspace) Dir() string {
	return w.dir
}

// Diff returns the unified diff of uncommitted changes in the working tree
func (w *workspace) Diff(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "diff")
	cmd.Dir = w.dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(string(exitErr.Stderr)); msg != "" {
				return "", fmt.Errorf("git diff failed: %s", msg)
			}
		}
		return "", fmt.Errorf("git diff failed: %w", err)
	}
	return string(out), nil
}

// Apply applies a unified diff to the working tree
func (w *workspace) Apply(ctx context.Context, patch []byte) error {
	cmd := exec.CommandContext(ctx, "git", "apply", "--whitespace=nowarn")
	cmd.Dir = w.dir
	cmd.Stdin = bytes.NewReader(patch)
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("git apply failed: %s", msg)
		}
		return fmt.Errorf("git apply failed: %w", err)
	}
	return nil
}

// CommitAndPush stages all changes, commits them, and pushes the commit to
// the workspace branch. The push is not forced; when the remote branch moved
// since checkout the push fails and the caller reports it.
func (w *workspace) CommitAndPush(ctx context.Context, message, name, email string) (string, error) {
	worktree, err := w.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("failed to stage changes: %w", err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  name,
			Email: email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	remote := remoteURL(w.commit)
	auth, err := authFor(ctx, w.tokens, remote)
	if err != nil {
		return "", err
	}

	refName := plumbing.NewBranchReferenceName(w.commit.Branch)
	refSpec := gitconfig.RefSpec(fmt.Sprintf("%s:%s", refName, refName))
	if err := w.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: "origin",
		Auth:       auth,
		RefSpecs:   []gitconfig.RefSpec{refSpec},
	}); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return "", fmt.Errorf("failed to push %s: %w", w.commit.Branch, err)
	}

	return hash.String(), nil
}

// Close removes the working tree
func (w *workspace) Close() error {
	return os.RemoveAll(w.dir)
}
