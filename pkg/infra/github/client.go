package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/tailor/pkg/domain/interfaces"
	"github.com/m-mizutani/tailor/pkg/domain/model"
	"golang.org/x/oauth2"
)

type client struct {
	githubClient *github.Client
	tokenFn      func(ctx context.Context) (string, error)
}

// NewClient creates a new GitHub client with App authentication
func NewClient(appID, installationID int64, privateKey []byte) (interfaces.GitHubClient, error) {
	// Create GitHub App transport
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}

	return &client{
		githubClient: github.NewClient(&http.Client{Transport: itr}),
		tokenFn:      itr.Token,
	}, nil
}

// NewClientWithToken creates a GitHub client authenticated with a personal
// access token. Intended for deployments without a GitHub App.
func NewClientWithToken(ctx context.Context, token string) interfaces.GitHubClient {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, src)

	return &client{
		githubClient: github.NewClient(httpClient),
		tokenFn: func(context.Context) (string, error) {
			return token, nil
		},
	}
}

// GetPullRequestHead resolves the head commit of a pull request
func (c *client) GetPullRequestHead(ctx context.Context, owner, repo string, number int) (*model.CommitRef, bool, error) {
	pr, _, err := c.githubClient.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get pull request %s/%s#%d: %w", owner, repo, number, err)
	}

	head := pr.GetHead()
	commit := &model.CommitRef{
		Owner:  owner,
		Repo:   repo,
		Number: number,
		Branch: head.GetRef(),
		SHA:    head.GetSHA(),
	}
	fork := head.GetRepo().GetID() != pr.GetBase().GetRepo().GetID()

	return commit, fork, nil
}

// ListChangedFiles returns all changed file paths of a pull request
func (c *client) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}

	var files []string
	for {
		changed, resp, err := c.githubClient.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list files of %s/%s#%d: %w", owner, repo, number, err)
		}
		for _, f := range changed {
			files = append(files, f.GetFilename())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

// CreateCommitStatus publishes a commit status on the commit's SHA
func (c *client) CreateCommitStatus(ctx context.Context, commit *model.CommitRef, status *model.CommitStatus) error {
	if _, _, err := c.githubClient.Repositories.CreateStatus(ctx, commit.Owner, commit.Repo, commit.SHA, apiStatus(status)); err != nil {
		return fmt.Errorf("failed to create commit status for %s/%s@%s: %w", commit.Owner, commit.Repo, commit.ShortSHA(), err)
	}

	return nil
}

// apiStatus translates a commit status into the status API representation.
// The API knows only pending/success/failure/error, so skipped is published
// as success; the description keeps the distinction visible.
func apiStatus(status *model.CommitStatus) *github.RepoStatus {
	state := string(status.State)
	if status.State == model.StatusSkipped {
		state = string(model.StatusSuccess)
	}

	repoStatus := &github.RepoStatus{
		State:   github.Ptr(state),
		Context: github.Ptr(status.Context),
	}
	if status.Description != "" {
		repoStatus.Description = github.Ptr(status.Description)
	}
	if status.TargetURL != "" {
		repoStatus.TargetURL = github.Ptr(status.TargetURL)
	}
	return repoStatus
}

// Token returns a credential for authenticated git operations over HTTPS.
// With App authentication this is the installation token; pushes made with
// it show up as the App and trigger downstream webhooks.
func (c *client) Token(ctx context.Context) (string, error) {
	token, err := c.tokenFn(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	return token, nil
}
