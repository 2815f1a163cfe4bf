package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tailor/pkg/domain/interfaces"
	"github.com/m-mizutani/tailor/pkg/domain/model"
	"github.com/m-mizutani/tailor/pkg/utils/async"
)

// DispatchFunc hands a named handler off for asynchronous execution.
type DispatchFunc func(ctx context.Context, name string, handler func(ctx context.Context) error)

type webhookUseCase struct {
	config   *model.WorkflowConfig
	github   interfaces.GitHubClient
	repos    interfaces.RunRepository
	workflow interfaces.WorkflowUseCase
	baseURL  string
	dispatch DispatchFunc
}

// WebhookOption configures the webhook use case.
type WebhookOption func(*webhookUseCase)

// WithDispatcher replaces the async dispatcher. Tests use a synchronous one.
func WithDispatcher(d DispatchFunc) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.dispatch = d
	}
}

// NewWebhook creates a new instance of WebhookUseCase. baseURL is the public
// URL of this service, used to build run record links; empty disables links.
func NewWebhook(config *model.WorkflowConfig, githubClient interfaces.GitHubClient, repos interfaces.RunRepository, workflow interfaces.WorkflowUseCase, baseURL string, opts ...WebhookOption) interfaces.WebhookUseCase {
	uc := &webhookUseCase{
		config:   config,
		github:   githubClient,
		repos:    repos,
		workflow: workflow,
		baseURL:  baseURL,
		dispatch: async.Dispatch,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProcessComment processes an issue comment event. An authorized trigger
// comment on a non-fork pull request gets a pending status and a dispatched
// workflow run; everything else is a logged no-op.
func (uc *webhookUseCase) ProcessComment(ctx context.Context, event *model.CommentEvent) error {
	logger := ctxlog.From(ctx)

	if !event.IsSupportedAction() {
		logger.Debug("ignoring comment action", "action", event.Action)
		return nil
	}

	if !event.MatchesTrigger(uc.config.Trigger) {
		logger.Debug("comment does not match trigger",
			"repo", event.RepoSlug(),
			"number", event.Number,
			"is_pull_request", event.IsPullRequest,
		)
		return nil
	}

	if !uc.config.IsAllowedAssociation(event.Association) {
		logger.Warn("ignoring trigger from unauthorized commenter",
			"repo", event.RepoSlug(),
			"number", event.Number,
			"sender", event.Sender,
			"association", event.Association,
		)
		return nil
	}

	head, fork, err := uc.github.GetPullRequestHead(ctx, event.Owner, event.Repo, event.Number)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve pull request head",
			goerr.V("repo", event.RepoSlug()),
			goerr.V("number", event.Number),
		)
	}
	if fork {
		// The push credential cannot write to fork branches. Dropped before
		// any status is posted so the PR is not left pending forever.
		logger.Warn("ignoring trigger on fork pull request",
			"repo", event.RepoSlug(),
			"number", event.Number,
		)
		return nil
	}

	run := model.NewWorkflowRun(*head, event.Sender, event.DeliveryID, time.Now())
	if err := uc.repos.Put(ctx, run); err != nil {
		return goerr.Wrap(err, "failed to persist run record", goerr.V("run_id", run.ID))
	}

	pending := &model.CommitStatus{
		State:       model.StatusPending,
		Context:     uc.config.StatusContext,
		Description: "autoformat in progress",
		TargetURL:   runURL(uc.baseURL, run.ID),
	}
	if err := uc.github.CreateCommitStatus(ctx, head, pending); err != nil {
		// No pending status, no run. The workflow is not dispatched.
		return goerr.Wrap(err, "failed to post pending status",
			goerr.V("run_id", run.ID),
			goerr.V("sha", head.SHA),
		)
	}

	logger.Info("autoformat triggered",
		"run_id", run.ID,
		"repo", event.RepoSlug(),
		"number", event.Number,
		"sha", head.SHA,
		"triggered_by", event.Sender,
	)

	uc.dispatch(ctx, "autoformat-run", func(ctx context.Context) error {
		return uc.workflow.Execute(ctx, run)
	})

	return nil
}
