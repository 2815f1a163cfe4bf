package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tailor/pkg/domain/interfaces"
	"github.com/m-mizutani/tailor/pkg/domain/model"
	"github.com/m-mizutani/tailor/pkg/domain/types"
)

type workflowUseCase struct {
	config     *model.WorkflowConfig
	github     interfaces.GitHubClient
	workspaces interfaces.WorkspaceFactory
	formatter  interfaces.Formatter
	artifacts  interfaces.ArtifactStore
	repos      interfaces.RunRepository
	notifier   interfaces.Notifier
	baseURL    string
}

// NewWorkflow creates a new instance of WorkflowUseCase
func NewWorkflow(
	config *model.WorkflowConfig,
	githubClient interfaces.GitHubClient,
	workspaces interfaces.WorkspaceFactory,
	formatter interfaces.Formatter,
	artifacts interfaces.ArtifactStore,
	repos interfaces.RunRepository,
	notifier interfaces.Notifier,
	baseURL string,
) interfaces.WorkflowUseCase {
	return &workflowUseCase{
		config:     config,
		github:     githubClient,
		workspaces: workspaces,
		formatter:  formatter,
		artifacts:  artifacts,
		repos:      repos,
		notifier:   notifier,
		baseURL:    baseURL,
	}
}

// Execute runs an accepted trigger to its terminal state: classification,
// formatter runners, patch application, and exactly one final status on the
// commit the trigger saw.
func (uc *workflowUseCase) Execute(ctx context.Context, run *model.WorkflowRun) error {
	logger := ctxlog.From(ctx).With(
		"run_id", run.ID,
		"repo", run.Commit.RepoSlug(),
		"number", run.Commit.Number,
	)
	ctx = ctxlog.With(ctx, logger)

	logger.Info("starting autoformat run",
		"sha", run.Commit.SHA,
		"triggered_by", run.TriggeredBy,
	)

	uc.process(ctx, run)
	run.Finish(time.Now())

	// The final status goes out on every path once the run started; a PR
	// must never stay pending.
	reportErr := uc.report(ctx, run)

	if err := uc.repos.Put(ctx, run); err != nil {
		logger.Error("failed to persist run record", "error", err)
	}

	if run.Status == model.StatusFailure {
		if err := uc.notifier.NotifyRunFailure(ctx, run); err != nil {
			logger.Error("failed to send failure notification", "error", err)
		}
	}

	logger.Info("autoformat run finished",
		"status", run.Status,
		"apply", run.Apply.State,
		"duration", run.FinishedAt.Sub(run.StartedAt).String(),
	)

	if reportErr != nil {
		return reportErr
	}
	if run.Error != "" {
		return goerr.New("autoformat run could not complete",
			goerr.V("run_id", run.ID),
			goerr.V("error", run.Error),
		)
	}
	return nil
}

// process fills in classification, runner outcomes, and the apply result.
// A stage failure lands in the run record; a stage that cannot start at all
// sets the run-level error.
func (uc *workflowUseCase) process(ctx context.Context, run *model.WorkflowRun) {
	matches, err := uc.classify(ctx, run)
	if err != nil {
		ctxlog.From(ctx).Error("classification failed", "error", err)
		run.Error = err.Error()
		return
	}
	run.Matched = matches

	run.Outcomes = uc.runFormatters(ctx, run, matches)
	run.Apply = uc.applyPatches(ctx, run)
}

// runURL builds the public link to a run record. Empty when the service has
// no configured base URL.
func runURL(baseURL string, id types.RunID) string {
	if baseURL == "" {
		return ""
	}
	return strings.TrimSuffix(baseURL, "/") + "/runs/" + id.String()
}
