package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/tailor/pkg/domain/model"
)

// applyPatches applies every successful patch in category order to one
// fresh checkout, commits, and pushes. Patches land in a single commit or
// not at all; a half-applied tree is never committed.
func (uc *workflowUseCase) applyPatches(ctx context.Context, run *model.WorkflowRun) model.ApplyResult {
	logger := ctxlog.From(ctx)

	var pending []model.RunnerOutcome
	for _, o := range run.Outcomes {
		if o.Result == model.RunnerSuccess && o.HasDiff {
			pending = append(pending, o)
		}
	}
	if len(pending) == 0 {
		logger.Info("no patches to apply")
		return model.ApplyResult{State: model.ApplyNotRun}
	}

	ws, err := uc.workspaces.Checkout(ctx, &run.Commit)
	if err != nil {
		logger.Error("failed to checkout workspace for apply", "error", err)
		return model.ApplyResult{State: model.ApplyFailed, Error: err.Error()}
	}
	defer func() {
		if err := ws.Close(); err != nil {
			logger.Warn("failed to clean up workspace", "error", err)
		}
	}()

	for _, o := range pending {
		patch, err := uc.artifacts.Get(ctx, o.ArtifactKey)
		if err != nil {
			logger.Error("failed to fetch patch artifact",
				"category", o.Category,
				"key", o.ArtifactKey,
				"error", err,
			)
			return model.ApplyResult{State: model.ApplyFailed, Error: err.Error()}
		}
		if err := ws.Apply(ctx, patch); err != nil {
			logger.Error("failed to apply patch", "category", o.Category, "error", err)
			return model.ApplyResult{State: model.ApplyFailed, Error: err.Error()}
		}
		logger.Info("applied patch", "category", o.Category)
	}

	message := "Autoformat: " + runURL(uc.baseURL, run.ID)
	if uc.baseURL == "" {
		message = "Autoformat: run " + run.ID.String()
	}

	sha, err := ws.CommitAndPush(ctx, message, uc.config.CommitterName, uc.config.CommitterEmail)
	if err != nil {
		logger.Error("failed to push autoformat commit", "error", err)
		return model.ApplyResult{State: model.ApplyFailed, Error: err.Error()}
	}

	logger.Info("pushed autoformat commit", "sha", sha, "branch", run.Commit.Branch)
	return model.ApplyResult{State: model.ApplyApplied, CommitSHA: sha}
}
