package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tailor/pkg/domain/model"
)

// report publishes the final status on the commit the trigger saw. The
// pushed commit moves the branch head, so the original SHA is the subject,
// not the new tip.
func (uc *workflowUseCase) report(ctx context.Context, run *model.WorkflowRun) error {
	status := &model.CommitStatus{
		State:       run.Status,
		Context:     uc.config.StatusContext,
		Description: run.Description(),
		TargetURL:   runURL(uc.baseURL, run.ID),
	}

	if err := uc.github.CreateCommitStatus(ctx, &run.Commit, status); err != nil {
		ctxlog.From(ctx).Error("failed to publish final status", "error", err)
		return goerr.Wrap(err, "failed to publish final status",
			goerr.V("run_id", run.ID),
			goerr.V("sha", run.Commit.SHA),
		)
	}

	ctxlog.From(ctx).Info("published final status",
		"state", run.Status,
		"description", status.Description,
	)
	return nil
}
