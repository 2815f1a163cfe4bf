package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tailor/pkg/domain/model"
)

// classify lists the changed files of the pull request and maps them onto
// the configured categories.
func (uc *workflowUseCase) classify(ctx context.Context, run *model.WorkflowRun) ([]model.CategoryMatch, error) {
	files, err := uc.github.ListChangedFiles(ctx, run.Commit.Owner, run.Commit.Repo, run.Commit.Number)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list changed files",
			goerr.V("repo", run.Commit.RepoSlug()),
			goerr.V("number", run.Commit.Number),
		)
	}

	matches := model.Classify(uc.config.Categories, files)

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Category.Name)
	}
	ctxlog.From(ctx).Info("classified changed files",
		"changed_files", len(files),
		"matched", names,
	)

	return matches, nil
}
