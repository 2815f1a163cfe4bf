package usecase

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/tailor/pkg/domain/model"
	"github.com/waigani/diffparser"
)

// runFormatters runs one formatter per matched category in parallel and
// waits for every runner to reach a terminal outcome. Unmatched categories
// get a skipped outcome. One runner failing never discards a sibling's
// result.
func (uc *workflowUseCase) runFormatters(ctx context.Context, run *model.WorkflowRun, matches []model.CategoryMatch) []model.RunnerOutcome {
	matched := map[string]struct{}{}
	for _, m := range matches {
		matched[m.Category.Name] = struct{}{}
	}

	// One outcome slot per configured category; each goroutine writes only
	// its own slot.
	outcomes := make([]model.RunnerOutcome, len(uc.config.Categories))

	var wg sync.WaitGroup
	for i, cat := range uc.config.Categories {
		if _, ok := matched[cat.Name]; !ok {
			outcomes[i] = model.RunnerOutcome{Category: cat.Name, Result: model.RunnerSkipped}
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					ctxlog.From(ctx).Error("panic in formatter runner",
						"category", cat.Name,
						"recover", r,
						"stack", string(debug.Stack()),
					)
					outcomes[i] = model.RunnerOutcome{
						Category: cat.Name,
						Result:   model.RunnerFailure,
						Error:    fmt.Sprintf("panic: %v", r),
					}
				}
			}()
			outcomes[i] = uc.runCategory(ctx, run, cat)
		}()
	}
	wg.Wait()

	return outcomes
}

// runCategory formats one category in its own fresh checkout and publishes
// the patch artifact when the formatter changed anything.
func (uc *workflowUseCase) runCategory(ctx context.Context, run *model.WorkflowRun, cat model.Category) model.RunnerOutcome {
	logger := ctxlog.From(ctx).With("category", cat.Name)

	ws, err := uc.workspaces.Checkout(ctx, &run.Commit)
	if err != nil {
		logger.Error("failed to checkout workspace", "error", err)
		return failedOutcome(cat.Name, err)
	}
	defer func() {
		if err := ws.Close(); err != nil {
			logger.Warn("failed to clean up workspace", "error", err)
		}
	}()

	logger.Info("running formatter", "command", cat.Command)
	if err := uc.formatter.Run(ctx, &cat, ws.Dir()); err != nil {
		logger.Error("formatter failed", "error", err)
		return failedOutcome(cat.Name, err)
	}

	diff, err := ws.Diff(ctx)
	if err != nil {
		logger.Error("failed to diff working tree", "error", err)
		return failedOutcome(cat.Name, err)
	}
	if diff == "" {
		logger.Info("formatter made no changes")
		return model.RunnerOutcome{Category: cat.Name, Result: model.RunnerSuccess}
	}

	stats, err := diffStats(diff)
	if err != nil {
		logger.Error("formatter produced an unparsable diff", "error", err)
		return failedOutcome(cat.Name, fmt.Errorf("unparsable diff: %w", err))
	}

	key := model.PatchArtifactKey(run.ID, cat.Name)
	if err := uc.artifacts.Put(ctx, key, []byte(diff)); err != nil {
		logger.Error("failed to store patch artifact", "key", key, "error", err)
		return failedOutcome(cat.Name, err)
	}

	logger.Info("patch artifact stored",
		"key", key,
		"files", stats.Files,
		"insertions", stats.Insertions,
		"deletions", stats.Deletions,
	)
	return model.RunnerOutcome{
		Category:    cat.Name,
		Result:      model.RunnerSuccess,
		HasDiff:     true,
		ArtifactKey: key,
		Stats:       stats,
	}
}

func failedOutcome(category string, err error) model.RunnerOutcome {
	return model.RunnerOutcome{
		Category: category,
		Result:   model.RunnerFailure,
		Error:    err.Error(),
	}
}

// diffStats summarizes a unified diff.
func diffStats(diff string) (model.DiffStats, error) {
	parsed, err := diffparser.Parse(diff)
	if err != nil {
		return model.DiffStats{}, err
	}

	stats := model.DiffStats{Files: len(parsed.Files)}
	for _, f := range parsed.Files {
		for _, h := range f.Hunks {
			for _, l := range h.WholeRange.Lines {
				switch l.Mode {
				case diffparser.ADDED:
					stats.Insertions++
				case diffparser.REMOVED:
					stats.Deletions++
				}
			}
		}
	}
	return stats, nil
}
