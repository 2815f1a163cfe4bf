package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tailor/pkg/domain/model"
	"github.com/m-mizutani/tailor/pkg/domain/types"
	"github.com/m-mizutani/tailor/pkg/infra/repository"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	run := model.NewWorkflowRun(model.CommitRef{
		Owner: "octo", Repo: "demo", Number: 42, Branch: "fix", SHA: "abc123",
	}, "alice", "delivery-1", time.Now())

	gt.NoError(t, repo.Put(ctx, run))

	got, err := repo.Get(ctx, run.ID)
	gt.NoError(t, err)
	gt.Equal(t, got.Commit.Owner, "octo")
	gt.Equal(t, got.Status, model.StatusPending)

	// Stored records are detached from the caller's copy.
	run.Status = model.StatusFailure
	got, err = repo.Get(ctx, run.ID)
	gt.NoError(t, err)
	gt.Equal(t, got.Status, model.StatusPending)

	// Put replaces the record.
	run.Finish(time.Now())
	gt.NoError(t, repo.Put(ctx, run))
	got, err = repo.Get(ctx, run.ID)
	gt.NoError(t, err)
	gt.Equal(t, got.Status, model.StatusSkipped)

	_, err = repo.Get(ctx, types.RunID("no-such-run"))
	if !errors.Is(err, types.ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}
