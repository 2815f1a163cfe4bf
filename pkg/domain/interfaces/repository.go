package interfaces

import (
	"context"

	"github.com/m-mizutani/tailor/pkg/domain/model"
	"github.com/m-mizutani/tailor/pkg/domain/types"
)

// RunRepository persists workflow run records.
type RunRepository interface {
	// Put creates or replaces the record of a run
	Put(ctx context.Context, run *model.WorkflowRun) error

	// Get returns the record of a run.
	// Returns types.ErrRunNotFound when the run does not exist.
	Get(ctx context.Context, id types.RunID) (*model.WorkflowRun, error)
}
