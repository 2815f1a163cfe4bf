package usecase

import (
	"context"

	"github.com/m-mizutani/tailor/pkg/domain/interfaces"
	"github.com/m-mizutani/tailor/pkg/domain/model"
	"github.com/m-mizutani/tailor/pkg/domain/types"
)

type runQueryUseCase struct {
	repos interfaces.RunRepository
}

// NewRunQuery creates a new instance of RunQueryUseCase
func NewRunQuery(repos interfaces.RunRepository) interfaces.RunQueryUseCase {
	return &runQueryUseCase{repos: repos}
}

// GetRun returns the record of a run by ID
func (uc *runQueryUseCase) GetRun(ctx context.Context, id types.RunID) (*model.WorkflowRun, error) {
	return uc.repos.Get(ctx, id)
}
