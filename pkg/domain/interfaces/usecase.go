package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . WebhookUseCase

import (
	"context"

	"github.com/m-mizutani/tailor/pkg/domain/model"
	"github.com/m-mizutani/tailor/pkg/domain/types"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessComment processes an issue comment event
	ProcessComment(ctx context.Context, event *model.CommentEvent) error
}

// WorkflowUseCase executes an accepted run to its terminal state
type WorkflowUseCase interface {
	// Execute runs classification, formatters, patch application, and
	// status reporting for the run
	Execute(ctx context.Context, run *model.WorkflowRun) error
}

// RunQueryUseCase serves persisted workflow run records
type RunQueryUseCase interface {
	// GetRun returns the record of a run by ID
	GetRun(ctx context.Context, id types.RunID) (*model.WorkflowRun, error)
}
