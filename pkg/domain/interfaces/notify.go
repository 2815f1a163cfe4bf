package interfaces

import (
	"context"

	"github.com/m-mizutani/tailor/pkg/domain/model"
)

// Notifier delivers out-of-band notifications about workflow runs.
type Notifier interface {
	// NotifyRunFailure reports a run that ended in failure
	NotifyRunFailure(ctx context.Context, run *model.WorkflowRun) error
}
