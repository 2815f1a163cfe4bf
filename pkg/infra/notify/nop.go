package notify

import (
	"context"

	"github.com/m-mizutani/tailor/pkg/domain/model"
)

// Nop discards all notifications. Used when no webhook is configured.
type Nop struct{}

// NewNop creates a notifier that does nothing.
func NewNop() *Nop {
	return &Nop{}
}

// NotifyRunFailure does nothing
func (x *Nop) NotifyRunFailure(context.Context, *model.WorkflowRun) error {
	return nil
}
