package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/m-mizutani/tailor/pkg/domain/model"
	"github.com/m-mizutani/tailor/pkg/domain/types"
)

// Memory is an in-process run repository for local development and tests.
type Memory struct {
	mu   sync.RWMutex
	runs map[types.RunID]model.WorkflowRun
}

// NewMemory creates an empty in-memory run repository.
func NewMemory() *Memory {
	return &Memory{runs: map[types.RunID]model.WorkflowRun{}}
}

// Put creates or replaces the record of a run
func (x *Memory) Put(ctx context.Context, run *model.WorkflowRun) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.runs[run.ID] = *run
	return nil
}

// Get returns the record of a run
func (x *Memory) Get(ctx context.Context, id types.RunID) (*model.WorkflowRun, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	run, ok := x.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", id, types.ErrRunNotFound)
	}
	return &run, nil
}
