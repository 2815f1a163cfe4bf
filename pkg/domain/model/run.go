package model

import (
	"time"

	"github.com/m-mizutani/tailor/pkg/domain/types"
)

// WorkflowRun is the persistent record of one accepted trigger. It is
// created when the trigger is matched and updated once when the workflow
// reaches a terminal state.
type WorkflowRun struct {
	ID          types.RunID     `json:"id" firestore:"id"`
	Commit      CommitRef       `json:"commit" firestore:"commit"`
	TriggeredBy string          `json:"triggered_by" firestore:"triggered_by"`
	DeliveryID  string          `json:"delivery_id" firestore:"delivery_id"`
	Matched     []CategoryMatch `json:"matched,omitempty" firestore:"matched,omitempty"`
	Outcomes    []RunnerOutcome `json:"outcomes,omitempty" firestore:"outcomes,omitempty"`
	Apply       ApplyResult     `json:"apply" firestore:"apply"`
	Status      RunStatus       `json:"status" firestore:"status"`
	Error       string          `json:"error,omitempty" firestore:"error,omitempty"`
	StartedAt   time.Time       `json:"started_at" firestore:"started_at"`
	FinishedAt  time.Time       `json:"finished_at" firestore:"finished_at"`
}

// NewWorkflowRun builds the initial pending record for an accepted trigger.
func NewWorkflowRun(commit CommitRef, triggeredBy, deliveryID string, now time.Time) *WorkflowRun {
	return &WorkflowRun{
		ID:          types.NewRunID(),
		Commit:      commit,
		TriggeredBy: triggeredBy,
		DeliveryID:  deliveryID,
		Apply:       ApplyResult{State: ApplyNotRun},
		Status:      StatusPending,
		StartedAt:   now,
	}
}

// Finish marks the run terminal: folds the outcomes into the final status
// and stamps the finish time. A run-level error (a stage that could not even
// start) forces failure regardless of outcomes.
func (r *WorkflowRun) Finish(now time.Time) {
	if r.Error != "" {
		r.Status = StatusFailure
	} else {
		r.Status = ResolveStatus(r.Outcomes, r.Apply)
	}
	r.FinishedAt = now
}

// Description returns the human-readable summary for the final commit
// status.
func (r *WorkflowRun) Description() string {
	if r.Error != "" {
		return "autoformat could not run"
	}
	return StatusDescription(r.Outcomes, r.Apply)
}
