package model

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/tailor/pkg/domain/types"
)

// RunStatus is the state of a workflow run. It is also the vocabulary used
// for commit statuses; note that the GitHub status API has no "skipped"
// state, the API client maps it when publishing.
type RunStatus string

const (
	StatusPending RunStatus = "pending"
	StatusSuccess RunStatus = "success"
	StatusFailure RunStatus = "failure"
	StatusSkipped RunStatus = "skipped"
)

// RunnerResult is the terminal result of one category runner.
type RunnerResult string

const (
	// RunnerSuccess means the formatter command exited cleanly. Whether it
	// changed anything is carried separately by RunnerOutcome.HasDiff.
	RunnerSuccess RunnerResult = "success"
	// RunnerFailure means checkout, formatter invocation, or artifact upload
	// failed for the category.
	RunnerFailure RunnerResult = "failure"
	// RunnerSkipped means no changed file matched the category, so the
	// runner never started.
	RunnerSkipped RunnerResult = "skipped"
)

// DiffStats summarizes a patch produced by a formatter.
type DiffStats struct {
	Files      int `json:"files" firestore:"files"`
	Insertions int `json:"insertions" firestore:"insertions"`
	Deletions  int `json:"deletions" firestore:"deletions"`
}

// RunnerOutcome is the terminal outcome of one category. Every configured
// category gets exactly one outcome per run, in configuration order.
type RunnerOutcome struct {
	Category    string       `json:"category" firestore:"category"`
	Result      RunnerResult `json:"result" firestore:"result"`
	HasDiff     bool         `json:"has_diff" firestore:"has_diff"`
	ArtifactKey string       `json:"artifact_key,omitempty" firestore:"artifact_key,omitempty"`
	Stats       DiffStats    `json:"stats" firestore:"stats"`
	Error       string       `json:"error,omitempty" firestore:"error,omitempty"`
}

// ApplyState is the terminal state of the patch application stage.
type ApplyState string

const (
	ApplyNotRun  ApplyState = "not_run"
	ApplyApplied ApplyState = "applied"
	ApplyFailed  ApplyState = "failed"
)

// ApplyResult records what the aggregator did with the collected patches.
type ApplyResult struct {
	State     ApplyState `json:"state" firestore:"state"`
	CommitSHA string     `json:"commit_sha,omitempty" firestore:"commit_sha,omitempty"`
	Error     string     `json:"error,omitempty" firestore:"error,omitempty"`
}

// PatchArtifactKey is the artifact store key for a category's patch.
func PatchArtifactKey(runID types.RunID, category string) string {
	return fmt.Sprintf("runs/%s/%s.patch", runID, category)
}

// ResolveStatus folds all runner outcomes and the apply result into the
// final run status. Priority: any failure wins, then all-skipped, then
// success (with or without a pushed commit).
func ResolveStatus(outcomes []RunnerOutcome, apply ApplyResult) RunStatus {
	for _, o := range outcomes {
		if o.Result == RunnerFailure {
			return StatusFailure
		}
	}
	if apply.State == ApplyFailed {
		return StatusFailure
	}

	allSkipped := true
	for _, o := range outcomes {
		if o.Result != RunnerSkipped {
			allSkipped = false
			break
		}
	}
	if allSkipped {
		return StatusSkipped
	}

	return StatusSuccess
}

// StatusDescription builds the human-readable description for the final
// commit status. Kept short; the status API truncates long descriptions.
func StatusDescription(outcomes []RunnerOutcome, apply ApplyResult) string {
	var failed []string
	for _, o := range outcomes {
		if o.Result == RunnerFailure {
			failed = append(failed, o.Category)
		}
	}
	if len(failed) > 0 {
		return fmt.Sprintf("formatter failed: %s", strings.Join(failed, ", "))
	}
	if apply.State == ApplyFailed {
		return "failed to apply formatting patches"
	}

	switch ResolveStatus(outcomes, apply) {
	case StatusSkipped:
		return "no files matched any category"
	case StatusSuccess:
		if apply.State == ApplyApplied {
			var applied []string
			files := 0
			for _, o := range outcomes {
				if o.Result == RunnerSuccess && o.HasDiff {
					applied = append(applied, o.Category)
					files += o.Stats.Files
				}
			}
			return fmt.Sprintf("formatted %d files (%s)", files, strings.Join(applied, ", "))
		}
		return "nothing to format"
	default:
		return ""
	}
}
