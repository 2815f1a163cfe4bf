package model

import (
	"strings"
	"time"
)

// CommentEvent represents an issue_comment webhook event received from GitHub.
// It is transient: produced by the HTTP controller, consumed once by the
// webhook use case, never stored.
type CommentEvent struct {
	DeliveryID    string    // Retrieved from X-GitHub-Delivery header
	Action        string    // Event action (created, edited, deleted)
	Owner         string    // Repository owner
	Repo          string    // Repository name
	Number        int       // Issue / pull request number
	IsPullRequest bool      // True when the comment is on a pull request
	Body          string    // Raw comment body
	Sender        string    // Comment author login
	Association   string    // Author association (OWNER, MEMBER, ...)
	ReceivedAt    time.Time // Time when the event was received
}

// IsSupportedAction checks if the comment action can carry a trigger.
// Deleted comments never trigger.
func (e *CommentEvent) IsSupportedAction() bool {
	switch e.Action {
	case "created", "edited":
		return true
	default:
		return false
	}
}

// MatchesTrigger reports whether this comment activates the workflow: the
// subject must be a pull request and the body, after trimming surrounding
// whitespace, must equal the trigger phrase exactly. Case-sensitive, no
// substring matching.
func (e *CommentEvent) MatchesTrigger(phrase string) bool {
	if !e.IsPullRequest {
		return false
	}
	return strings.TrimSpace(e.Body) == phrase
}

// RepoSlug returns the owner/name form of the repository.
func (e *CommentEvent) RepoSlug() string {
	return e.Owner + "/" + e.Repo
}
