package github

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/tailor/pkg/domain/interfaces"
	"github.com/m-mizutani/tailor/pkg/domain/model"
)

// EventProcessor processes GitHub webhook events
type EventProcessor struct {
	webhookUC interfaces.WebhookUseCase
}

// NewEventProcessor creates a new GitHub event processor
func NewEventProcessor(webhookUC interfaces.WebhookUseCase) *EventProcessor {
	return &EventProcessor{
		webhookUC: webhookUC,
	}
}

// ProcessEvent processes a GitHub webhook event
func (p *EventProcessor) ProcessEvent(ctx context.Context, eventType, deliveryID string, payload interface{}) error {
	logger := ctxlog.From(ctx)

	switch eventType {
	case "issue_comment":
		return p.processIssueCommentEvent(ctx, deliveryID, payload)
	default:
		logger.Debug("Ignoring unsupported event type", "event_type", eventType)
		return nil
	}
}

// processIssueCommentEvent processes a GitHub issue comment event
func (p *EventProcessor) processIssueCommentEvent(ctx context.Context, deliveryID string, payload interface{}) error {
	logger := ctxlog.From(ctx)

	commentEvent, ok := payload.(*github.IssueCommentEvent)
	if !ok {
		logger.Warn("Invalid issue comment event payload")
		return nil
	}

	event, err := p.extractCommentEvent(deliveryID, commentEvent)
	if err != nil {
		logger.Error("Failed to extract comment event", "error", err)
		return err
	}

	logger.Debug("Processing issue comment event",
		"repo", event.RepoSlug(),
		"number", event.Number,
		"action", event.Action,
		"sender", event.Sender,
	)

	return p.webhookUC.ProcessComment(ctx, event)
}

// extractCommentEvent extracts trigger-relevant fields from a GitHub issue
// comment event. Whether the comment actually matches the trigger is decided
// by the use case, not here.
func (p *EventProcessor) extractCommentEvent(deliveryID string, event *github.IssueCommentEvent) (*model.CommentEvent, error) {
	if event.GetRepo() == nil {
		return nil, fmt.Errorf("missing repository information in issue comment event")
	}
	if event.GetIssue() == nil {
		return nil, fmt.Errorf("missing issue information in issue comment event")
	}
	if event.GetComment() == nil {
		return nil, fmt.Errorf("missing comment information in issue comment event")
	}

	// Use Get*() helper methods for concise and nil-safe field access
	owner := event.GetRepo().GetOwner().GetLogin()
	repo := event.GetRepo().GetName()
	number := event.GetIssue().GetNumber()

	if owner == "" || repo == "" || number == 0 {
		return nil, fmt.Errorf("missing required fields: owner=%s, repo=%s, number=%d", owner, repo, number)
	}

	return &model.CommentEvent{
		DeliveryID:    deliveryID,
		Action:        event.GetAction(),
		Owner:         owner,
		Repo:          repo,
		Number:        number,
		IsPullRequest: event.GetIssue().IsPullRequest(),
		Body:          event.GetComment().GetBody(),
		Sender:        event.GetComment().GetUser().GetLogin(),
		Association:   event.GetComment().GetAuthorAssociation(),
		ReceivedAt:    time.Now(),
	}, nil
}
