package github_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/gt"

	githubcontroller "github.com/m-mizutani/tailor/pkg/controller/github"
	"github.com/m-mizutani/tailor/pkg/domain/model"
)

// MockWebhookUseCase is a mock implementation of WebhookUseCase
type MockWebhookUseCase struct {
	processCommentFunc func(ctx context.Context, event *model.CommentEvent) error
	processCalls       []*model.CommentEvent
}

func (m *MockWebhookUseCase) ProcessComment(ctx context.Context, event *model.CommentEvent) error {
	m.processCalls = append(m.processCalls, event)
	if m.processCommentFunc != nil {
		return m.processCommentFunc(ctx, event)
	}
	return nil
}

func newIssueCommentEvent() *github.IssueCommentEvent {
	action := "created"
	owner := "octo"
	repo := "demo"
	number := 42
	body := "autoformat"
	sender := "alice"
	association := "MEMBER"
	prURL := "https://api.github.com/repos/octo/demo/pulls/42"

	return &github.IssueCommentEvent{
		Action: &action,
		Repo: &github.Repository{
			Owner: &github.User{Login: &owner},
			Name:  &repo,
		},
		Issue: &github.Issue{
			Number:           &number,
			PullRequestLinks: &github.PullRequestLinks{URL: &prURL},
		},
		Comment: &github.IssueComment{
			Body:              &body,
			User:              &github.User{Login: &sender},
			AuthorAssociation: &association,
		},
	}
}

func TestEventProcessor_ProcessIssueCommentEvent(t *testing.T) {
	ctx := context.Background()

	mockUC := &MockWebhookUseCase{}
	processor := githubcontroller.NewEventProcessor(mockUC)

	err := processor.ProcessEvent(ctx, "issue_comment", "delivery-1", newIssueCommentEvent())
	gt.NoError(t, err)

	gt.Number(t, len(mockUC.processCalls)).Equal(1)
	event := mockUC.processCalls[0]
	gt.Value(t, event.DeliveryID).Equal("delivery-1")
	gt.Value(t, event.Action).Equal("created")
	gt.Value(t, event.Owner).Equal("octo")
	gt.Value(t, event.Repo).Equal("demo")
	gt.Number(t, event.Number).Equal(42)
	gt.Value(t, event.IsPullRequest).Equal(true)
	gt.Value(t, event.Body).Equal("autoformat")
	gt.Value(t, event.Sender).Equal("alice")
	gt.Value(t, event.Association).Equal("MEMBER")
	gt.Value(t, event.ReceivedAt.IsZero()).Equal(false)
}

func TestEventProcessor_PlainIssueComment(t *testing.T) {
	ctx := context.Background()

	mockUC := &MockWebhookUseCase{}
	processor := githubcontroller.NewEventProcessor(mockUC)

	// A comment on a plain issue still reaches the use case; the trigger
	// matching there is what rejects it.
	event := newIssueCommentEvent()
	event.Issue.PullRequestLinks = nil

	err := processor.ProcessEvent(ctx, "issue_comment", "delivery-2", event)
	gt.NoError(t, err)

	gt.Number(t, len(mockUC.processCalls)).Equal(1)
	gt.Value(t, mockUC.processCalls[0].IsPullRequest).Equal(false)
}

func TestEventProcessor_MissingRepository(t *testing.T) {
	ctx := context.Background()

	mockUC := &MockWebhookUseCase{}
	processor := githubcontroller.NewEventProcessor(mockUC)

	event := newIssueCommentEvent()
	event.Repo = nil

	err := processor.ProcessEvent(ctx, "issue_comment", "delivery-3", event)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("missing repository")

	gt.Number(t, len(mockUC.processCalls)).Equal(0)
}

func TestEventProcessor_UseCaseError(t *testing.T) {
	ctx := context.Background()

	mockUC := &MockWebhookUseCase{
		processCommentFunc: func(ctx context.Context, event *model.CommentEvent) error {
			return errors.New("processing failed")
		},
	}
	processor := githubcontroller.NewEventProcessor(mockUC)

	err := processor.ProcessEvent(ctx, "issue_comment", "delivery-4", newIssueCommentEvent())
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("processing failed")

	gt.Number(t, len(mockUC.processCalls)).Equal(1)
}

func TestEventProcessor_UnsupportedEventType(t *testing.T) {
	ctx := context.Background()

	mockUC := &MockWebhookUseCase{}
	processor := githubcontroller.NewEventProcessor(mockUC)

	err := processor.ProcessEvent(ctx, "push", "delivery-5", nil)
	gt.NoError(t, err)

	gt.Number(t, len(mockUC.processCalls)).Equal(0)
}

func TestEventProcessor_InvalidPayloadType(t *testing.T) {
	ctx := context.Background()

	mockUC := &MockWebhookUseCase{}
	processor := githubcontroller.NewEventProcessor(mockUC)

	err := processor.ProcessEvent(ctx, "issue_comment", "delivery-6", "not an event")
	gt.NoError(t, err)

	gt.Number(t, len(mockUC.processCalls)).Equal(0)
}
