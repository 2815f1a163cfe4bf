// Package notify delivers out-of-band notifications about workflow runs.
package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/tailor/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Slack posts run failures to a Slack incoming webhook.
type Slack struct {
	webhookURL string
}

// NewSlack creates a Slack notifier for the given incoming webhook URL.
func NewSlack(webhookURL string) *Slack {
	return &Slack{webhookURL: webhookURL}
}

// NotifyRunFailure reports a run that ended in failure
func (x *Slack) NotifyRunFailure(ctx context.Context, run *model.WorkflowRun) error {
	text := fmt.Sprintf("autoformat run failed: %s#%d @ %s\nrun: %s\n%s",
		run.Commit.RepoSlug(), run.Commit.Number, run.Commit.ShortSHA(),
		run.ID, model.StatusDescription(run.Outcomes, run.Apply))

	msg := &slack.WebhookMessage{Text: text}
	if err := slack.PostWebhookContext(ctx, x.webhookURL, msg); err != nil {
		return fmt.Errorf("failed to post slack notification: %w", err)
	}
	return nil
}
