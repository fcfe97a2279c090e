// Package notify delivers best-effort Slack notifications for project
// events. Delivery failures are logged, never returned, so a broken
// webhook cannot fail the operation that triggered it.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/slack-go/slack"
)

// Notifier posts messages to a Slack incoming webhook.
type Notifier struct {
	WebhookURL string
	Timeout    time.Duration
}

// New creates a Notifier. An empty webhook URL yields a no-op notifier.
func New(webhookURL string) *Notifier {
	return &Notifier{WebhookURL: webhookURL, Timeout: 10 * time.Second}
}

// Enabled reports whether a webhook is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.WebhookURL != ""
}

// Post sends a plain text message. Best-effort: errors are logged, not returned.
func (n *Notifier) Post(text string) {
	if !n.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), n.Timeout)
	defer cancel()
	msg := &slack.WebhookMessage{Text: text}
	if err := slack.PostWebhookContext(ctx, n.WebhookURL, msg); err != nil {
		log.Printf("notify: webhook post failed: %v", err)
	}
}

// InviteSent announces that an invitation email went out.
func (n *Notifier) InviteSent(email string) {
	n.Post(fmt.Sprintf("Invitation sent to %s", email))
}

// ProjectCompleted announces a project hitting full completion.
func (n *Notifier) ProjectCompleted(name string) {
	n.Post(fmt.Sprintf("Project %q reached 100%% completion", name))
}
