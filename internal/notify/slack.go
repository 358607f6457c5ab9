package notify

import (
	"context"
	"errors"
	"net/http"

	"flowershop/internal/model"
)

// Slack posts the submission to an incoming webhook.
type Slack struct {
	webhookURL string
	client     *http.Client
}

// NewSlack creates the chat webhook channel.
func NewSlack(webhookURL string, client *http.Client) *Slack {
	return &Slack{webhookURL: webhookURL, client: client}
}

func (s *Slack) Name() string { return "slack" }

func (s *Slack) Ready() error {
	if s.webhookURL == "" {
		return errors.New("Slack webhook URL is missing")
	}
	return nil
}

func (s *Slack) Applies(model.Submission) bool { return true }

func (s *Slack) Send(ctx context.Context, sub model.Submission) error {
	return postJSON(ctx, s.client, s.webhookURL, nil, map[string]string{
		"text": "新規申込み\n" + Text(sub),
	})
}
