package notify

import (
	"context"
	"errors"
	"net/http"

	"flowershop/internal/config"
	"flowershop/internal/model"
)

// Resend sends the shop a plain-text email through the Resend API.
type Resend struct {
	endpoint string
	apiKey   string
	from     string
	to       string
	client   *http.Client
}

// NewResend creates the Resend channel.
func NewResend(cfg config.ResendConfig, client *http.Client) *Resend {
	return &Resend{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		from:     cfg.From,
		to:       cfg.To,
		client:   client,
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

func (r *Resend) Name() string { return "resend" }

func (r *Resend) Ready() error {
	if r.endpoint == "" || r.apiKey == "" || r.from == "" || r.to == "" {
		return errors.New("Resend endpoint, API key, from and to are required")
	}
	return nil
}

func (r *Resend) Applies(model.Submission) bool { return true }

func (r *Resend) Send(ctx context.Context, s model.Submission) error {
	return postJSON(ctx, r.client, r.endpoint, bearer(r.apiKey), resendRequest{
		From:    r.from,
		To:      []string{r.to},
		Subject: Subject(s),
		Text:    Text(s),
		ReplyTo: s.ApplicantEmail,
	})
}
