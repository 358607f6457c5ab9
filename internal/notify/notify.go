// Package notify implements the outbound notification channels the relay
// forwards submissions to.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flowershop/internal/config"
	"flowershop/internal/model"
)

// DefaultTimeout bounds a single outbound call.
const DefaultTimeout = 15 * time.Second

// maxErrorBody bounds how much of a provider error body is kept.
const maxErrorBody = 2 << 10

// Channel is one outbound notification destination.
type Channel interface {
	// Name identifies the channel in logs, metrics and error details.
	Name() string

	// Ready reports missing credentials. It makes no network call.
	Ready() error

	// Applies reports whether the channel should receive the submission.
	Applies(s model.Submission) bool

	// Send delivers the submission once.
	Send(ctx context.Context, s model.Submission) error
}

// FromConfig builds the channels that have any configuration present.
// A partially configured channel is still returned so the relay can
// refuse to send with it.
func FromConfig(cfg *config.Config, client *http.Client) []Channel {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	var channels []Channel

	if cfg.EmailJS.Enabled() {
		channels = append(channels,
			NewEmailJSAdmin(cfg.EmailJS, client),
			NewEmailJSConfirm(cfg.EmailJS, client),
		)
	}

	if cfg.Resend.Enabled() {
		channels = append(channels, NewResend(cfg.Resend, client))
	}

	if cfg.Slack.WebhookURL != "" {
		channels = append(channels, NewSlack(cfg.Slack.WebhookURL, client))
	}

	return channels
}

// postJSON sends body as JSON and treats any non-2xx status as an error
// carrying the provider's response text.
func postJSON(ctx context.Context, client *http.Client, url string, header http.Header, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(text))
		if detail == "" {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, detail)
	}

	return nil
}

func bearer(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
