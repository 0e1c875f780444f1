// Package webhook delivers task events to an HTTP endpoint, implementing the
// push-notification leg of the A2A protocol.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/courtsideco/courtside/pkg/eventstream"
)

const defaultTimeout = 10 * time.Second

// Config configures a webhook Publisher.
type Config struct {
	// URL is the default webhook endpoint. A per-event URL (from the
	// request's pushNotificationConfig) takes precedence.
	URL string

	// Token, when set, is sent as a bearer token.
	Token string

	// Timeout bounds a single delivery. Defaults to 10s.
	Timeout time.Duration
}

// Publisher POSTs task events to a webhook URL.
type Publisher struct {
	config     Config
	httpClient *http.Client
}

// NewPublisher creates a webhook publisher.
func NewPublisher(config Config) *Publisher {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Publisher{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PublishTask POSTs the JSON-RPC-wrapped task result to the webhook URL.
func (p *Publisher) PublishTask(ctx context.Context, event *eventstream.TaskCompletedEvent) error {
	if event == nil {
		return eventstream.ErrNilTaskEvent
	}

	// The request's own pushNotificationConfig wins over the configured target.
	url, token := p.config.URL, p.config.Token
	if event.Push != nil && event.Push.URL != "" {
		url, token = event.Push.URL, event.Push.Token
	}
	if url == "" {
		return fmt.Errorf("no webhook URL provided")
	}

	body, err := json.Marshal(event.Result)
	if err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// Close is a no-op; the underlying transport manages its own connections.
func (p *Publisher) Close() error {
	return nil
}
