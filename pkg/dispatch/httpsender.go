package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/creasty/defaults"
	"github.com/google/uuid"
)

// WebhookOptions configures the HTTP senders. Zero values are filled
// from the default tags.
type WebhookOptions struct {
	Timeout      time.Duration `default:"10s"`
	UserAgent    string        `default:"boost-engine/1.0"`
	MaxRespBytes int64         `default:"65536"`
}

// webhookAck is the response shape both webhook collaborators return.
type webhookAck struct {
	MessageID string `json:"message_id"`
}

// WebhookSender posts messages to a platform's webhook endpoint.
type WebhookSender struct {
	platform Platform
	url      string
	client   *http.Client
	opts     WebhookOptions
}

// NewWebhookSender creates a sender that delivers messages for
// platform by POSTing them to url.
func NewWebhookSender(platform Platform, url string, opts WebhookOptions) (*WebhookSender, error) {
	if err := defaults.Set(&opts); err != nil {
		return nil, fmt.Errorf("failed to apply sender defaults: %w", err)
	}
	return &WebhookSender{
		platform: platform,
		url:      url,
		client:   &http.Client{Timeout: opts.Timeout},
		opts:     opts,
	}, nil
}

// Send posts the message and parses the collaborator's ack.
func (s *WebhookSender) Send(ctx context.Context, msg Message) (*Ack, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.opts.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s webhook call failed: %w", s.platform, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.opts.MaxRespBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s webhook response: %w", s.platform, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s webhook returned status %d: %s", s.platform, resp.StatusCode, string(body))
	}

	var ack webhookAck
	if len(body) > 0 {
		if err := json.Unmarshal(body, &ack); err != nil {
			return nil, fmt.Errorf("failed to decode %s webhook ack: %w", s.platform, err)
		}
	}
	if ack.MessageID == "" {
		ack.MessageID = uuid.NewString()
	}

	return &Ack{MessageID: ack.MessageID, SentAt: time.Now().UTC()}, nil
}

// WebhookPodcastScheduler books ad slots by POSTing to the podcast
// collaborator's endpoint.
type WebhookPodcastScheduler struct {
	url    string
	client *http.Client
	opts   WebhookOptions
}

// NewWebhookPodcastScheduler creates a scheduler client for the
// endpoint at url.
func NewWebhookPodcastScheduler(url string, opts WebhookOptions) (*WebhookPodcastScheduler, error) {
	if err := defaults.Set(&opts); err != nil {
		return nil, fmt.Errorf("failed to apply scheduler defaults: %w", err)
	}
	return &WebhookPodcastScheduler{
		url:    url,
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}, nil
}

// Book submits the booking request.
func (s *WebhookPodcastScheduler) Book(ctx context.Context, booking Booking) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("failed to encode booking: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.opts.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("podcast booking call failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, s.opts.MaxRespBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("podcast scheduler returned status %d", resp.StatusCode)
	}
	return nil
}
