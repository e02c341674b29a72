package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nftpawn/internal/notifications"
)

// WebhookSender posts notifications to a chat webhook (Discord-compatible
// payload shape). The destination stored on the subscription is the webhook
// URL itself, so one subscription can point at any channel.
type WebhookSender struct {
	http   *http.Client
	logger *slog.Logger
}

// NewWebhookSender creates a webhook chat sender.
func NewWebhookSender(logger *slog.Logger) *WebhookSender {
	return &WebhookSender{
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (s *WebhookSender) Kind() notifications.ChannelKind {
	return notifications.ChannelWebhook
}

func (s *WebhookSender) Send(ctx context.Context, destination string, msg notifications.Message) error {
	payload, err := json.Marshal(map[string]string{
		"content": fmt.Sprintf("**%s**\n%s", msg.Subject, msg.Body),
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}

	s.logger.InfoContext(ctx, "webhook sent", "subject", msg.Subject)
	return nil
}
