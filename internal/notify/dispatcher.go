// Package notify sends alert notifications to the desktop and webhooks.
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
	"unicode/utf8"

	"github.com/gen2brain/beeep"
	"github.com/lazyvibe/failbell/internal/model"
)

// Config selects the notification channels.
type Config struct {
	// Desktop enables desktop notifications via system APIs.
	Desktop bool
	// WebhookURL is the optional URL to POST alerts to.
	WebhookURL string
}

// Enabled reports whether any channel is on.
func (c Config) Enabled() bool {
	return c.Desktop || c.WebhookURL != ""
}

// Dispatcher sends notifications to configured channels.
type Dispatcher struct {
	client  *http.Client
	desktop func(title, message string) error
}

// NewDispatcher creates a Dispatcher with sensible defaults.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		desktop: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// maxMessageRunes caps the notification body.
const maxMessageRunes = 800

// truncateRunes cuts s to at most limit runes plus an ellipsis.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + "..."
		}
		n++
	}
	return s
}

// Dispatch sends rec to every enabled channel and returns the first error.
func (d *Dispatcher) Dispatch(ctx context.Context, cfg Config, rec *model.AlertRecord) error {
	title := "failbell"
	if rec.SessionName != "" {
		title = "failbell: " + rec.SessionName
	}
	message := strings.TrimSpace(rec.Reason)
	if rec.Excerpt != "" {
		message += "\n" + rec.Excerpt
	}
	message = truncateRunes(message, maxMessageRunes)

	var firstErr error
	if cfg.Desktop {
		if err := d.desktop(title, message); err != nil {
			firstErr = fmt.Errorf("desktop notification: %w", err)
		}
	}
	if cfg.WebhookURL != "" {
		if err := d.postWebhook(ctx, cfg.WebhookURL, title, message, rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (d *Dispatcher) postWebhook(ctx context.Context, url, title, message string, rec *model.AlertRecord) error {
	payload := map[string]any{
		"id":        rec.ID,
		"session":   rec.SessionName,
		"sessionId": rec.SessionID,
		"kind":      rec.Kind,
		"title":     title,
		"message":   message,
		"pattern":   rec.Pattern,
		"exitCode":  rec.ExitCode,
		"timestamp": rec.FiredAt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: unexpected status %s", resp.Status)
	}
	return nil
}
