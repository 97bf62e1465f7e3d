// Package notify delivers rebuild completion notifications to an
// external webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackday/internal/config"
	"github.com/yourusername/trackday/internal/service"
)

// WebhookNotifier POSTs a JSON rebuild summary to a configured URL.
// Transient failures are retried with backoff; a 4xx response other
// than 429 is treated as permanent.
type WebhookNotifier struct {
	cfg    config.NotifyConfig
	client *retryablehttp.Client
	logger *logrus.Logger
}

// NewWebhookNotifier creates a notifier from the notify configuration
func NewWebhookNotifier(cfg config.NotifyConfig, logger *logrus.Logger) *WebhookNotifier {
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	client.RetryMax = cfg.RetryAttempts
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.CheckRetry = webhookRetryPolicy()
	client.Logger = nil

	return &WebhookNotifier{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

// NotifyRebuild delivers one rebuild summary. It satisfies the notifier
// hook of the ranking service.
func (n *WebhookNotifier) NotifyRebuild(ctx context.Context, summary service.RebuildSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode rebuild summary: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+n.cfg.AuthToken)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	n.logger.WithFields(logrus.Fields{
		"url":      n.cfg.WebhookURL,
		"rankings": summary.Rankings,
		"status":   resp.StatusCode,
	}).Info("Rebuild notification delivered")

	return nil
}

// Close releases idle connections held by the underlying client
func (n *WebhookNotifier) Close() error {
	n.client.HTTPClient.CloseIdleConnections()
	return nil
}

// webhookRetryPolicy retries network errors, 429 and 5xx responses
func webhookRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, err
		}
		if resp.StatusCode == 429 || resp.StatusCode >= 500 {
			return true, nil
		}
		return false, nil
	}
}
