package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// WebhookClient forwards email-capture payloads to the Apps Script web app.
// The target answers with a 302 on success when redirects are not followed,
// so both 2xx and 302 count as delivered.
type WebhookClient struct {
	client *http.Client
	logger *zap.Logger
	url    string
}

func NewWebhookClient(url string, logger *zap.Logger) *WebhookClient {
	return &WebhookClient{
		client: &http.Client{
			Timeout: 15 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
		url:    url,
	}
}

// Configured reports whether a target URL is present
func (w *WebhookClient) Configured() bool {
	return w.url != ""
}

// Forward posts the payload as JSON
func (w *WebhookClient) Forward(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.logger.Error("webhook forward failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusFound || (resp.StatusCode >= 200 && resp.StatusCode <= 299) {
		w.logger.Debug("webhook forwarded", zap.Int("status", resp.StatusCode))
		return nil
	}

	return fmt.Errorf("webhook error: status %d", resp.StatusCode)
}
