package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TwilioClient sends SMS via the Twilio Messages REST API. Delivery itself
// is Twilio's concern; we only relay and report the message SID.
type TwilioClient struct {
	client     *http.Client
	logger     *zap.Logger
	baseURL    string
	accountSID string
	authToken  string
	from       string
}

// NewTwilioClient creates a client. baseURL is overridable for tests; pass
// "" for the production API.
func NewTwilioClient(accountSID, authToken, from, baseURL string, logger *zap.Logger) *TwilioClient {
	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}
	return &TwilioClient{
		client:     &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
		baseURL:    baseURL,
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
	}
}

// Configured reports whether credentials are present
func (t *TwilioClient) Configured() bool {
	return t.accountSID != "" && t.authToken != "" && t.from != ""
}

// SendSMS posts one message and returns the Twilio message SID
func (t *TwilioClient) SendSMS(ctx context.Context, to, body string) (string, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.from)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Error("twilio request failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	var payload struct {
		SID     string `json:"sid"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("twilio decode: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.logger.Warn("twilio non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("message", payload.Message))
		return "", fmt.Errorf("twilio error %d: %s", resp.StatusCode, payload.Message)
	}

	t.logger.Info("sms sent", zap.String("sid", payload.SID), zap.String("to", to))
	return payload.SID, nil
}
