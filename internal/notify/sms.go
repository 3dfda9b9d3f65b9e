package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultSMSEndpoint is the Africa's Talking messaging endpoint.
const DefaultSMSEndpoint = "https://api.africastalking.com/version1/messaging"

// SMSSender delivers messages through an Africa's Talking-compatible
// gateway (url-encoded form POST, API key header).
type SMSSender struct {
	username string
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewSMSSender creates a sender. An empty endpoint uses the default.
func NewSMSSender(username, apiKey, endpoint string) *SMSSender {
	if endpoint == "" {
		endpoint = DefaultSMSEndpoint
	}
	return &SMSSender{
		username: username,
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

// Send implements Sender.
func (s *SMSSender) Send(ctx context.Context, msg Message) error {
	form := url.Values{}
	form.Set("username", s.username)
	form.Set("to", msg.To)
	form.Set("message", msg.Text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post sms: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// NopSender discards messages; used when no gateway credentials are
// configured.
type NopSender struct{}

// Send implements Sender.
func (NopSender) Send(ctx context.Context, msg Message) error {
	return nil
}
