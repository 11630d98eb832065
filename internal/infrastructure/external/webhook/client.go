package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/veritasai/veritas-backend/pkg/config"
)

const maxErrorBody = 1024

// Client posts emails to the relay webhook
type Client struct {
	url        string
	secret     string
	source     string
	userAgent  string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a webhook client from the webhook config
func NewClient(cfg *config.WebhookConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:        cfg.URL,
		secret:     cfg.Secret,
		source:     orDefault(cfg.Source, "veritas-ai-backend"),
		userAgent:  orDefault(cfg.UserAgent, "Veritas-AI-Backend/1.0"),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Send relays a single email. A nil error means the webhook accepted it.
func (c *Client) Send(ctx context.Context, msg Message) error {
	payload := Payload{
		To:        msg.To,
		From:      msg.From,
		Subject:   msg.Subject,
		HTML:      msg.HTML,
		Timestamp: float64(c.now().UnixNano()) / float64(time.Second),
		Source:    c.source,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.secret != "" {
		req.Header.Set(SignatureHeader, Sign(c.secret, body))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return ErrTimeout
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(text)}
	}

	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body)
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
