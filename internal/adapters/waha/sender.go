// Package waha delivers WhatsApp messages through a WAHA (WhatsApp HTTP API)
// gateway, or only logs them in dry-run mode.
package waha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"reactivation/internal/domain"
	"reactivation/internal/ports"
)

var (
	_ ports.Sender = (*Client)(nil)
	_ ports.Sender = (*LogSender)(nil)
)

// CountryCode prefixes the 11-digit national numbers the campaign stores.
const CountryCode = "55"

type Client struct {
	baseURL string
	apiKey  string
	session string
	client  *http.Client
}

func New(baseURL, apiKey, session string, timeout time.Duration) *Client {
	if session == "" {
		session = "default"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		session: session,
		client:  &http.Client{Timeout: timeout},
	}
}

type sendTextRequest struct {
	Session string `json:"session"`
	ChatID  string `json:"chatId"`
	Text    string `json:"text"`
}

// ChatID renders a stored phone as a WhatsApp chat id.
func ChatID(phone string) string {
	return CountryCode + domain.NormalizePhone(phone) + "@c.us"
}

func (c *Client) Send(ctx context.Context, phone, text string) error {
	body, err := json.Marshal(sendTextRequest{Session: c.session, ChatID: ChatID(phone), Text: text})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sendText", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("waha request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("waha returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// LogSender is the dry-run transport: every message is logged and reported
// as delivered.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender { return &LogSender{log: log} }

func (s *LogSender) Send(_ context.Context, phone, text string) error {
	s.log.Info("dry-run message", zap.String("phone", phone), zap.Int("chars", len([]rune(text))), zap.String("text", text))
	return nil
}
