package replies

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"reactivation/internal/domain"
)

// WebhookMessage accepts both the flat {from, body, timestamp, displayName}
// shape and the WAHA event envelope, which nests the message under payload.
type WebhookMessage struct {
	Event       string          `json:"event,omitempty"`
	From        string          `json:"from,omitempty"`
	Body        string          `json:"body,omitempty"`
	Timestamp   FlexTime        `json:"timestamp"`
	DisplayName string          `json:"displayName,omitempty"`
	Name        string          `json:"name,omitempty"`
	FromMe      bool            `json:"fromMe,omitempty"`
	Payload     *WebhookMessage `json:"payload,omitempty"`
	Data        struct {
		NotifyName string `json:"notifyName,omitempty"`
	} `json:"_data"`
}

// Inbound flattens the message. Own echoes and group chats are ignored.
func (m WebhookMessage) Inbound() (Inbound, bool) {
	if m.Payload != nil {
		return m.Payload.Inbound()
	}
	if m.FromMe || strings.HasSuffix(m.From, "@g.us") || strings.TrimSpace(m.From) == "" {
		return Inbound{}, false
	}
	name := m.DisplayName
	if name == "" {
		name = m.Name
	}
	if name == "" {
		name = m.Data.NotifyName
	}
	return Inbound{
		From:        m.From,
		Body:        m.Body,
		Timestamp:   time.Time(m.Timestamp),
		DisplayName: name,
	}, true
}

// FlexTime decodes unix seconds, unix milliseconds or a date string.
type FlexTime time.Time

func (t *FlexTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = FlexTime(domain.ParseDate(s))
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	if n > 1e12 {
		*t = FlexTime(time.UnixMilli(n))
	} else {
		*t = FlexTime(time.Unix(n, 0))
	}
	return nil
}
