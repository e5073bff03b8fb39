package replies

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookMessageInbound(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		ok       bool
		from     string
		display  string
		received time.Time
	}{
		{
			name:     "flat with seconds",
			body:     `{"from":"66900000002","body":"oi","displayName":"Bruno","timestamp":1750064400}`,
			ok:       true,
			from:     "66900000002",
			display:  "Bruno",
			received: time.Unix(1750064400, 0),
		},
		{
			name:     "envelope with millis and notify name",
			body:     `{"event":"message","payload":{"from":"5566900000001@c.us","body":"oi","timestamp":1750064400000,"_data":{"notifyName":"Ana"}}}`,
			ok:       true,
			from:     "5566900000001@c.us",
			display:  "Ana",
			received: time.UnixMilli(1750064400000),
		},
		{name: "group chat", body: `{"from":"1203630@g.us","body":"oi"}`},
		{name: "own echo", body: `{"from":"5566900000001@c.us","fromMe":true,"body":"oi"}`},
		{name: "no sender", body: `{"body":"oi"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m WebhookMessage
			require.NoError(t, json.Unmarshal([]byte(tc.body), &m))
			in, ok := m.Inbound()
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			assert.Equal(t, tc.from, in.From)
			assert.Equal(t, tc.display, in.DisplayName)
			assert.True(t, in.Timestamp.Equal(tc.received))
		})
	}
}

func TestFlexTimeRejectsGarbage(t *testing.T) {
	var m WebhookMessage
	assert.Error(t, json.Unmarshal([]byte(`{"from":"66900000002","timestamp":true}`), &m))
}
