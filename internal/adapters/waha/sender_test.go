package waha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSendPostsChatMessage(t *testing.T) {
	var got sendTextRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sendText", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		apiKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "secret", "", time.Second)
	require.NoError(t, c.Send(context.Background(), "(66) 99999-1111", "Oi Ana"))
	assert.Equal(t, "secret", apiKey)
	assert.Equal(t, sendTextRequest{Session: "default", ChatID: "5566999991111@c.us", Text: "Oi Ana"}, got)
}

func TestSendReportsGatewayErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "session not started", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := New(srv.URL, "", "main", time.Second).Send(context.Background(), "66999991111", "Oi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "session not started")
}

func TestSendHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, New(srv.URL, "", "", time.Second).Send(ctx, "66999991111", "Oi"))
}

func TestLogSenderAlwaysDelivers(t *testing.T) {
	assert.NoError(t, NewLogSender(zap.NewNop()).Send(context.Background(), "66999991111", "Oi"))
}
