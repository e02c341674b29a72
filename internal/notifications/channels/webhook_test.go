package channels

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nftpawn/internal/notifications"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWebhookSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sender := NewWebhookSender(discardLogger())
	err := sender.Send(context.Background(), srv.URL, notifications.Message{
		Subject: "Loan #65 has been repaid",
		Body:    "The borrower repaid the loan.",
	})
	require.NoError(t, err)
	assert.Equal(t, "**Loan #65 has been repaid**\nThe borrower repaid the loan.", got["content"])
}

func TestWebhookNon2xxIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	sender := NewWebhookSender(discardLogger())
	err := sender.Send(context.Background(), srv.URL, notifications.Message{Subject: "s", Body: "b"})
	assert.ErrorContains(t, err, "429")
}

func TestWebhookUnreachableDestination(t *testing.T) {
	sender := NewWebhookSender(discardLogger())
	err := sender.Send(context.Background(), "http://127.0.0.1:1/hook", notifications.Message{})
	assert.Error(t, err)
}

func TestSenderKinds(t *testing.T) {
	assert.Equal(t, notifications.ChannelWebhook, NewWebhookSender(discardLogger()).Kind())
}
