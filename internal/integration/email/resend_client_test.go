package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/backend/config"
	"github.com/finplan/backend/internal/application/adapter"
	domainerror "github.com/finplan/backend/internal/domain/error"
)

func TestNewSender(t *testing.T) {
	sender, err := NewSender(config.EmailConfig{ResendAPIKey: "  ", FromEmail: "noreply@example.com"})
	require.NoError(t, err)
	assert.IsType(t, LogSender{}, sender)

	sender, err = NewSender(config.EmailConfig{ResendAPIKey: "re_test", FromName: "FinPlan", FromEmail: "noreply@example.com"})
	require.NoError(t, err)
	assert.IsType(t, &ResendClient{}, sender)
}

func TestResendClient_Send(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer server.Close()

	sender, err := NewSender(config.EmailConfig{
		ResendAPIKey:  "re_test",
		ResendBaseURL: server.URL,
		FromName:      "FinPlan",
		FromEmail:     "noreply@example.com",
	})
	require.NoError(t, err)

	res, err := sender.Send(context.Background(), adapter.SendEmailInput{
		To:      "asha@example.com",
		Name:    "Asha",
		Subject: "Your goal digest",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg_123", res.MessageID)
	assert.Equal(t, "FinPlan <noreply@example.com>", received["from"])
	assert.Equal(t, "Your goal digest", received["subject"])
}

func TestResendClient_SendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"bad from"}`))
	}))
	defer server.Close()

	client, err := NewResendClient("re_test", "", "noreply@example.com").WithBaseURL(server.URL)
	require.NoError(t, err)

	_, err = client.Send(context.Background(), adapter.SendEmailInput{To: "asha@example.com", Subject: "x", Text: "x"})
	var emailErr *domainerror.EmailError
	require.ErrorAs(t, err, &emailErr)
	assert.Equal(t, domainerror.ErrCodeEmailSendFailed, emailErr.Code)
	assert.ErrorIs(t, err, domainerror.ErrEmailSendFailed)
}

func TestLogSender(t *testing.T) {
	res, err := LogSender{}.Send(context.Background(), adapter.SendEmailInput{To: "asha@example.com", Subject: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "log-only", res.MessageID)
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "FinPlan <noreply@example.com>", formatAddress("FinPlan", "noreply@example.com"))
	assert.Equal(t, "noreply@example.com", formatAddress(" ", "noreply@example.com"))
}
