// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/finplan/backend/config"
	"github.com/finplan/backend/internal/application/adapter"
	domainerror "github.com/finplan/backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// WithBaseURL points the client at another Resend-compatible host.
func (c *ResendClient) WithBaseURL(rawURL string) (*ResendClient, error) {
	base, err := url.Parse(strings.TrimSuffix(rawURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid resend base url: %w", err)
	}
	c.client.BaseURL = base
	return c, nil
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	params := &resend.SendEmailRequest{
		From:    formatAddress(c.fromName, c.fromEmail),
		To:      []string{formatAddress(input.Name, input.To)},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailSendFailed,
			"email provider rejected the message",
			fmt.Errorf("%w: %w", domainerror.ErrEmailSendFailed, err),
		)
	}

	return &adapter.SendEmailResult{
		MessageID: resp.Id,
	}, nil
}

// LogSender writes emails to the log instead of sending them.
// It stands in for Resend when no API key is configured.
type LogSender struct{}

// Send logs the email and reports a synthetic message id.
func (LogSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	slog.Info("Email not sent, no provider configured",
		"to", input.To,
		"subject", input.Subject,
		"text_bytes", len(input.Text),
	)
	return &adapter.SendEmailResult{MessageID: "log-only"}, nil
}

// NewSender returns a Resend sender, or a LogSender when no API key is configured.
func NewSender(cfg config.EmailConfig) (adapter.EmailSender, error) {
	if strings.TrimSpace(cfg.ResendAPIKey) == "" {
		slog.Warn("RESEND_API_KEY not set, emails will only be logged")
		return LogSender{}, nil
	}
	client := NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail)
	if cfg.ResendBaseURL == "" {
		return client, nil
	}
	return client.WithBaseURL(cfg.ResendBaseURL)
}

func formatAddress(name, email string) string {
	if strings.TrimSpace(name) == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = LogSender{}
)
