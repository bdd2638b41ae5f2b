package adapter

import "context"

// SendEmailInput is one rendered message, such as a goal digest.
type SendEmailInput struct {
	To   string
	Name string

	Subject string
	HTML    string
	Text    string
}

// SendEmailResult carries the provider's id for a delivered message.
type SendEmailResult struct {
	MessageID string
}

// EmailSender delivers rendered messages. Implementations report a
// provider refusal as an EmailError so the digest endpoint can surface it.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}
