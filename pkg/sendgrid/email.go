// Package sendgrid delivers HTML email drafts through the SendGrid v3 API.
package sendgrid

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendPath = "/v3/mail/send"

// Message is one email with a shared subject for every recipient.
type Message struct {
	To        []string
	Subject   string
	PlainText string
	HTML      string
}

type EmailService interface {
	Send(ctx context.Context, msg *Message) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

type Option func(*emailService)

// WithBaseURL points the client at another API host, such as a test server.
func WithBaseURL(baseURL string) Option {
	return func(e *emailService) {
		if baseURL != "" {
			e.client.Request.BaseURL = strings.TrimRight(baseURL, "/") + sendPath
		}
	}
}

func NewEmailService(apiKey string, fromEmail string, fromName string, opts ...Option) EmailService {
	e := &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Send implements EmailService.
func (e *emailService) Send(ctx context.Context, msg *Message) error {

	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(e.fromName, e.fromEmail))

	personalization := mail.NewPersonalization()
	for _, to := range msg.To {
		personalization.AddTos(mail.NewEmail("", to))
	}
	personalization.Subject = msg.Subject
	message.AddPersonalizations(personalization)

	if msg.PlainText != "" {
		message.AddContent(mail.NewContent("text/plain", msg.PlainText))
	}
	message.AddContent(mail.NewContent("text/html", msg.HTML))

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
