// internal/notification/email.go

package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService delivers email notifications
type EmailService interface {
	SendEmail(ctx context.Context, notification *EmailNotification) error
}

// SendGridEmailService implements EmailService using SendGrid
type SendGridEmailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendGridEmailService(apiKey, from string) EmailService {
	return &SendGridEmailService{
		apiKey:   apiKey,
		from:     from,
		fromName: "SociusFit",
	}
}

func (s *SendGridEmailService) SendEmail(ctx context.Context, notification *EmailNotification) error {
	from := mail.NewEmail(s.fromName, s.from)
	to := mail.NewEmail("", notification.To)

	message := mail.NewSingleEmail(from, notification.Subject, to, notification.Body, "")
	client := sendgrid.NewSendClient(s.apiKey)

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid returned error status: %d", response.StatusCode)
	}
	return nil
}

// MockEmailService logs instead of sending, for development and tests
type MockEmailService struct{}

func NewMockEmailService() EmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendEmail(ctx context.Context, notification *EmailNotification) error {
	log.Printf("[mock email] to %s: %s", notification.To, notification.Subject)
	return nil
}
