package services

import (
	"context"
	"fmt"
	"log"

	"gatherly/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcomeMessage sends a welcome email using the "welcome" template and the given data.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render welcome template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	log.Printf("[EMAIL] Welcome email sent to %s", data.Email)
	return nil
}

// SendRSVPNotification emails the host using the "rsvp_notification" template.
func (s *emailService) SendRSVPNotification(ctx context.Context, data *domain.RSVPNotificationEmailData) error {
	if data == nil {
		return fmt.Errorf("rsvp notification data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("rsvp_notification", data)
	if err != nil {
		return fmt.Errorf("failed to render rsvp_notification template: %w", err)
	}
	if err := s.mailer.Send(data.HostEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send rsvp notification email: %w", err)
	}
	log.Printf("[EMAIL] RSVP notification sent to %s", data.HostEmail)
	return nil
}
