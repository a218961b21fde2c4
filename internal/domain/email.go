package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the email sent when a guest profile is created.
type WelcomeEmailData struct {
	Email     string
	FirstName string
}

// RSVPNotificationEmailData holds data for the email sent to a host when a
// guest records an RSVP for their event.
type RSVPNotificationEmailData struct {
	HostEmail string
	HostName  string
	GuestName string
	EventName string
	Status    string
}

// EmailService defines the contract for sending domain-level emails. Failures
// are reported to callers but never block the triggering operation.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeEmailData) error
	SendRSVPNotification(ctx context.Context, data *RSVPNotificationEmailData) error
}
