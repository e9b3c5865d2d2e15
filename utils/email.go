package utils

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (c EmailConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// Mailer sends a single HTML email.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	config EmailConfig
	dialer *gomail.Dialer
}

// NewSMTPMailer creates a mailer for the given SMTP settings
func NewSMTPMailer(config EmailConfig) *SMTPMailer {
	port := config.Port
	if port == 0 {
		port = 587 // Default SMTP port
	}
	return &SMTPMailer{
		config: config,
		dialer: gomail.NewDialer(config.Host, port, config.Username, config.Password),
	}
}

// Send sends an email using SMTP
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// NotificationEmailBody renders the HTML body for an order notification
func NotificationEmailBody(title, message string) string {
	return fmt.Sprintf(`
		<h2>%s</h2>
		<p>%s</p>
		<p>Thank you for shopping with %s!</p>
	`, html.EscapeString(title), html.EscapeString(message), AppName)
}
