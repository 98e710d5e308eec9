package service

import (
	"fmt"

	"github.com/google/uuid"
	gomail "gopkg.in/gomail.v2"

	"github.com/saiindkan/sweets-n-snacks-production/internal/config"
)

// SMTPMailer delivers mail through the configured SMTP relay.
type SMTPMailer struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

// Send delivers one message and returns a message id for the caller to
// report back. The relay does not hand us its queue id, so we mint one.
func (m *SMTPMailer) Send(to, subject, html, text string) (string, error) {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("email send error: %v", err)
	}

	return uuid.New().String(), nil
}
