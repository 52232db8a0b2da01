// Package mail sends transactional email over SMTP.
// The auth usecase only sees the narrow Send method, so the delivery
// mechanism stays a black box to the rest of the system.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"task_backend/internal/config"
)

// SMTPSender delivers plain-text mail through a single SMTP endpoint.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPSender creates a sender from the SMTP configuration.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.User,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// Send delivers a single plain-text message to one recipient.
func (s *SMTPSender) Send(_ context.Context, to, subject, body string) error {
	addr := net.JoinHostPort(s.host, s.port)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
