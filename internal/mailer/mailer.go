// Package mailer delivers outgoing account e-mail.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"yamdb/internal/config"

	mail "github.com/go-mail/mail/v2"
)

// Mailer sends a plain-text message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New picks the delivery backend configured by MAIL_BACKEND.
func New(cfg *config.Config, log *slog.Logger) Mailer {
	if cfg.MailBackend == "smtp" {
		return NewSMTPMailer(cfg)
	}
	return NewLogMailer(log)
}

type SMTPMailer struct {
	dialer *mail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	d := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	d.Timeout = 10 * time.Second
	if cfg.IsProduction() {
		d.StartTLSPolicy = mail.MandatoryStartTLS
	}
	return &SMTPMailer{dialer: d, from: cfg.MailFrom}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them. Development only.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.log.InfoContext(ctx, "mail delivered to log", "to", to, "subject", subject, "body", body)
	return nil
}
