package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jrsteele09/go-session-auth/internal/config"
	"github.com/rs/zerolog"
)

var _ Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier sends mail through a plain-auth SMTP relay
type SMTPNotifier struct {
	host     string
	port     string
	account  string
	password string
	sender   string
	logger   zerolog.Logger
}

// NewSMTPNotifier creates an SMTP notifier from configuration
func NewSMTPNotifier(cfg config.SmtpConfig, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		host:     cfg.GetSmtpHost(),
		port:     cfg.GetSmtpPort(),
		account:  cfg.GetSmtpAccount(),
		password: cfg.GetSmtpPassword(),
		sender:   cfg.GetSmtpSender(),
		logger:   logger,
	}
}

func (n *SMTPNotifier) Send(_ context.Context, msg Message) error {
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		n.sender, msg.To, msg.Subject, msg.Body)

	auth := smtp.PlainAuth("", n.account, n.password, n.host)
	addr := fmt.Sprintf("%s:%s", n.host, n.port)

	if err := smtp.SendMail(addr, auth, n.sender, []string{msg.To}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email sent")
	return nil
}

var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes messages to the log instead of sending them. Used in
// development when no SMTP account is configured.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	n.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("email (log only)")
	return nil
}
