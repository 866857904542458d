package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/config"
)

// EmailSender delivers notifications over SMTP
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewEmailSender creates an SMTP notification sender
func NewEmailSender(cfg config.SMTPConfig, logger *zap.Logger) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// Send delivers one message to the given recipients
func (s *EmailSender) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent",
		zap.Strings("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// LogSender logs notifications instead of delivering them. It is the
// fallback when SMTP is not configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a log-only notification sender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message
func (s *LogSender) Send(_ context.Context, to []string, subject, body string) error {
	s.logger.Info("notification (smtp disabled)",
		zap.Strings("to", to),
		zap.String("subject", subject),
		zap.Int("body_size", len(body)),
	)
	return nil
}

// Ensure both senders implement NotificationSender
var (
	_ shared.NotificationSender = (*EmailSender)(nil)
	_ shared.NotificationSender = (*LogSender)(nil)
)
