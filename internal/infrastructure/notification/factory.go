package notification

import (
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/config"
)

// NewSender builds the notification sender for the configured deployment:
// SMTP when a host is configured, log-only otherwise, always wrapped with
// the retry policy.
func NewSender(cfg *config.Config, logger *zap.Logger) shared.NotificationSender {
	var inner shared.NotificationSender
	if cfg.SMTP.Enabled() {
		inner = NewEmailSender(cfg.SMTP, logger.Named("mailer"))
	} else {
		logger.Info("smtp not configured, notifications are log-only")
		inner = NewLogSender(logger.Named("mailer"))
	}

	return NewRetryingSender(inner, cfg.Notify.MaxAttempts, cfg.Notify.RetryDelay, logger.Named("notify"))
}
