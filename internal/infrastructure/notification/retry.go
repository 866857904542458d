package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/shared"
)

// RetryingSender wraps a sender with a fixed-delay retry policy.
// Delivery is attempted up to maxAttempts times; the delay between
// attempts is constant and the wait aborts on context cancellation.
type RetryingSender struct {
	inner       shared.NotificationSender
	maxAttempts int
	retryDelay  time.Duration
	logger      *zap.Logger
}

// NewRetryingSender decorates a sender with retries
func NewRetryingSender(inner shared.NotificationSender, maxAttempts int, retryDelay time.Duration, logger *zap.Logger) *RetryingSender {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryingSender{
		inner:       inner,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		logger:      logger,
	}
}

// Send delivers the message, retrying transient failures
func (s *RetryingSender) Send(ctx context.Context, to []string, subject, body string) error {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		lastErr = s.inner.Send(ctx, to, subject, body)
		if lastErr == nil {
			return nil
		}

		s.logger.Warn("notification delivery failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.maxAttempts),
			zap.String("subject", subject),
			zap.Error(lastErr),
		)

		if attempt == s.maxAttempts {
			break
		}

		timer := time.NewTimer(s.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("delivery failed after %d attempts: %w", s.maxAttempts, lastErr)
}

// Ensure RetryingSender implements NotificationSender
var _ shared.NotificationSender = (*RetryingSender)(nil)
