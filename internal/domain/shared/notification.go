package shared

import "context"

// NotificationSender delivers out-of-band messages to users (email today,
// possibly other channels later). Implementations are responsible for their
// own retry policy; callers treat delivery as best-effort unless stated
// otherwise.
type NotificationSender interface {
	Send(ctx context.Context, to []string, subject, body string) error
}
