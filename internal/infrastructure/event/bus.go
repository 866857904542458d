package event

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/shared"
)

// InMemoryEventBus delivers domain events to registered handlers on
// their own goroutines, so Publish returns without waiting for any
// handler. Handler failures and panics are logged and never reach the
// publisher; a slow or broken consumer cannot stall or fail the
// operation that emitted the event.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	inflight sync.WaitGroup
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus creates a bus with no subscriptions
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish dispatches each event to every interested handler and returns
// immediately. Handlers run detached from the caller's cancellation so
// a finished HTTP request does not abort an in-flight delivery; context
// values (request id) are preserved.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	ctx = context.WithoutCancel(ctx)
	for _, evt := range events {
		for _, handler := range b.registry.GetHandlers(evt.EventType()) {
			b.inflight.Add(1)
			go func() {
				defer b.inflight.Done()
				b.deliver(ctx, handler, evt)
			}()
		}
	}
	return nil
}

// Subscribe registers a handler. With no explicit event types the
// handler's own EventTypes decide what it receives.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes the handler from all event types
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// Start marks the bus ready. Goroutines are spawned per delivery, so
// there is no background machinery to spin up.
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.logger.Info("event bus started")
	return nil
}

// Stop waits for in-flight deliveries, up to the context deadline
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		b.logger.Warn("event bus stop timed out with deliveries in flight")
		return ctx.Err()
	}
}

func (b *InMemoryEventBus) deliver(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", evt.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	start := time.Now()
	if err := handler.Handle(ctx, evt); err != nil {
		b.logger.Error("event handler failed",
			zap.String("event_type", evt.EventType()),
			zap.String("event_id", evt.EventID().String()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
	}
}
