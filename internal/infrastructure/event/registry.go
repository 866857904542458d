package event

import (
	"slices"
	"sync"

	"github.com/markethub/backend/internal/domain/shared"
)

// HandlerRegistry tracks which handler wants which event type. A
// handler registered without types receives every event.
type HandlerRegistry struct {
	mu     sync.RWMutex
	byType map[string][]shared.EventHandler
	all    []shared.EventHandler
}

// NewHandlerRegistry creates an empty registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{byType: make(map[string][]shared.EventHandler)}
}

// Register subscribes the handler to the given event types, or to all
// events when none are given
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(eventTypes) == 0 {
		r.all = append(r.all, handler)
		return
	}
	for _, eventType := range eventTypes {
		r.byType[eventType] = append(r.byType[eventType], handler)
	}
}

// Unregister drops the handler from every subscription
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := func(h shared.EventHandler) bool { return h == handler }
	r.all = slices.DeleteFunc(r.all, drop)
	for eventType, handlers := range r.byType {
		remaining := slices.DeleteFunc(handlers, drop)
		if len(remaining) == 0 {
			delete(r.byType, eventType)
			continue
		}
		r.byType[eventType] = remaining
	}
}

// GetHandlers returns the handlers interested in eventType, catch-all
// handlers last
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typed := r.byType[eventType]
	handlers := make([]shared.EventHandler, 0, len(typed)+len(r.all))
	handlers = append(handlers, typed...)
	return append(handlers, r.all...)
}
