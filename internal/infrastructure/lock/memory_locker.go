package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/catalog"
)

type memoryLease struct {
	token  string
	expiry time.Time
}

// MemoryLocker implements the import lock in process memory. It is the
// fallback for single-instance deployments without Redis; it does not
// coordinate across processes.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]memoryLease // shop name -> current lease
	ttl  time.Duration
}

// NewMemoryLocker creates an in-memory import locker
func NewMemoryLocker(ttl time.Duration) *MemoryLocker {
	return &MemoryLocker{
		held: make(map[string]memoryLease),
		ttl:  ttl,
	}
}

// TryLock attempts to acquire the shop's lock
func (l *MemoryLocker) TryLock(_ context.Context, shopName string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if lease, ok := l.held[shopName]; ok && now.Before(lease.expiry) {
		return "", nil
	}

	token := uuid.NewString()
	l.held[shopName] = memoryLease{token: token, expiry: now.Add(l.ttl)}
	return token, nil
}

// Unlock releases the shop's lock if the token still owns it. A stale
// token (the lease expired and someone else acquired) is a no-op.
func (l *MemoryLocker) Unlock(_ context.Context, shopName, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lease, ok := l.held[shopName]; ok && lease.token == token {
		delete(l.held, shopName)
	}
	return nil
}

// Ensure MemoryLocker implements ImportLocker
var _ catalog.ImportLocker = (*MemoryLocker)(nil)
