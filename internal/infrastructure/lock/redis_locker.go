package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/markethub/backend/internal/domain/catalog"
)

// releaseScript deletes the lock key only when it still holds the
// caller's token, so an Unlock after TTL expiry cannot release a lock
// another import has since acquired.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker implements the import lock on Redis so that imports stay
// mutually exclusive across process instances. The lock key carries a TTL
// as a safety net against crashed holders.
type RedisLocker struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisLocker creates a Redis-backed import locker
func NewRedisLocker(cfg RedisConfig, ttl time.Duration) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLocker{
		client:    client,
		keyPrefix: "import:lock:",
		ttl:       ttl,
	}, nil
}

// NewRedisLockerWithClient creates a locker with an existing Redis client
func NewRedisLockerWithClient(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:    client,
		keyPrefix: "import:lock:",
		ttl:       ttl,
	}
}

// TryLock attempts to acquire the shop's lock with SET NX, storing the
// release token as the key's value
func (l *RedisLocker) TryLock(ctx context.Context, shopName string) (string, error) {
	token := uuid.NewString()
	acquired, err := l.client.SetNX(ctx, l.keyPrefix+shopName, token, l.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to acquire import lock: %w", err)
	}
	if !acquired {
		return "", nil
	}
	return token, nil
}

// Unlock releases the shop's lock with a compare-and-delete
func (l *RedisLocker) Unlock(ctx context.Context, shopName, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.keyPrefix + shopName}, token).Err(); err != nil {
		return fmt.Errorf("failed to release import lock: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (l *RedisLocker) Close() error {
	return l.client.Close()
}

// Ensure RedisLocker implements ImportLocker
var _ catalog.ImportLocker = (*RedisLocker)(nil)
