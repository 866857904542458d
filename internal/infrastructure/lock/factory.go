package lock

import (
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/infrastructure/config"
)

// NewLocker creates the import locker for the configured deployment.
// With a Redis host configured it builds a distributed lock; otherwise,
// or when Redis is unreachable, it falls back to the in-process lock.
func NewLocker(cfg *config.Config, logger *zap.Logger) catalog.ImportLocker {
	if !cfg.Redis.Enabled() {
		logger.Info("redis not configured, using in-process import lock")
		return NewMemoryLocker(cfg.Import.LockTTL)
	}

	locker, err := NewRedisLocker(RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Import.LockTTL)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-process import lock", zap.Error(err))
		return NewMemoryLocker(cfg.Import.LockTTL)
	}

	logger.Info("using redis import lock", zap.String("addr", cfg.Redis.Addr()))
	return locker
}
