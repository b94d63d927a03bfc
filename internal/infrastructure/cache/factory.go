package cache

import (
	"context"

	"github.com/erp/masterdata/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewPermissionCache builds the permission cache from configuration. When
// Redis is enabled but unreachable it logs a warning and falls back to the
// in-memory cache so the service still starts.
func NewPermissionCache(ctx context.Context, cfg *config.RedisConfig, log *zap.Logger) PermissionCache {
	if cfg == nil || !cfg.Enabled {
		log.Info("permission cache: using in-memory store")
		return NewMemoryPermissionCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	redisCache, err := NewRedisPermissionCache(ctx, client)
	if err != nil {
		log.Warn("permission cache: redis unavailable, falling back to in-memory store",
			zap.String("addr", cfg.Addr()),
			zap.Error(err))
		_ = client.Close()
		return NewMemoryPermissionCache()
	}

	log.Info("permission cache: using redis store", zap.String("addr", cfg.Addr()))
	return redisCache
}
