package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisPermissionCache is a Redis-backed PermissionCache shared across
// service instances. Snapshots are stored as JSON arrays of grants.
type RedisPermissionCache struct {
	client *redis.Client
}

// NewRedisPermissionCache creates a Redis-backed permission cache. It pings
// the server so a dead Redis is detected at startup rather than on the
// first gate check.
func NewRedisPermissionCache(ctx context.Context, client *redis.Client) (*RedisPermissionCache, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisPermissionCache{client: client}, nil
}

// Get returns the cached grants for the user
func (c *RedisPermissionCache) Get(ctx context.Context, companyID, userID uuid.UUID) ([]identity.AccessGrant, bool, error) {
	payload, err := c.client.Get(ctx, permissionKey(companyID, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read permission snapshot: %w", err)
	}
	var grants []identity.AccessGrant
	if err := json.Unmarshal(payload, &grants); err != nil {
		// treat a corrupt snapshot as a miss so it gets rewritten
		return nil, false, nil
	}
	return grants, true, nil
}

// Set stores the grants for the user
func (c *RedisPermissionCache) Set(ctx context.Context, companyID, userID uuid.UUID, grants []identity.AccessGrant, ttl time.Duration) error {
	payload, err := json.Marshal(grants)
	if err != nil {
		return fmt.Errorf("failed to marshal permission snapshot: %w", err)
	}
	if err := c.client.Set(ctx, permissionKey(companyID, userID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write permission snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for the user
func (c *RedisPermissionCache) Invalidate(ctx context.Context, companyID, userID uuid.UUID) error {
	if err := c.client.Del(ctx, permissionKey(companyID, userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate permission snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (c *RedisPermissionCache) Close() error {
	return c.client.Close()
}
