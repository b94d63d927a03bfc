package cache

import (
	"context"
	"sync"
	"time"

	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/google/uuid"
)

type memoryEntry struct {
	grants    []identity.AccessGrant
	expiresAt time.Time
}

// MemoryPermissionCache is an in-process PermissionCache for single-instance
// deployments and tests.
type MemoryPermissionCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	done    chan struct{}
	once    sync.Once
}

// NewMemoryPermissionCache creates an in-memory permission cache with a
// background sweeper for expired entries.
func NewMemoryPermissionCache() *MemoryPermissionCache {
	c := &MemoryPermissionCache{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *MemoryPermissionCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Get returns the cached grants for the user
func (c *MemoryPermissionCache) Get(_ context.Context, companyID, userID uuid.UUID) ([]identity.AccessGrant, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[permissionKey(companyID, userID)]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	grants := make([]identity.AccessGrant, len(entry.grants))
	copy(grants, entry.grants)
	return grants, true, nil
}

// Set stores the grants for the user
func (c *MemoryPermissionCache) Set(_ context.Context, companyID, userID uuid.UUID, grants []identity.AccessGrant, ttl time.Duration) error {
	stored := make([]identity.AccessGrant, len(grants))
	copy(stored, grants)
	c.mu.Lock()
	c.entries[permissionKey(companyID, userID)] = memoryEntry{
		grants:    stored,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Invalidate drops the cached snapshot for the user
func (c *MemoryPermissionCache) Invalidate(_ context.Context, companyID, userID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, permissionKey(companyID, userID))
	c.mu.Unlock()
	return nil
}

// Close stops the background sweeper
func (c *MemoryPermissionCache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}
