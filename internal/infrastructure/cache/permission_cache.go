// Package cache provides the permission snapshot cache.
//
// Grants are loaded once per session and reused for every gate check, so
// the store in front of the database must be cheap to hit and safe to lose.
// A missing or failed cache read always falls through to the database.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/google/uuid"
)

// PermissionCache stores per-user grant snapshots
type PermissionCache interface {
	// Get returns the cached grants for the user, or (nil, false, nil)
	// on a cache miss.
	Get(ctx context.Context, companyID, userID uuid.UUID) ([]identity.AccessGrant, bool, error)
	Set(ctx context.Context, companyID, userID uuid.UUID, grants []identity.AccessGrant, ttl time.Duration) error
	// Invalidate drops the cached snapshot for the user
	Invalidate(ctx context.Context, companyID, userID uuid.UUID) error
	Close() error
}

func permissionKey(companyID, userID uuid.UUID) string {
	return fmt.Sprintf("perm:%s:%s", companyID, userID)
}
