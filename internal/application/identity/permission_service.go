package identity

import (
	"context"
	"time"

	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/erp/masterdata/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// snapshotTTL bounds how stale a cached grant snapshot can get. Grants
// change rarely; a short TTL keeps revocations from lingering too long.
const snapshotTTL = 5 * time.Minute

// PermissionService loads and caches per-user grant snapshots and answers
// the gate checks. A lookup that cannot be resolved fails closed.
type PermissionService struct {
	grants identity.GrantRepository
	cache  cache.PermissionCache
	log    *zap.Logger
}

// NewPermissionService creates a new permission service
func NewPermissionService(grants identity.GrantRepository, permCache cache.PermissionCache, log *zap.Logger) *PermissionService {
	return &PermissionService{grants: grants, cache: permCache, log: log}
}

// Snapshot returns the user's permission set, from cache when possible
func (s *PermissionService) Snapshot(ctx context.Context, companyID, userID uuid.UUID) (*identity.PermissionSet, error) {
	cached, ok, err := s.cache.Get(ctx, companyID, userID)
	if err != nil {
		// cache trouble is not an authorization failure; fall through
		s.log.Warn("permission cache read failed", zap.Error(err))
	} else if ok {
		return identity.NewPermissionSet(cached), nil
	}

	grants, err := s.grants.FindForUser(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, companyID, userID, grants, snapshotTTL); err != nil {
		s.log.Warn("permission cache write failed", zap.Error(err))
	}
	return identity.NewPermissionSet(grants), nil
}

// HasPermission reports whether the user holds the right for the pair.
// Any resolution error fails closed.
func (s *PermissionService) HasPermission(ctx context.Context, companyID, userID uuid.UUID, moduleID, transactionID int16, right identity.Right) bool {
	set, err := s.Snapshot(ctx, companyID, userID)
	if err != nil {
		s.log.Warn("permission lookup failed, denying",
			zap.String("userId", userID.String()),
			zap.Int16("moduleId", moduleID),
			zap.Int16("transactionId", transactionID),
			zap.Error(err))
		return false
	}
	return set.Has(moduleID, transactionID, right)
}

// Invalidate drops the user's cached snapshot, forcing a database reload on
// the next check. Called after grants change.
func (s *PermissionService) Invalidate(ctx context.Context, companyID, userID uuid.UUID) error {
	return s.cache.Invalidate(ctx, companyID, userID)
}
