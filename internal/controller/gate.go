package controller

import "github.com/erp/masterdata/internal/domain/identity"

// Gate answers permission checks for the controller. Implementations must
// fail closed: unknown pairs and unknown rights are false.
type Gate interface {
	HasPermission(moduleID, transactionID int16, right identity.Right) bool
}

// SnapshotGate is a Gate over a grant snapshot fetched once per session,
// typically from the permissions endpoint.
type SnapshotGate struct {
	set *identity.PermissionSet
}

// NewSnapshotGate builds a gate from the session's grants
func NewSnapshotGate(grants []identity.AccessGrant) *SnapshotGate {
	return &SnapshotGate{set: identity.NewPermissionSet(grants)}
}

// HasPermission reports whether the snapshot includes the right
func (g *SnapshotGate) HasPermission(moduleID, transactionID int16, right identity.Right) bool {
	if g == nil {
		return false
	}
	return g.set.Has(moduleID, transactionID, right)
}
