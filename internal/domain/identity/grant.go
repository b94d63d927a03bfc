package identity

import (
	"context"

	"github.com/google/uuid"
)

// Right is one of the four granular access rights on a transaction.
type Right string

const (
	RightRead   Right = "isRead"
	RightCreate Right = "isCreate"
	RightEdit   Right = "isEdit"
	RightDelete Right = "isDelete"
)

// AccessGrant holds the four access booleans for one (module, transaction)
// pair, granted to a user within a company.
type AccessGrant struct {
	UserID        uuid.UUID `json:"userId"`
	CompanyID     uuid.UUID `json:"companyId"`
	ModuleID      int16     `json:"moduleId"`
	TransactionID int16     `json:"transactionId"`
	IsRead        bool      `json:"isRead"`
	IsCreate      bool      `json:"isCreate"`
	IsEdit        bool      `json:"isEdit"`
	IsDelete      bool      `json:"isDelete"`
}

// Allows reports whether the grant includes the given right.
func (g AccessGrant) Allows(right Right) bool {
	switch right {
	case RightRead:
		return g.IsRead
	case RightCreate:
		return g.IsCreate
	case RightEdit:
		return g.IsEdit
	case RightDelete:
		return g.IsDelete
	}
	return false
}

// GrantRepository loads access grants for a user within a company.
type GrantRepository interface {
	FindForUser(ctx context.Context, companyID, userID uuid.UUID) ([]AccessGrant, error)
	SaveAll(ctx context.Context, grants []AccessGrant) error
}

type grantKey struct {
	moduleID      int16
	transactionID int16
}

// PermissionSet is an immutable snapshot of a user's grants, assembled at
// session start. Lookups for (module, transaction) pairs with no grant
// return false for every right.
type PermissionSet struct {
	grants map[grantKey]AccessGrant
}

// NewPermissionSet builds a snapshot from a list of grants. Later duplicates
// for the same (module, transaction) pair win.
func NewPermissionSet(grants []AccessGrant) *PermissionSet {
	set := &PermissionSet{grants: make(map[grantKey]AccessGrant, len(grants))}
	for _, g := range grants {
		set.grants[grantKey{g.ModuleID, g.TransactionID}] = g
	}
	return set
}

// Has reports whether the snapshot includes the right for the pair.
// Absent grants fail closed.
func (s *PermissionSet) Has(moduleID, transactionID int16, right Right) bool {
	if s == nil {
		return false
	}
	g, ok := s.grants[grantKey{moduleID, transactionID}]
	if !ok {
		return false
	}
	return g.Allows(right)
}

// Grants returns the underlying grants, for serialization.
func (s *PermissionSet) Grants() []AccessGrant {
	out := make([]AccessGrant, 0, len(s.grants))
	for _, g := range s.grants {
		out = append(out, g)
	}
	return out
}
