package master

import (
	"context"

	"github.com/erp/masterdata/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for master records. Every
// operation is scoped to a company; records are invisible outside theirs.
type Repository interface {
	// FindPage returns one page of records plus the total record count
	// for the filter (ignoring pagination).
	FindPage(ctx context.Context, companyID uuid.UUID, entityType string, filter shared.ListFilter) ([]Record, int64, error)
	FindByID(ctx context.Context, companyID uuid.UUID, entityType string, id int64) (*Record, error)
	FindByCode(ctx context.Context, companyID uuid.UUID, entityType string, code string) (*Record, error)
	ExistsByCode(ctx context.Context, companyID uuid.UUID, entityType string, code string) (bool, error)
	Save(ctx context.Context, record *Record) error
	Delete(ctx context.Context, companyID uuid.UUID, entityType string, id int64) error
}
