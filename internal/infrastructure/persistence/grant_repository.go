package persistence

import (
	"context"

	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/erp/masterdata/internal/infrastructure/persistence/company"
	"github.com/erp/masterdata/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGrantRepository implements identity.GrantRepository using GORM
type GormGrantRepository struct {
	db *gorm.DB
}

// NewGormGrantRepository creates a new GORM-based grant repository
func NewGormGrantRepository(db *gorm.DB) *GormGrantRepository {
	return &GormGrantRepository{db: db}
}

// FindForUser retrieves all grants of a user within a company
func (r *GormGrantRepository) FindForUser(ctx context.Context, companyID, userID uuid.UUID) ([]identity.AccessGrant, error) {
	var rows []models.AccessGrantModel
	err := r.db.WithContext(ctx).
		Scopes(company.Scope(companyID)).
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	grants := make([]identity.AccessGrant, len(rows))
	for i := range rows {
		grants[i] = rows[i].ToDomain()
	}
	return grants, nil
}

// SaveAll upserts a batch of grants
func (r *GormGrantRepository) SaveAll(ctx context.Context, grants []identity.AccessGrant) error {
	if len(grants) == 0 {
		return nil
	}
	rows := make([]models.AccessGrantModel, len(grants))
	for i, g := range grants {
		rows[i] = models.AccessGrantModelFromDomain(g)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "company_id"},
				{Name: "module_id"}, {Name: "transaction_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"is_read", "is_create", "is_edit", "is_delete"}),
		}).
		Create(&rows).Error
}
