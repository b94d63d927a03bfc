package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/erp/masterdata/internal/domain/master"
	"github.com/erp/masterdata/internal/domain/shared"
	"github.com/erp/masterdata/internal/infrastructure/persistence/company"
	"github.com/erp/masterdata/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMasterRepository implements master.Repository using GORM
type GormMasterRepository struct {
	db *gorm.DB
}

// NewGormMasterRepository creates a new GORM-based master repository
func NewGormMasterRepository(db *gorm.DB) *GormMasterRepository {
	return &GormMasterRepository{db: db}
}

// FindPage retrieves one page of records and the total count for the filter
func (r *GormMasterRepository) FindPage(ctx context.Context, companyID uuid.UUID, entityType string, filter shared.ListFilter) ([]master.Record, int64, error) {
	filter = filter.Normalize()

	query := r.db.WithContext(ctx).
		Model(&models.MasterRecordModel{}).
		Scopes(company.Scope(companyID)).
		Where("entity_type = ?", entityType)

	if filter.Search != "" {
		// LOWER/LIKE keeps the query portable between postgres and the
		// sqlite driver used in tests.
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause, err := BuildOrderClause(filter.SortBy, filter.SortOrder, "seq_no asc, code asc", MasterSortFields)
	if err != nil {
		return nil, 0, err
	}

	var rows []models.MasterRecordModel
	if err := query.
		Order(orderClause).
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	records := make([]master.Record, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records, total, nil
}

// FindByID retrieves a record by its identifier
func (r *GormMasterRepository) FindByID(ctx context.Context, companyID uuid.UUID, entityType string, id int64) (*master.Record, error) {
	var row models.MasterRecordModel
	err := r.db.WithContext(ctx).
		Scopes(company.Scope(companyID)).
		Where("entity_type = ? AND id = ?", entityType, id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindByCode retrieves a record by its code. Codes are matched
// case-insensitively; the stored casing is returned.
func (r *GormMasterRepository) FindByCode(ctx context.Context, companyID uuid.UUID, entityType string, code string) (*master.Record, error) {
	var row models.MasterRecordModel
	err := r.db.WithContext(ctx).
		Scopes(company.Scope(companyID)).
		Where("entity_type = ? AND LOWER(code) = ?", entityType, strings.ToLower(code)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// ExistsByCode checks if a record with the given code exists
func (r *GormMasterRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, entityType string, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MasterRecordModel{}).
		Scopes(company.Scope(companyID)).
		Where("entity_type = ? AND LOWER(code) = ?", entityType, strings.ToLower(code)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists a record, creating when ID is zero and updating otherwise.
// On create the generated ID is written back to the record.
func (r *GormMasterRepository) Save(ctx context.Context, record *master.Record) error {
	row := models.MasterRecordModelFromDomain(record)
	if row.ID == 0 {
		if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
			return err
		}
		record.ID = row.ID
		return nil
	}
	return r.db.WithContext(ctx).
		Scopes(company.Scope(record.CompanyID)).
		Where("entity_type = ? AND id = ?", record.EntityType, record.ID).
		Select("code", "name", "seq_no", "is_active", "remarks", "edit_by", "edit_date").
		Updates(row).Error
}

// Delete removes a record by its identifier
func (r *GormMasterRepository) Delete(ctx context.Context, companyID uuid.UUID, entityType string, id int64) error {
	result := r.db.WithContext(ctx).
		Scopes(company.Scope(companyID)).
		Where("entity_type = ? AND id = ?", entityType, id).
		Delete(&models.MasterRecordModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
