// Package company provides multi-company database scoping for GORM.
//
// Every master-data table carries a company_id column; queries must never
// cross company boundaries. The scope here is applied by every repository
// so the filter cannot be forgotten at individual call sites.
package company

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrCompanyIDRequired is returned when company_id is required but missing
var ErrCompanyIDRequired = errors.New("company_id is required but was not provided")

// Scope applies company filtering to GORM queries
func Scope(companyID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID == uuid.Nil {
			_ = db.AddError(ErrCompanyIDRequired)
			return db
		}
		return db.Where("company_id = ?", companyID)
	}
}
