package models

import (
	"time"

	"github.com/erp/masterdata/internal/domain/master"
	"github.com/google/uuid"
)

// MasterRecordModel is the GORM model for master_records. All entity types
// share the table; entity_type discriminates. The unique index on
// (entity_type, company_id, code) is the authoritative uniqueness check.
type MasterRecordModel struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	EntityType string     `gorm:"size:50;not null;uniqueIndex:ux_master_type_company_code,priority:1"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:ux_master_type_company_code,priority:2;index:idx_master_company"`
	Code       string     `gorm:"size:50;not null;uniqueIndex:ux_master_type_company_code,priority:3"`
	Name       string     `gorm:"size:200;not null"`
	SeqNo      int        `gorm:"not null;default:0"`
	IsActive   bool       `gorm:"not null;default:true"`
	Remarks    string     `gorm:"size:500"`
	CreateBy   uuid.UUID  `gorm:"type:uuid;not null"`
	CreateDate time.Time  `gorm:"not null"`
	EditBy     *uuid.UUID `gorm:"type:uuid"`
	EditDate   *time.Time
}

// TableName returns the table name for GORM
func (MasterRecordModel) TableName() string {
	return "master_records"
}

// ToDomain converts the model to a domain record
func (m *MasterRecordModel) ToDomain() *master.Record {
	return &master.Record{
		ID:         m.ID,
		EntityType: m.EntityType,
		CompanyID:  m.CompanyID,
		Code:       m.Code,
		Name:       m.Name,
		SeqNo:      m.SeqNo,
		IsActive:   m.IsActive,
		Remarks:    m.Remarks,
		CreateBy:   m.CreateBy,
		CreateDate: m.CreateDate,
		EditBy:     m.EditBy,
		EditDate:   m.EditDate,
	}
}

// MasterRecordModelFromDomain converts a domain record to the model
func MasterRecordModelFromDomain(r *master.Record) *MasterRecordModel {
	return &MasterRecordModel{
		ID:         r.ID,
		EntityType: r.EntityType,
		CompanyID:  r.CompanyID,
		Code:       r.Code,
		Name:       r.Name,
		SeqNo:      r.SeqNo,
		IsActive:   r.IsActive,
		Remarks:    r.Remarks,
		CreateBy:   r.CreateBy,
		CreateDate: r.CreateDate,
		EditBy:     r.EditBy,
		EditDate:   r.EditDate,
	}
}
