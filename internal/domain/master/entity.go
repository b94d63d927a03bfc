package master

import (
	"strings"
	"time"

	"github.com/erp/masterdata/internal/domain/shared"
	"github.com/google/uuid"
)

// Record is a master-data entry: a simple reference/lookup record used
// elsewhere in the ERP as a foreign-key choice. All entity types share this
// shape; EntityType discriminates between them.
type Record struct {
	ID         int64
	EntityType string
	CompanyID  uuid.UUID
	Code       string
	Name       string
	SeqNo      int
	IsActive   bool
	Remarks    string
	CreateBy   uuid.UUID
	CreateDate time.Time
	EditBy     *uuid.UUID
	EditDate   *time.Time
}

const (
	maxCodeLength    = 50
	maxNameLength    = 200
	maxRemarksLength = 500
)

// NewRecord creates a new master record for the given company. The numeric
// id is assigned by the database on save.
func NewRecord(entityType string, companyID, createdBy uuid.UUID, code, name string) (*Record, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if err := validateCodeName(code, name); err != nil {
		return nil, err
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Company is required")
	}
	return &Record{
		EntityType: entityType,
		CompanyID:  companyID,
		Code:       code,
		Name:       name,
		IsActive:   true,
		CreateBy:   createdBy,
		CreateDate: time.Now().UTC(),
	}, nil
}

// ApplyEdit replaces the mutable fields of the record and stamps the
// edit audit pair. The upsert endpoint is full-replace, not patch.
func (r *Record) ApplyEdit(editedBy uuid.UUID, code, name string, seqNo int, isActive bool, remarks string) error {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if err := validateCodeName(code, name); err != nil {
		return err
	}
	now := time.Now().UTC()
	r.Code = code
	r.Name = name
	r.SeqNo = seqNo
	r.IsActive = isActive
	r.Remarks = remarks
	r.EditBy = &editedBy
	r.EditDate = &now
	return nil
}

func validateCodeName(code, name string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_INPUT", "Code is required")
	}
	if len(code) > maxCodeLength {
		return shared.NewDomainError("INVALID_INPUT", "Code exceeds maximum length")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Name is required")
	}
	if len(name) > maxNameLength {
		return shared.NewDomainError("INVALID_INPUT", "Name exceeds maximum length")
	}
	return nil
}
