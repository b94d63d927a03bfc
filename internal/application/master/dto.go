package master

import (
	"time"

	"github.com/erp/masterdata/internal/domain/master"
	"github.com/google/uuid"
)

// SaveRequest is the payload of the upsert endpoint. ID zero creates,
// non-zero updates. Audit fields are never accepted from the client.
type SaveRequest struct {
	ID       int64  `json:"id"`
	Code     string `json:"code" binding:"required,max=50,mastercode"`
	Name     string `json:"name" binding:"required,max=200"`
	SeqNo    int    `json:"seqNo" binding:"min=0"`
	IsActive bool   `json:"isActive"`
	Remarks  string `json:"remarks" binding:"max=500"`
}

// RecordResponse is the wire shape of a master record
type RecordResponse struct {
	ID         int64      `json:"id"`
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	SeqNo      int        `json:"seqNo"`
	IsActive   bool       `json:"isActive"`
	Remarks    string     `json:"remarks"`
	CompanyID  uuid.UUID  `json:"companyId"`
	CreateBy   uuid.UUID  `json:"createBy"`
	CreateDate time.Time  `json:"createDate"`
	EditBy     *uuid.UUID `json:"editBy,omitempty"`
	EditDate   *time.Time `json:"editDate,omitempty"`
}

// ToRecordResponse converts a domain record to its wire shape
func ToRecordResponse(r *master.Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		Code:       r.Code,
		Name:       r.Name,
		SeqNo:      r.SeqNo,
		IsActive:   r.IsActive,
		Remarks:    r.Remarks,
		CompanyID:  r.CompanyID,
		CreateBy:   r.CreateBy,
		CreateDate: r.CreateDate,
		EditBy:     r.EditBy,
		EditDate:   r.EditDate,
	}
}

// ToRecordResponses converts a page of domain records
func ToRecordResponses(records []master.Record) []RecordResponse {
	out := make([]RecordResponse, len(records))
	for i := range records {
		out[i] = ToRecordResponse(&records[i])
	}
	return out
}
