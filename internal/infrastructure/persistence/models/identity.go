package models

import (
	"time"

	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Username     string    `gorm:"size:100;not null;uniqueIndex"`
	DisplayName  string    `gorm:"size:200"`
	PasswordHash string    `gorm:"size:200;not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		ID:           m.ID,
		CompanyID:    m.CompanyID,
		Username:     m.Username,
		DisplayName:  m.DisplayName,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserModelFromDomain converts a domain user to the model
func UserModelFromDomain(u *identity.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		CompanyID:    u.CompanyID,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// AccessGrantModel is the GORM model for access_grants: four booleans per
// (user, company, module, transaction).
type AccessGrantModel struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ModuleID      int16     `gorm:"primaryKey"`
	TransactionID int16     `gorm:"primaryKey"`
	IsRead        bool      `gorm:"not null;default:false"`
	IsCreate      bool      `gorm:"not null;default:false"`
	IsEdit        bool      `gorm:"not null;default:false"`
	IsDelete      bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AccessGrantModel) TableName() string {
	return "access_grants"
}

// ToDomain converts the model to a domain grant
func (m *AccessGrantModel) ToDomain() identity.AccessGrant {
	return identity.AccessGrant{
		UserID:        m.UserID,
		CompanyID:     m.CompanyID,
		ModuleID:      m.ModuleID,
		TransactionID: m.TransactionID,
		IsRead:        m.IsRead,
		IsCreate:      m.IsCreate,
		IsEdit:        m.IsEdit,
		IsDelete:      m.IsDelete,
	}
}

// AccessGrantModelFromDomain converts a domain grant to the model
func AccessGrantModelFromDomain(g identity.AccessGrant) AccessGrantModel {
	return AccessGrantModel{
		UserID:        g.UserID,
		CompanyID:     g.CompanyID,
		ModuleID:      g.ModuleID,
		TransactionID: g.TransactionID,
		IsRead:        g.IsRead,
		IsCreate:      g.IsCreate,
		IsEdit:        g.IsEdit,
		IsDelete:      g.IsDelete,
	}
}
