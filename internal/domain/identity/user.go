package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an authenticated principal scoped to one company.
type User struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Username     string
	DisplayName  string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Save(ctx context.Context, user *User) error
}
