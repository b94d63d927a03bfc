// Package identity implements authentication and the permission snapshot
// used by the per-operation access gate.
package identity

import (
	"context"

	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/erp/masterdata/internal/domain/shared"
	"github.com/erp/masterdata/internal/infrastructure/auth"
	"github.com/erp/masterdata/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles login and token refresh
type AuthService struct {
	users identity.UserRepository
	jwt   *auth.JWTService
	log   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users identity.UserRepository, jwt *auth.JWTService, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, log: log}
}

// LoginResult carries the issued tokens and the user they belong to
type LoginResult struct {
	User   *identity.User
	Tokens *auth.TokenPair
}

// Login verifies the credentials and issues a token pair. Unknown users and
// wrong passwords return the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "identity", "login")
	defer span.End()

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, shared.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("login failed", zap.String("username", username))
		return nil, shared.ErrUnauthorized
	}

	tokens, err := s.jwt.GeneratePair(user.ID, user.CompanyID, user.Username)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.log.Info("login succeeded",
		zap.String("username", user.Username),
		zap.String("companyId", user.CompanyID.String()))
	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.jwt.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, shared.ErrUnauthorized
	}
	tokens, err := s.jwt.GeneratePair(user.ID, user.CompanyID, user.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: tokens}, nil
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
