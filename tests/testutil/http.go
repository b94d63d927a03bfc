package testutil

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appidentity "github.com/erp/masterdata/internal/application/identity"
	appmaster "github.com/erp/masterdata/internal/application/master"
	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/erp/masterdata/internal/infrastructure/auth"
	"github.com/erp/masterdata/internal/infrastructure/cache"
	"github.com/erp/masterdata/internal/infrastructure/config"
	"github.com/erp/masterdata/internal/infrastructure/persistence"
	"github.com/erp/masterdata/internal/interfaces/http/handler"
	"github.com/erp/masterdata/internal/interfaces/http/router"
	"gorm.io/gorm"
)

// Env is a fully wired server over an in-memory database, reachable
// through a real HTTP listener.
type Env struct {
	Server    *httptest.Server
	DB        *gorm.DB
	Token     string
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Grants    *persistence.GormGrantRepository
	Perms     *appidentity.PermissionService
}

// NewEnv starts a server with the given grants assigned to a fresh user.
// The returned token authenticates as that user.
func NewEnv(t *testing.T, grants []identity.AccessGrant) *Env {
	t.Helper()

	db := NewTestDB(t)
	log := zap.NewNop()

	memCache := cache.NewMemoryPermissionCache()
	t.Cleanup(func() { _ = memCache.Close() })

	userRepo := persistence.NewGormUserRepository(db)
	grantRepo := persistence.NewGormGrantRepository(db)
	masterRepo := persistence.NewGormMasterRepository(db)

	jwtSvc := auth.NewJWTService("test-secret-at-least-32-characters!!", "masterdata-test", 15*time.Minute, 24*time.Hour)
	permSvc := appidentity.NewPermissionService(grantRepo, memCache, log)
	authSvc := appidentity.NewAuthService(userRepo, jwtSvc, log)
	masterSvc := appmaster.NewService(masterRepo, log)

	companyID := uuid.New()
	userID := uuid.New()
	for i := range grants {
		grants[i].UserID = userID
		grants[i].CompanyID = companyID
	}
	if len(grants) > 0 {
		require.NoError(t, grantRepo.SaveAll(context.Background(), grants))
	}

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.HTTP.MaxBodySize = 1 << 20

	engine, err := router.New(router.Dependencies{
		Config:        cfg,
		Logger:        log,
		JWTService:    jwtSvc,
		AuthHandler:   handler.NewAuthHandler(authSvc, permSvc, log),
		MasterHandler: handler.NewMasterHandler(masterSvc, log),
		PermService:   permSvc,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	pair, err := jwtSvc.GeneratePair(userID, companyID, "alice")
	require.NoError(t, err)

	return &Env{
		Server:    srv,
		DB:        db,
		Token:     pair.AccessToken,
		CompanyID: companyID,
		UserID:    userID,
		Grants:    grantRepo,
		Perms:     permSvc,
	}
}

// FullGrant returns a grant with all four rights on the master-data module
func FullGrant(transactionID int16) identity.AccessGrant {
	return identity.AccessGrant{
		ModuleID:      3,
		TransactionID: transactionID,
		IsRead:        true,
		IsCreate:      true,
		IsEdit:        true,
		IsDelete:      true,
	}
}
