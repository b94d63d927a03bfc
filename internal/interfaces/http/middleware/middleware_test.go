package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appidentity "github.com/erp/masterdata/internal/application/identity"
	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/erp/masterdata/internal/domain/master"
	"github.com/erp/masterdata/internal/infrastructure/auth"
	"github.com/erp/masterdata/internal/infrastructure/cache"
	"github.com/erp/masterdata/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-at-least-32-characters!!", "masterdata-test", 15*time.Minute, 24*time.Hour)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDPreservesIncoming(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	r := gin.New()
	r.Use(JWTAuth(newJWTService()))
	r.GET("/secure", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	jwtSvc := newJWTService()
	userID := uuid.New()
	pair, err := jwtSvc.GeneratePair(userID, uuid.New(), "alice")
	require.NoError(t, err)

	r := gin.New()
	r.Use(JWTAuth(jwtSvc))
	r.GET("/secure", func(c *gin.Context) {
		claims, ok := GetClaims(c)
		require.True(t, ok)
		assert.Equal(t, userID, claims.UserID)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthSkipsConfiguredPaths(t *testing.T) {
	r := gin.New()
	r.Use(JWTAuth(newJWTService(), "/health"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

type staticGrantRepo struct {
	grants []identity.AccessGrant
}

func (r *staticGrantRepo) FindForUser(context.Context, uuid.UUID, uuid.UUID) ([]identity.AccessGrant, error) {
	return r.grants, nil
}

func (r *staticGrantRepo) SaveAll(context.Context, []identity.AccessGrant) error { return nil }

func gateFixture(t *testing.T, grants []identity.AccessGrant, right identity.Right) (*gin.Engine, string) {
	t.Helper()
	memCache := cache.NewMemoryPermissionCache()
	t.Cleanup(func() { _ = memCache.Close() })
	perms := appidentity.NewPermissionService(&staticGrantRepo{grants: grants}, memCache, zap.NewNop())

	entityType, ok := master.Lookup("jobstatus")
	require.True(t, ok)

	jwtSvc := newJWTService()
	pair, err := jwtSvc.GeneratePair(uuid.New(), uuid.New(), "alice")
	require.NoError(t, err)

	r := gin.New()
	r.Use(JWTAuth(jwtSvc))
	r.GET("/probe", EntityGate(perms, entityType, right), func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.SuccessMessage("through"))
	})
	return r, pair.AccessToken
}

func probeGate(t *testing.T, r *gin.Engine, token string) dto.Envelope {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env dto.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestEntityGateLocksWithoutRight(t *testing.T) {
	r, token := gateFixture(t, nil, identity.RightRead)
	env := probeGate(t, r, token)
	assert.Equal(t, dto.ResultLocked, env.Result)
}

func TestEntityGatePassesWithRight(t *testing.T) {
	r, token := gateFixture(t, []identity.AccessGrant{
		{ModuleID: 3, TransactionID: 5, IsRead: true},
	}, identity.RightRead)
	env := probeGate(t, r, token)
	assert.Equal(t, dto.ResultSuccess, env.Result)
}

func TestEntityGateChecksExactRight(t *testing.T) {
	// read is granted but the gate wants delete
	r, token := gateFixture(t, []identity.AccessGrant{
		{ModuleID: 3, TransactionID: 5, IsRead: true},
	}, identity.RightDelete)
	env := probeGate(t, r, token)
	assert.Equal(t, dto.ResultLocked, env.Result)
}
