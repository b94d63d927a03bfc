// Package router assembles the gin engine and registers all routes
package router

import (
	"net/http"

	appidentity "github.com/erp/masterdata/internal/application/identity"
	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/erp/masterdata/internal/domain/master"
	"github.com/erp/masterdata/internal/infrastructure/auth"
	"github.com/erp/masterdata/internal/infrastructure/config"
	"github.com/erp/masterdata/internal/infrastructure/logger"
	"github.com/erp/masterdata/internal/interfaces/http/handler"
	"github.com/erp/masterdata/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Dependencies carries everything the router needs
type Dependencies struct {
	Config        *config.Config
	Logger        *zap.Logger
	JWTService    *auth.JWTService
	AuthHandler   *handler.AuthHandler
	MasterHandler *handler.MasterHandler
	PermService   *appidentity.PermissionService
	HealthCheck   func() error
}

// New builds the gin engine with middleware and all routes registered
func New(deps Dependencies) (*gin.Engine, error) {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := middleware.SetupValidator(); err != nil {
		return nil, err
	}

	r := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(deps.Config.HTTP.TrustedProxies); err != nil {
			return nil, err
		}
	}

	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(logger.Recovery(deps.Logger))
	r.Use(middleware.CORS(deps.Config.HTTP.CORSAllowOrigins))
	r.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))
	if deps.Config.Telemetry.Enabled {
		r.Use(otelgin.Middleware(deps.Config.Telemetry.ServiceName))
	}

	r.GET("/health", func(c *gin.Context) {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", deps.AuthHandler.Login)
	authGroup.POST("/refresh", deps.AuthHandler.Refresh)

	secured := api.Group("")
	secured.Use(middleware.JWTAuth(deps.JWTService))
	secured.Use(middleware.CompanyContext())

	secured.GET("/identity/permissions", deps.AuthHandler.Permissions)

	registerMasterRoutes(secured.Group("/master"), deps.MasterHandler, deps.PermService)

	return r, nil
}

// registerMasterRoutes wires the four endpoints for every entity type in the
// catalog. Each route carries the gate for its own access right.
func registerMasterRoutes(group *gin.RouterGroup, h *handler.MasterHandler, perms *appidentity.PermissionService) {
	for _, et := range master.Catalog() {
		group.GET("/"+et.Name+".get",
			middleware.EntityGate(perms, et, identity.RightRead),
			h.List(et.Name))
		group.GET("/"+et.Name+".getByCode/:code",
			middleware.EntityGate(perms, et, identity.RightRead),
			h.GetByCode(et.Name))
		group.POST("/"+et.Name+".add",
			saveGate(perms, et),
			h.Save(et.Name))
		group.DELETE("/"+et.Name+".delete/:id",
			middleware.EntityGate(perms, et, identity.RightDelete),
			h.Delete(et.Name))
	}
}

// saveGate picks the right to check from the payload: a positive id needs
// edit, anything else needs create, mirroring the upsert's split. The body
// is rebound later by the handler, so the gate peeks without consuming it.
func saveGate(perms *appidentity.PermissionService, et master.EntityType) gin.HandlerFunc {
	createGate := middleware.EntityGate(perms, et, identity.RightCreate)
	editGate := middleware.EntityGate(perms, et, identity.RightEdit)
	return func(c *gin.Context) {
		var probe struct {
			ID int64 `json:"id"`
		}
		if err := c.ShouldBindBodyWithJSON(&probe); err != nil {
			// malformed bodies reach the handler and fail binding there
			createGate(c)
			return
		}
		if probe.ID > 0 {
			editGate(c)
			return
		}
		createGate(c)
	}
}
