package middleware

import (
	"net/http"

	appidentity "github.com/erp/masterdata/internal/application/identity"
	"github.com/erp/masterdata/internal/domain/identity"
	"github.com/erp/masterdata/internal/domain/master"
	"github.com/erp/masterdata/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// EntityGate blocks the request unless the caller holds the given right for
// the entity type's (module, transaction) pair. A blocked request still
// answers HTTP 200; the locked result code in the envelope is the signal.
// Must run after JWTAuth.
func EntityGate(perms *appidentity.PermissionService, entityType master.EntityType, right identity.Right) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Missing authentication"))
			return
		}
		if !perms.HasPermission(c.Request.Context(), claims.CompanyID, claims.UserID,
			entityType.ModuleID, entityType.TransactionID, right) {
			c.AbortWithStatusJSON(http.StatusOK, dto.Locked())
			return
		}
		c.Next()
	}
}
