package middleware

import (
	"net/http"

	"github.com/erp/masterdata/internal/infrastructure/logger"
	"github.com/erp/masterdata/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyContext copies the company and user identity from the validated
// claims into the request context so repositories and the logger see them.
// Must run after JWTAuth.
func CompanyContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Missing authentication"))
			return
		}
		if claims.CompanyID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Token carries no company"))
			return
		}

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, log = logger.WithCompanyID(ctx, log, claims.CompanyID.String())
		ctx, _ = logger.WithUserID(ctx, log, claims.UserID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
