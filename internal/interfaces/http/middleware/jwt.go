package middleware

import (
	"net/http"
	"strings"

	"github.com/erp/masterdata/internal/infrastructure/auth"
	"github.com/erp/masterdata/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key the validated claims are stored under
const ClaimsKey = "claims"

// JWTAuth validates the bearer token and stores the claims on the context.
// Paths in skipPaths pass through without a token.
func JWTAuth(jwtService *auth.JWTService, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.FullPath()] || skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Missing authorization header"))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Invalid authorization header"))
			return
		}

		claims, err := jwtService.ValidateAccess(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Invalid or expired token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetClaims returns the validated claims from the context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
