package middleware

import (
	"net/http"

	"github.com/erp/masterdata/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BodyLimit caps the request body size. Master-data payloads are small;
// anything larger than the cap is rejected before binding.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusOK, dto.Failure("Request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
