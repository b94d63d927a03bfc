// Package handler implements the HTTP handlers. Handlers translate between
// the wire envelope and the application services; they never touch the
// repositories directly.
package handler

import (
	"errors"
	"net/http"

	"github.com/erp/masterdata/internal/domain/shared"
	"github.com/erp/masterdata/internal/infrastructure/logger"
	"github.com/erp/masterdata/internal/interfaces/http/dto"
	"github.com/erp/masterdata/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides shared helpers for all handlers
type BaseHandler struct {
	log *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(log *zap.Logger) BaseHandler {
	return BaseHandler{log: log}
}

// CompanyID extracts the company id from the validated claims
func (h *BaseHandler) CompanyID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	return claims.CompanyID, true
}

// UserID extracts the user id from the validated claims
func (h *BaseHandler) UserID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// OK writes a success envelope
func (h *BaseHandler) OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Success(data))
}

// OKList writes a success envelope carrying a page and its total
func (h *BaseHandler) OKList(c *gin.Context, data interface{}, totalRecords int64) {
	c.JSON(http.StatusOK, dto.SuccessList(data, totalRecords))
}

// Fail writes a failure envelope. The HTTP status stays 200; clients read
// the result code.
func (h *BaseHandler) Fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.Failure(message))
}

// HandleError maps domain errors onto failure envelopes
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Fail(c, domainErr.Message)
		return
	}
	h.log.Error("unhandled error",
		zap.String("path", c.FullPath()),
		zap.String("requestId", logger.GetRequestID(c.Request.Context())),
		zap.Error(err))
	h.Fail(c, "Internal error")
}
