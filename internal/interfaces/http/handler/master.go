package handler

import (
	"net/http"
	"strconv"

	appmaster "github.com/erp/masterdata/internal/application/master"
	"github.com/erp/masterdata/internal/domain/shared"
	"github.com/erp/masterdata/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MasterHandler serves the master-data endpoints. One instance serves every
// entity type; the entity type name is bound per route.
type MasterHandler struct {
	BaseHandler
	service *appmaster.Service
}

// NewMasterHandler creates a master-data handler
func NewMasterHandler(service *appmaster.Service, log *zap.Logger) *MasterHandler {
	return &MasterHandler{BaseHandler: NewBaseHandler(log), service: service}
}

// List handles GET /master/<entity>.get
func (h *MasterHandler) List(entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, ok := h.CompanyID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Missing authentication"))
			return
		}

		var req dto.ListRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			h.Fail(c, "Invalid list parameters")
			return
		}

		result, err := h.service.List(c.Request.Context(), companyID, entityType, shared.ListFilter{
			Search:     req.Search,
			SortBy:     req.SortBy,
			SortOrder:  req.SortOrder,
			PageNumber: req.PageNumber,
			PageSize:   req.PageSize,
		})
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if result.Total == 0 {
			// empty result is a failure envelope, not an empty success;
			// clients show "no data" off the result code
			c.JSON(http.StatusOK, dto.Failure("No data found"))
			return
		}
		h.OKList(c, appmaster.ToRecordResponses(result.Records), result.Total)
	}
}

// GetByCode handles GET /master/<entity>.getByCode/:code
func (h *MasterHandler) GetByCode(entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, ok := h.CompanyID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Missing authentication"))
			return
		}

		code := c.Param("code")
		record, err := h.service.GetByCode(c.Request.Context(), companyID, entityType, code)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.OK(c, appmaster.ToRecordResponse(record))
	}
}

// Save handles POST /master/<entity>.add. Creates when id is not positive,
// updates otherwise.
func (h *MasterHandler) Save(entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, ok := h.CompanyID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Missing authentication"))
			return
		}
		userID, _ := h.UserID(c)

		var req appmaster.SaveRequest
		// the permission gate already peeked at the body; bind from the
		// cached copy rather than the consumed stream
		if err := c.ShouldBindBodyWithJSON(&req); err != nil {
			h.Fail(c, "Invalid request body")
			return
		}

		record, err := h.service.Upsert(c.Request.Context(), companyID, userID, entityType, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.OK(c, appmaster.ToRecordResponse(record))
	}
}

// Delete handles DELETE /master/<entity>.delete/:id
func (h *MasterHandler) Delete(entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, ok := h.CompanyID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Missing authentication"))
			return
		}

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			h.Fail(c, "Invalid id")
			return
		}

		if err := h.service.Delete(c.Request.Context(), companyID, entityType, id); err != nil {
			h.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.SuccessMessage("Record deleted"))
	}
}
