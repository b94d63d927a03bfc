package handler

import (
	"net/http"

	appidentity "github.com/erp/masterdata/internal/application/identity"
	"github.com/erp/masterdata/internal/infrastructure/auth"
	"github.com/erp/masterdata/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthHandler serves login, refresh and the permission snapshot
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	permService *appidentity.PermissionService
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(authService *appidentity.AuthService, permService *appidentity.PermissionService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(log),
		authService: authService,
		permService: permService,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=200"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type loginResponse struct {
	UserID      uuid.UUID       `json:"userId"`
	CompanyID   uuid.UUID       `json:"companyId"`
	Username    string          `json:"username"`
	DisplayName string          `json:"displayName"`
	Tokens      *auth.TokenPair `json:"tokens"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Fail(c, "Username and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Fail(c, "Invalid credentials")
		return
	}
	h.OK(c, loginResponse{
		UserID:      result.User.ID,
		CompanyID:   result.User.CompanyID,
		Username:    result.User.Username,
		DisplayName: result.User.DisplayName,
		Tokens:      result.Tokens,
	})
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Fail(c, "Refresh token is required")
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.Fail(c, "Invalid refresh token")
		return
	}
	h.OK(c, loginResponse{
		UserID:      result.User.ID,
		CompanyID:   result.User.CompanyID,
		Username:    result.User.Username,
		DisplayName: result.User.DisplayName,
		Tokens:      result.Tokens,
	})
}

// Permissions handles GET /identity/permissions: the caller's full grant
// snapshot, loaded once per session by clients.
func (h *AuthHandler) Permissions(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Missing authentication"))
		return
	}
	userID, _ := h.UserID(c)

	set, err := h.permService.Snapshot(c.Request.Context(), companyID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, set.Grants())
}
