package handlers

import (
	"net/http"

	"blog-service/helper"
	"blog-service/middleware"
	"blog-service/models"
	"blog-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const invalidCredentials = "Invalid username or password"

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
	logger      *zap.Logger
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h, logger: logger}
}

// Login forwards the credentials to the auth service. Every failure is
// reported to the client as invalid credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body")
		return
	}
	if err := h.Helper.Check(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	resp, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn("login failed", zap.String("username", req.Username), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.LoginResponse{Message: invalidCredentials})
		return
	}

	h.Helper.SendSuccess(c, http.StatusOK, models.LoginResponse{Token: resp.Token, ExpiresIn: resp.ExpiresIn})
}

// GetUsers lists the users known to the auth service.
func (h *AuthHandler) GetUsers(c *gin.Context) {
	users, err := h.authService.GetAllUsers(c.Request.Context(), middleware.CurrentToken(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, http.StatusOK, users)
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	var req models.DeleteUserRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query parameters")
		return
	}
	if err := h.Helper.Check(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	if err := h.authService.DeleteUser(c.Request.Context(), req.Username, middleware.CurrentToken(c)); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
