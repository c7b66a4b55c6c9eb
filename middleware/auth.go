package middleware

import (
	"net/http"

	"blog-service/helper"
	"blog-service/models"
	"blog-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userKey  = "user"
	tokenKey = "token"
)

// AuthRequired validates the bearer token with the auth service and stores
// the resolved identity and the raw token in the context.
func AuthRequired(authService services.AuthService, h *helper.HTTPHelper, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.SendMessage(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token, err := authService.ExtractToken(authHeader)
		if err != nil {
			h.SendMessage(c, http.StatusUnauthorized, "Bearer token required")
			return
		}

		valid, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			h.SendError(c, err)
			return
		}
		if !valid {
			h.SendMessage(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := authService.GetUserDetails(c.Request.Context(), token)
		if err != nil {
			h.SendError(c, err)
			return
		}

		logger.Debug("authenticated request",
			zap.String("user", user.Username),
			zap.Strings("roles", user.Roles),
		)

		c.Set(userKey, *user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireRole rejects callers whose roles do not include role.
func RequireRole(role string, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			h.SendMessage(c, http.StatusUnauthorized, "User not authenticated")
			return
		}
		if !user.HasRole(role) {
			h.SendMessage(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity stored by AuthRequired.
func CurrentUser(c *gin.Context) (models.UserDetails, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.UserDetails{}, false
	}
	user, ok := v.(models.UserDetails)
	return user, ok
}

// CurrentToken returns the bearer token stored by AuthRequired.
func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
