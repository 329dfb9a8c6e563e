package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/strivetrack/strivetrack-api/internal/constants"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/logger"
	"github.com/strivetrack/strivetrack-api/internal/models"
	"github.com/strivetrack/strivetrack-api/internal/services"
	"go.uber.org/zap"
)

// RequireSession resolves the X-Session-ID header to a user on every request
func RequireSession(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(constants.SessionHeader)

		user, err := authService.ValidateSession(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrInvalidSession):
			apierrors.Unauthorized(c, "Invalid session")
			return
		case errors.Is(err, services.ErrAccountSuspended):
			apierrors.Forbidden(c, "Account suspended")
			return
		default:
			logger.Component("auth").Error("session_lookup_failed", zap.Error(err))
			apierrors.InternalError(c, "")
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeySessionUser, user)
		c.Next()
	}
}

// RequireAdmin allows only the configured admin through. It must run after
// RequireSession.
func RequireAdmin(adminService *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetSessionUser(c)
		if !ok {
			apierrors.Unauthorized(c, "Invalid session")
			return
		}
		if !adminService.IsAdmin(user) {
			apierrors.Forbidden(c, "Admin access required")
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}

// GetSessionUser retrieves the user resolved by RequireSession
func GetSessionUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeySessionUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
