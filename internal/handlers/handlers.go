package handlers

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/logger"
	"github.com/strivetrack/strivetrack-api/internal/middleware"
	"go.uber.org/zap"
)

// currentUserID returns the session user's ID, answering 401 when absent.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return userID, exists
}

// bindOptionalJSON binds the body when one was sent.
func bindOptionalJSON(c *gin.Context, dst interface{}) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(dst)
}

// internalError logs the cause and answers 500 without exposing it.
func internalError(c *gin.Context, err error) {
	logger.Log.Error("request_failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	apierrors.InternalError(c, "Internal server error")
}
