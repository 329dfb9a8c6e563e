package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/logger"
	"go.uber.org/zap"
)

// Recovery turns a panic into a 500 JSON error
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Error("panic_recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				apierrors.InternalError(c, "")
			}
		}()
		c.Next()
	}
}
