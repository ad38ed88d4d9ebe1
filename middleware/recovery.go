package middleware

import (
	"github.com/gin-gonic/gin"

	"mindwell/utils"
)

func EnhancedRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger(c).WithField("panic", err).Error("recovered from panic")
				utils.TrackError("panic", c.FullPath())
				utils.InternalError(c, "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
