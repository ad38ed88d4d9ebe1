package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mindwell/utils"
)

const (
	ContextRequestID = "request_id"
	ContextLogger    = "logger"
)

// RequestTracingMiddleware tags each request with an id (reusing an incoming
// X-Request-ID) and logs it once it completes.
func RequestTracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		entry := utils.Logger.WithField("request_id", requestID)

		c.Set(ContextRequestID, requestID)
		c.Set(ContextLogger, entry)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		entry.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"user_id":  c.GetString(ContextUserID),
		}).Info("request completed")
	}
}

// Logger returns the request scoped logger, or the global one outside of
// RequestTracingMiddleware.
func Logger(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(ContextLogger); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(utils.Logger)
}
