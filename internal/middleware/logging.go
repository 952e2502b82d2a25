package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"covid-results-server/internal/utils"
)

// RequestIDKey is the context key under which the request ID is stored.
const RequestIDKey = "requestID"

// RequestID assigns each request a correlation ID, echoed back in the
// X-Request-ID response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// RequestLogger logs one line per request, including any errors handlers
// attached to the context along the way.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("requestID", c.GetString(RequestIDKey)),
		}

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				fields = append(fields, zap.String("error", utils.FormatValidationError(err.Err)))
			}
			log.Warn("request completed with errors", fields...)
			return
		}

		log.Info("request completed", fields...)
	}
}
