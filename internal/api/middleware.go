package api

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jon4hz/attendance/web/templates/pages"
)

const requestIDHeader = "X-Request-ID"

// requestID tags every request with an id, reusing the one sent by a proxy.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs every request and the errors attached by handlers.
func requestLogger() gin.HandlerFunc {
	logger := log.Default().WithPrefix("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString("request_id"),
		}
		if len(c.Errors) > 0 {
			logger.Error("Request failed", append(fields, "error", c.Errors.String())...)
			return
		}
		logger.Debug("Request", fields...)
	}
}

// errorPage renders the generic error page for handlers that aborted with an error.
func errorPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// AbortWithError only flushes the status, a body means the handler already rendered
		if len(c.Errors) == 0 || c.Writer.Size() > 0 {
			return
		}
		status := c.Writer.Status()
		if status < 400 {
			status = 500
		}
		if err := pages.Error(status).Render(c.Request.Context(), c.Writer); err != nil {
			log.Error("Failed to render error page", "error", err)
		}
	}
}
