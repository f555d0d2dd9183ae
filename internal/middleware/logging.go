package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"cluster-dashboard-backend/internal/pkg/logger"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.HTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}
