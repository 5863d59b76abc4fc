package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Logger logs every request with logrus, errors for 5xx responses and warnings for 4xx
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		statusCode := c.Writer.Status()
		message := fmt.Sprintf("[server][method: %s][path: %s][client: %s][status: %d] %v %s",
			c.Request.Method,
			path,
			c.ClientIP(),
			statusCode,
			time.Since(start),
			c.Errors.String(),
		)

		switch {
		case statusCode >= 500:
			log.Error(message)
		case statusCode >= 400:
			log.Warn(message)
		default:
			log.Debug(message)
		}
	}
}
