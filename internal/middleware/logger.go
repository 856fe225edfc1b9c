package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"catalog-api/pkg/log"
)

// RequestLogger registra método, ruta, status y duración de cada request.
func RequestLogger(l log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		l.Infof(c.Request.Context(), "%s %s -> %d (%s)",
			c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
