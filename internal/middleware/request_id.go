package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog-api/pkg/log"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propaga el header X-Request-ID entrante o genera uno nuevo,
// y lo deja en el contexto para correlación en logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := log.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}
