package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-api/internal/apperrors"
	"catalog-api/pkg/log"
)

const genericDetail = "An unexpected error occurred"

// ErrorNormalizer es el único punto donde las fallas se clasifican a un
// status HTTP. Los handlers reportan con c.Error y siguen de largo; acá se
// loguea todo y se arma el body según la taxonomía. En producción el detalle
// interno se reemplaza por un mensaje genérico.
func ErrorNormalizer(l log.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		ctx := c.Request.Context()
		l.Errorf(ctx, "request failed: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)

		var verr *apperrors.ValidationError
		var serr *apperrors.StoreError

		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Validation Error",
				"errors":  verr.Errors,
			})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"message": "Service Unavailable",
				"error":   "Database connection failed",
			})
		case errors.As(err, &serr):
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Database Error",
				"error":   detail(serr.Err.Error(), production),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Internal Server Error",
				"error":   detail(err.Error(), production),
			})
		}
	}
}

// NoRoute responde 404 para rutas no registradas.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Endpoint Not Found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	}
}

func detail(msg string, production bool) string {
	if production {
		return genericDetail
	}
	return msg
}
