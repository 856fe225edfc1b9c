package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-api/internal/handlers"
	"catalog-api/internal/middleware"
)

func RegisterRoutes(router *gin.Engine, h *handlers.ProductHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	products := router.Group("/api/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}

	router.NoRoute(middleware.NoRoute())
}
