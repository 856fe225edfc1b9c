package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-api/internal/apperrors"
	"catalog-api/internal/models"
	"catalog-api/internal/validation"
)

// Repository es el contrato que los handlers esperan del repositorio.
type Repository interface {
	Create(ctx context.Context, payload map[string]any) (models.Product, error)
	FindByID(ctx context.Context, id string) (models.Product, error)
	Update(ctx context.Context, id string, payload map[string]any) (models.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts models.ListOptions) (*models.Page, error)
}

type ProductHandler struct {
	repo Repository
}

func NewProductHandler(repo Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// Parámetros de query reservados para paginación y orden; cualquier otro
// se interpreta como filtro de igualdad.
var reservedParams = map[string]bool{
	"page":      true,
	"limit":     true,
	"sortBy":    true,
	"sortOrder": true,
}

// CreateProduct crea un nuevo producto validado.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	if errs := validation.ValidateProduct(payload); len(errs) > 0 {
		c.Error(apperrors.NewValidation(errs))
		return
	}

	product, err := h.repo.Create(c.Request.Context(), payload)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProduct obtiene un producto por ID.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if errs := validation.ValidateID(id); len(errs) > 0 {
		c.Error(apperrors.NewValidation(errs))
		return
	}

	product, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProducts lista productos con paginación, filtros y orden.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	opts := models.ListOptions{
		Page:      page,
		Limit:     limit,
		SortBy:    c.DefaultQuery("sortBy", models.DefaultSortBy),
		SortOrder: c.DefaultQuery("sortOrder", models.DefaultSortOrder),
		Filters:   map[string]string{},
	}

	for key, values := range c.Request.URL.Query() {
		if !reservedParams[key] && len(values) > 0 {
			opts.Filters[key] = values[0]
		}
	}

	result, err := h.repo.List(c.Request.Context(), opts)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateProduct actualiza parcialmente un producto existente.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if errs := validation.ValidateID(id); len(errs) > 0 {
		c.Error(apperrors.NewValidation(errs))
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	if errs := validation.ValidateProduct(payload); len(errs) > 0 {
		c.Error(apperrors.NewValidation(errs))
		return
	}

	product, err := h.repo.Update(c.Request.Context(), id, payload)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct elimina un producto. Borrar un id inexistente también
// responde 204: el estado final es el mismo.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if errs := validation.ValidateID(id); len(errs) > 0 {
		c.Error(apperrors.NewValidation(errs))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// bindPayload decodifica el body JSON a mapa. Un body ilegible se reporta
// como violación de validación, nunca llega al store.
func bindPayload(c *gin.Context) (map[string]any, bool) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.Error(apperrors.NewValidation([]apperrors.FieldError{
			{Field: "body", Message: "Request body must be a JSON object"},
		}))
		return nil, false
	}
	return payload, true
}
