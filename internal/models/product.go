package models

import "math"

// Los documentos del catálogo son abiertos: más allá de los campos que la
// validación revisa (name, pricing, categories, inventory) el cliente puede
// mandar cualquier estructura anidada y se persiste tal cual. Por eso el
// producto viaja como mapa y no como struct cerrado.

// Product es un documento del catálogo ya listo para la capa HTTP:
// el _id del store aparece como "id" en hexadecimal.
type Product map[string]any

// ListOptions son las opciones de listado ya coercionadas por el handler.
type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Filters   map[string]string
}

// Defaults y límites de paginación.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	DefaultSortBy    = "createdAt"
	DefaultSortOrder = "desc"
)

// Normalize aplica defaults y acota page/limit a rangos sanos.
func (o *ListOptions) Normalize() {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if o.SortBy == "" {
		o.SortBy = DefaultSortBy
	}
	if o.SortOrder != "asc" {
		o.SortOrder = DefaultSortOrder
	}
}

// Offset retorna cuántos documentos saltar para la página pedida.
func (o *ListOptions) Offset() int64 {
	return int64(o.Page-1) * int64(o.Limit)
}

// Page es el sobre de paginación que retorna el listado.
type Page struct {
	Items       []Product `json:"items"`
	CurrentPage int       `json:"currentPage"`
	PageSize    int       `json:"pageSize"`
	TotalItems  int64     `json:"totalItems"`
	TotalPages  int64     `json:"totalPages"`
}

// NewPage arma el sobre calculando totalPages = ceil(total/limit).
func NewPage(items []Product, opts ListOptions, total int64) *Page {
	if items == nil {
		items = []Product{}
	}
	return &Page{
		Items:       items,
		CurrentPage: opts.Page,
		PageSize:    opts.Limit,
		TotalItems:  total,
		TotalPages:  int64(math.Ceil(float64(total) / float64(opts.Limit))),
	}
}
