// Package schema describe la forma de referencia de un ítem del catálogo.
// El descriptor es documentación viva: la validación sólo aplica las reglas
// marcadas aquí como required/enum/min; todo campo extra del payload se
// persiste sin revisar.
package schema

type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
)

// Field describe un campo del documento, con sus restricciones superficiales.
type Field struct {
	Path         string
	Type         FieldType
	Required     bool
	Enum         []string
	MinZero      bool // número/entero que no admite negativos
	ExactLen     int  // largo exacto de string (0 = sin restricción)
	Multilingual bool // admite string plano o mapa de locales
	Advisory     bool // documentado pero nunca validado
}

// Métodos de tracking de inventario soportados.
const (
	TrackingByVariant  = "by_variant"
	TrackingTotalStock = "total_stock"
)

var TrackingMethods = []string{TrackingByVariant, TrackingTotalStock}

// ProductDescriptor es la tabla de referencia del ítem de catálogo.
var ProductDescriptor = []Field{
	{Path: "name", Type: TypeString, Required: true, Multilingual: true},
	{Path: "name.en", Type: TypeString},
	{Path: "categories.primary", Type: TypeString, Required: true},
	{Path: "categories.secondary", Type: TypeArray, Advisory: true},
	{Path: "pricing.basePrice", Type: TypeNumber, Required: true, MinZero: true},
	{Path: "pricing.currency", Type: TypeString, ExactLen: 3},
	{Path: "pricing.taxRate", Type: TypeNumber, Advisory: true},
	{Path: "inventory.trackingMethod", Type: TypeString, Enum: TrackingMethods},
	{Path: "inventory.variants", Type: TypeArray},
	{Path: "inventory.variants.attributes.color", Type: TypeString},
	{Path: "inventory.variants.stockInfo.currentStock", Type: TypeInteger, MinZero: true},
	{Path: "inventory.variants.identifiers.sku", Type: TypeString, Advisory: true},
	{Path: "physicalProperties", Type: TypeObject, Advisory: true},
	{Path: "digitalProperties", Type: TypeObject, Advisory: true},
	{Path: "availability.status", Type: TypeString, Advisory: true},
	{Path: "compliance", Type: TypeObject, Advisory: true},
	{Path: "metadata", Type: TypeObject, Advisory: true},
}
