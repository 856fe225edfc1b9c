package validation

import (
	"fmt"
	"math"
	"slices"

	"catalog-api/internal/apperrors"
	"catalog-api/internal/schema"
)

// ValidateProduct revisa un payload de create/update y junta todas las
// violaciones en vez de cortar en la primera. Es inspección pura: nunca
// toca el store.
func ValidateProduct(payload map[string]any) []apperrors.FieldError {
	var errs []apperrors.FieldError

	name, ok := payload["name"]
	if !ok || isEmptyValue(name) {
		errs = append(errs, apperrors.FieldError{Field: "name", Message: "Product name is required"})
	} else if localized, ok := name.(map[string]any); ok {
		if en, ok := localized["en"]; ok {
			if _, isStr := en.(string); !isStr {
				errs = append(errs, apperrors.FieldError{Field: "name.en", Message: "English name must be a string"})
			}
		}
	}

	if basePrice, ok := lookup(payload, "pricing", "basePrice"); !ok {
		errs = append(errs, apperrors.FieldError{Field: "pricing.basePrice", Message: "Base price is required"})
	} else if n, isNum := asNumber(basePrice); !isNum || n < 0 {
		errs = append(errs, apperrors.FieldError{Field: "pricing.basePrice", Message: "Base price must be a positive number"})
	}

	if currency, ok := lookup(payload, "pricing", "currency"); ok {
		if s, isStr := currency.(string); !isStr || len(s) != 3 {
			errs = append(errs, apperrors.FieldError{Field: "pricing.currency", Message: "Currency must be a 3-letter code"})
		}
	}

	if primary, ok := lookup(payload, "categories", "primary"); !ok || isEmptyValue(primary) {
		errs = append(errs, apperrors.FieldError{Field: "categories.primary", Message: "Primary category is required"})
	}

	if method, ok := lookup(payload, "inventory", "trackingMethod"); ok {
		if s, isStr := method.(string); !isStr || !slices.Contains(schema.TrackingMethods, s) {
			errs = append(errs, apperrors.FieldError{Field: "inventory.trackingMethod", Message: "Invalid tracking method"})
		}
	}

	if raw, ok := lookup(payload, "inventory", "variants"); ok {
		if variants, isList := raw.([]any); isList {
			for i, v := range variants {
				variant, isMap := v.(map[string]any)
				if !isMap {
					continue
				}
				if color, ok := lookup(variant, "attributes", "color"); ok {
					if _, isStr := color.(string); !isStr {
						errs = append(errs, apperrors.FieldError{
							Field:   fmt.Sprintf("inventory.variants[%d].attributes.color", i),
							Message: "Color must be a string",
						})
					}
				}
				if stock, ok := lookup(variant, "stockInfo", "currentStock"); ok {
					if !isNonNegativeInt(stock) {
						errs = append(errs, apperrors.FieldError{
							Field:   fmt.Sprintf("inventory.variants[%d].stockInfo.currentStock", i),
							Message: "Current stock must be a non-negative integer",
						})
					}
				}
			}
		}
	}

	return errs
}

// ValidateID revisa el identificador recibido en el path.
func ValidateID(id string) []apperrors.FieldError {
	if id == "" {
		return []apperrors.FieldError{{Field: "id", Message: "Product ID is required"}}
	}
	return nil
}

// lookup navega un camino de claves sobre mapas anidados.
func lookup(m map[string]any, path ...string) (any, bool) {
	var current any = m
	for _, key := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// asNumber acepta los tipos numéricos con los que puede llegar un valor
// JSON decodificado (float64) o construido en tests (int).
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// isNonNegativeInt acepta enteros y float64 sin parte fraccionaria (JSON no
// distingue 3 de 3.0).
func isNonNegativeInt(v any) bool {
	switch n := v.(type) {
	case int:
		return n >= 0
	case int32:
		return n >= 0
	case int64:
		return n >= 0
	case float64:
		return n >= 0 && n == math.Trunc(n)
	}
	return false
}
