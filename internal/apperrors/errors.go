package apperrors

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// FieldError describe una violación sobre un campo del payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las violaciones encontradas en una request.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s)", len(e.Errors))
}

// NewValidation construye un ValidationError a partir de las violaciones.
func NewValidation(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// StoreError envuelve una falla interna del motor de base de datos.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("database error: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

var (
	// ErrNotFound indica que el documento no existe en la colección.
	ErrNotFound = errors.New("product not found")

	// ErrStoreUnavailable indica que no se pudo alcanzar la base de datos.
	ErrStoreUnavailable = errors.New("database connection failed")
)

// FromStore clasifica un error del driver en la taxonomía del servicio.
// Es el único punto donde se interpretan errores específicos de mongo.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return ErrStoreUnavailable
	}
	return &StoreError{Err: err}
}
