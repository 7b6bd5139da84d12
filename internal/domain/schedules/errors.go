package schedules

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidItem     = errors.New("invalid item")
	ErrInvalidDate     = errors.New("start_date must be YYYY-MM-DD")
	ErrInvalidDuration = errors.New("number_of_days must be between 1 and 3650")
	ErrEmptyItemList   = errors.New("schedule needs at least one item")
	ErrImmutableField  = errors.New("patient and author cannot be changed")

	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("schedule not found")
	ErrVersionConflict     = errors.New("schedule was modified by another request")
	ErrConstraintViolation = errors.New("patient or author reference does not exist")
	ErrTransactionFailure  = errors.New("schedule transaction failed")
)

// ItemError describe por qué falló un item concreto del batch.
type ItemError struct {
	Index  int
	ItemID string
	Field  string
	Reason string
}

func (e *ItemError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("items[%d] (id=%s): %s %s", e.Index, e.ItemID, e.Field, e.Reason)
	}
	return fmt.Sprintf("items[%d]: %s %s", e.Index, e.Field, e.Reason)
}

func (e *ItemError) Unwrap() error { return ErrInvalidItem }

// ValidationError agrupa todos los items rechazados de un batch.
// El batch se rechaza completo si hay al menos uno.
type ValidationError struct {
	Items []*ItemError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		parts = append(parts, it.Error())
	}
	return "invalid item: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidItem }

// Reason devuelve una etiqueta corta para métricas.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidItem):
		return "invalid_item"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, ErrEmptyItemList):
		return "empty_item_list"
	case errors.Is(err, ErrImmutableField):
		return "immutable_field"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "other"
	}
}

// IsValidation indica errores corregibles por el cliente, detectados antes de escribir.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidItem) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrEmptyItemList) ||
		errors.Is(err, ErrImmutableField)
}
