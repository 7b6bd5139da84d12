package schedules

import (
	"fmt"
	"strings"
)

// Techos de dominio. Con ellos un calendario completo queda acotado
// (MaxNumberOfDays * MaxTimesPerDay dosis por item) y todo entra en un INTEGER de Postgres.
const (
	MaxNumberOfDays   = 3650
	MaxTimesPerDay    = 24
	MaxGapBetweenDays = MaxNumberOfDays
)

// ValidateItem valida un item aislado. Devuelve el primer problema encontrado como *ItemError.
func ValidateItem(it Item) error {
	if errs := checkItem(0, it); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// ValidateItems valida el batch completo y reporta todos los items con problemas.
// No tiene side effects: un batch inválido nunca llega al repositorio.
func ValidateItems(items []Item) error {
	var failed []*ItemError
	for i, it := range items {
		failed = append(failed, checkItem(i, it)...)
	}
	if len(failed) > 0 {
		return &ValidationError{Items: failed}
	}
	return nil
}

func checkItem(index int, it Item) []*ItemError {
	var out []*ItemError
	fail := func(field, reason string) {
		out = append(out, &ItemError{
			Index:  index,
			ItemID: it.ID,
			Field:  field,
			Reason: reason,
		})
	}

	if strings.TrimSpace(it.MedicineName) == "" {
		fail("medicine_name", "is required")
	}
	if strings.TrimSpace(it.Dosage) == "" {
		fail("dosage", "is required")
	}
	switch {
	case it.TimesPerDay < 1:
		fail("times_per_day", "must be >= 1")
	case it.TimesPerDay > MaxTimesPerDay:
		fail("times_per_day", fmt.Sprintf("must be <= %d", MaxTimesPerDay))
	}
	switch {
	case it.GapBetweenDays < 0:
		fail("gap_between_days", "must be >= 0")
	case it.GapBetweenDays > MaxGapBetweenDays:
		fail("gap_between_days", fmt.Sprintf("must be <= %d", MaxGapBetweenDays))
	}
	return out
}
