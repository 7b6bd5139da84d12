package schedules

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ItemInput struct {
	ID             string
	MedicineName   string
	Dosage         string
	TimesPerDay    int
	GapBetweenDays int
	Notes          string
}

type BuildRequest struct {
	PatientID    string
	Author       Author
	StartDate    string // YYYY-MM-DD (se acepta RFC3339 y se trunca a la fecha)
	NumberOfDays int
	Notes        string
	Items        []ItemInput
}

// Draft es el aggregate listo para persistir (sin identidad ni timestamps).
type Draft struct {
	PatientID    string
	Author       Author
	StartDate    time.Time
	NumberOfDays int
	Notes        string
	Items        []Item
}

// Build transforma un request de alta/edición en un Draft o un error de validación.
// Es puro: no toca el repositorio.
func Build(req BuildRequest) (Draft, error) {
	patientID := strings.TrimSpace(req.PatientID)
	if patientID == "" {
		return Draft{}, fmt.Errorf("%w: patient_id is required", ErrInvalidInput)
	}
	author := Author{Type: req.Author.Type, ID: strings.TrimSpace(req.Author.ID)}
	if !author.Valid() {
		return Draft{}, fmt.Errorf("%w: author must be a DOCTOR or MEDSTORE", ErrInvalidInput)
	}

	start, err := ParseDate(req.StartDate)
	if err != nil {
		return Draft{}, err
	}
	if req.NumberOfDays < 1 || req.NumberOfDays > MaxNumberOfDays {
		return Draft{}, ErrInvalidDuration
	}

	// rows[i] es el índice en req.Items del item i: los errores apuntan a la fila del request.
	items := make([]Item, 0, len(req.Items))
	rows := make([]int, 0, len(req.Items))
	for row, in := range req.Items {
		if isBlankRow(in) {
			continue
		}
		rows = append(rows, row)
		items = append(items, Item{
			ID:             strings.TrimSpace(in.ID),
			Position:       len(items),
			MedicineName:   strings.TrimSpace(in.MedicineName),
			Dosage:         strings.TrimSpace(in.Dosage),
			TimesPerDay:    in.TimesPerDay,
			GapBetweenDays: in.GapBetweenDays,
			Notes:          strings.TrimSpace(in.Notes),
		})
	}
	if len(items) == 0 {
		return Draft{}, ErrEmptyItemList
	}
	if err := ValidateItems(items); err != nil {
		return Draft{}, toRequestRows(err, rows)
	}
	if err := checkDuplicateIDs(items); err != nil {
		return Draft{}, toRequestRows(err, rows)
	}

	return Draft{
		PatientID:    patientID,
		Author:       author,
		StartDate:    start,
		NumberOfDays: req.NumberOfDays,
		Notes:        strings.TrimSpace(req.Notes),
		Items:        items,
	}, nil
}

// ParseDate acepta "YYYY-MM-DD" o RFC3339; en el segundo caso se queda con la fecha UTC del instante.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOnly(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOnly(t.UTC()), nil
	}
	return time.Time{}, ErrInvalidDate
}

// Filas vacías del formulario (sin nombre, dosis ni notas) se descartan antes de validar.
func isBlankRow(in ItemInput) bool {
	return strings.TrimSpace(in.ID) == "" &&
		strings.TrimSpace(in.MedicineName) == "" &&
		strings.TrimSpace(in.Dosage) == "" &&
		strings.TrimSpace(in.Notes) == ""
}

func checkDuplicateIDs(items []Item) error {
	seen := make(map[string]int, len(items))
	var failed []*ItemError
	for i, it := range items {
		if it.ID == "" {
			continue
		}
		if _, ok := seen[it.ID]; ok {
			failed = append(failed, &ItemError{Index: i, ItemID: it.ID, Field: "id", Reason: "is repeated"})
			continue
		}
		seen[it.ID] = i
	}
	if len(failed) > 0 {
		return &ValidationError{Items: failed}
	}
	return nil
}

func toRequestRows(err error, rows []int) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	for _, ie := range verr.Items {
		if ie.Index >= 0 && ie.Index < len(rows) {
			ie.Index = rows[ie.Index]
		}
	}
	return err
}
