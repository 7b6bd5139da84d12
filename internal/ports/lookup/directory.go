package lookup

import (
	"context"
	"errors"
)

var ErrPatientNotFound = errors.New("patient not found")

// Patient es lo mínimo que un autor necesita para elegir al paciente de un schedule.
type Patient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// PatientDirectory busca pacientes. Puede ser el directorio local o un servicio remoto.
type PatientDirectory interface {
	Search(ctx context.Context, term string, limit int) ([]Patient, error)
	Get(ctx context.Context, id string) (Patient, error)
}
