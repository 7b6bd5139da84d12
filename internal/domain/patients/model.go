package patients

import "time"

// Patient es el registro local del directorio de pacientes.
// Los schedules solo guardan Patient.ID.
type Patient struct {
	ID    string
	Name  string
	Email string

	BirthDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
