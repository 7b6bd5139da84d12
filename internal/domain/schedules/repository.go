package schedules

import (
	"context"
	"time"
)

// UpdateCommand no lleva paciente ni autor: son inmutables después de crear.
type UpdateCommand struct {
	ScheduleID   string
	StartDate    time.Time
	NumberOfDays int
	Notes        string
	Items        []Item

	// 0 = sin control de concurrencia (last-write-wins).
	ExpectedVersion int
	UpdatedAt       time.Time
}

type Repository interface {
	Create(ctx context.Context, s Schedule) error
	// Update reemplaza raíz + items en una sola transacción (ver PlanItemChanges).
	Update(ctx context.Context, cmd UpdateCommand) (Schedule, error)
	GetByID(ctx context.Context, id string) (Schedule, error)
	ListByAuthor(ctx context.Context, author Author) ([]Schedule, error)
	ListByPatient(ctx context.Context, patientID string) ([]Schedule, error)
	// deletedAt estampa el evento de baja.
	Delete(ctx context.Context, id string, deletedAt time.Time) error
}
