package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"medicine-schedule-service/internal/domain/patients"
	"medicine-schedule-service/internal/domain/schedules"

	"github.com/google/uuid"
)

// scheduleRepo guarda los aggregates completos. Todo create/update/delete corre dentro
// de un único Lock, que cumple el rol de la transacción del adapter de Postgres.
type scheduleRepo struct {
	mu   sync.RWMutex
	byID map[string]schedules.Schedule

	// Opcional: si viene, se usa para validar la referencia al paciente y proyectar su nombre.
	patients patients.Repository
}

func NewScheduleRepo(patientRepo patients.Repository) schedules.Repository {
	return &scheduleRepo{
		byID:     make(map[string]schedules.Schedule),
		patients: patientRepo,
	}
}

func (r *scheduleRepo) Create(ctx context.Context, s schedules.Schedule) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("schedule id required")
	}
	if err := r.checkPatient(ctx, s.PatientID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; exists {
		return errors.New("schedule already exists")
	}
	r.byID[s.ID] = clone(s)
	return nil
}

func (r *scheduleRepo) Update(ctx context.Context, cmd schedules.UpdateCommand) (schedules.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[cmd.ScheduleID]
	if !ok {
		return schedules.Schedule{}, schedules.ErrNotFound
	}
	if cmd.ExpectedVersion > 0 && cmd.ExpectedVersion != cur.Version {
		return schedules.Schedule{}, schedules.ErrVersionConflict
	}

	plan := schedules.PlanItemChanges(cur.ID, cur.Items, cmd.Items, cmd.UpdatedAt, uuid.NewString)

	cur.StartDate = cmd.StartDate
	cur.NumberOfDays = cmd.NumberOfDays
	cur.Notes = cmd.Notes
	cur.Items = plan.Items
	cur.Version++
	cur.UpdatedAt = cmd.UpdatedAt

	r.byID[cur.ID] = clone(cur)
	return r.project(ctx, clone(cur)), nil
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (schedules.Schedule, error) {
	r.mu.RLock()
	s, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return schedules.Schedule{}, schedules.ErrNotFound
	}
	return r.project(ctx, clone(s)), nil
}

func (r *scheduleRepo) ListByAuthor(ctx context.Context, author schedules.Author) ([]schedules.Schedule, error) {
	return r.list(ctx, func(s schedules.Schedule) bool { return s.Author == author }), nil
}

func (r *scheduleRepo) ListByPatient(ctx context.Context, patientID string) ([]schedules.Schedule, error) {
	return r.list(ctx, func(s schedules.Schedule) bool { return s.PatientID == patientID }), nil
}

func (r *scheduleRepo) Delete(_ context.Context, id string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return schedules.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *scheduleRepo) list(ctx context.Context, keep func(schedules.Schedule) bool) []schedules.Schedule {
	r.mu.RLock()
	out := make([]schedules.Schedule, 0)
	for _, s := range r.byID {
		if keep(s) {
			out = append(out, clone(s))
		}
	}
	r.mu.RUnlock()

	// Más nuevos primero; id como desempate para que el orden sea estable.
	slices.SortFunc(out, func(a, b schedules.Schedule) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	for i := range out {
		out[i] = r.project(ctx, out[i])
	}
	return out
}

func (r *scheduleRepo) checkPatient(ctx context.Context, patientID string) error {
	if r.patients == nil {
		return nil
	}
	_, err := r.patients.GetByID(ctx, patientID)
	if errors.Is(err, patients.ErrNotFound) {
		return schedules.ErrConstraintViolation
	}
	return err
}

// project completa el nombre del paciente. El nombre del autor queda vacío:
// in-memory no hay tablas de doctores ni med-stores.
func (r *scheduleRepo) project(ctx context.Context, s schedules.Schedule) schedules.Schedule {
	s.Patient = schedules.PatientRef{ID: s.PatientID}
	if r.patients == nil {
		return s
	}
	if p, err := r.patients.GetByID(ctx, s.PatientID); err == nil {
		s.Patient.Name = p.Name
	}
	return s
}

func clone(s schedules.Schedule) schedules.Schedule {
	s.Items = slices.Clone(s.Items)
	return s
}
