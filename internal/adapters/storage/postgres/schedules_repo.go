package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"medicine-schedule-service/internal/domain/schedules"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type SchedulesRepo struct {
	db     *sql.DB
	newID  func() string
	tracer trace.Tracer
}

func NewSchedulesRepo(db *sql.DB) *SchedulesRepo {
	return &SchedulesRepo{
		db:     db,
		newID:  uuid.NewString,
		tracer: otel.Tracer("medicine-schedule-service/postgres"),
	}
}

const selectSchedule = `
	SELECT
		s.id, s.patient_id, COALESCE(p.name, ''),
		s.author_type, COALESCE(s.doctor_id, s.med_store_id), COALESCE(d.name, m.name, ''),
		s.start_date, s.number_of_days, s.notes, s.version,
		s.created_at, s.updated_at
	FROM medicine_schedules s
	LEFT JOIN patients p ON p.id = s.patient_id
	LEFT JOIN doctors d ON d.id = s.doctor_id
	LEFT JOIN med_stores m ON m.id = s.med_store_id
`

func (r *SchedulesRepo) Create(ctx context.Context, s schedules.Schedule) error {
	ctx, span := r.tracer.Start(ctx, "postgres.schedules.Create", trace.WithAttributes(
		attribute.String("schedule_id", s.ID),
		attribute.Int("items", len(s.Items)),
	))
	defer span.End()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return txErr("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	doctorID, storeID := authorColumns(s.Author)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO medicine_schedules (
			id, patient_id,
			author_type, doctor_id, med_store_id,
			start_date, number_of_days, notes, version,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		s.ID,
		s.PatientID,
		string(s.Author.Type),
		doctorID,
		storeID,
		s.StartDate,
		s.NumberOfDays,
		s.Notes,
		s.Version,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		return txErr("insert schedule", err)
	}

	for _, it := range s.Items {
		if err := insertItem(ctx, tx, it); err != nil {
			span.RecordError(err)
			return err
		}
	}

	if err := writeOutbox(ctx, tx, schedules.NewChangeEvent(schedules.EventScheduleCreated, s, s.CreatedAt)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return txErr("commit", err)
	}
	return nil
}

// Update bloquea la fila raíz, calcula el diff de items en memoria y lo aplica en la misma
// transacción. Paciente y autor no aparecen en ningún UPDATE.
func (r *SchedulesRepo) Update(ctx context.Context, cmd schedules.UpdateCommand) (schedules.Schedule, error) {
	ctx, span := r.tracer.Start(ctx, "postgres.schedules.Update", trace.WithAttributes(
		attribute.String("schedule_id", cmd.ScheduleID),
	))
	defer span.End()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return schedules.Schedule{}, txErr("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		cur        schedules.Schedule
		authorType string
	)
	err = tx.QueryRowContext(ctx, `
		SELECT id, patient_id, author_type, COALESCE(doctor_id, med_store_id), version, created_at
		FROM medicine_schedules
		WHERE id = $1
		FOR UPDATE
	`, cmd.ScheduleID).Scan(&cur.ID, &cur.PatientID, &authorType, &cur.Author.ID, &cur.Version, &cur.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return schedules.Schedule{}, schedules.ErrNotFound
	}
	if err != nil {
		return schedules.Schedule{}, txErr("lock schedule", err)
	}
	cur.Author.Type = schedules.AuthorType(authorType)

	if cmd.ExpectedVersion > 0 && cmd.ExpectedVersion != cur.Version {
		return schedules.Schedule{}, schedules.ErrVersionConflict
	}

	current, err := loadItems(ctx, tx, []string{cur.ID})
	if err != nil {
		return schedules.Schedule{}, txErr("load items", err)
	}

	plan := schedules.PlanItemChanges(cur.ID, current[cur.ID], cmd.Items, cmd.UpdatedAt, r.newID)
	span.SetAttributes(
		attribute.Int("items.updated", len(plan.Updates)),
		attribute.Int("items.inserted", len(plan.Inserts)),
		attribute.Int("items.deleted", len(plan.Deletes)),
	)

	if len(plan.Deletes) > 0 {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM medicine_schedule_items
			WHERE schedule_id = $1 AND id = ANY($2)
		`, cur.ID, plan.Deletes); err != nil {
			return schedules.Schedule{}, txErr("delete items", err)
		}
	}

	for _, it := range plan.Updates {
		if _, err := tx.ExecContext(ctx, `
			UPDATE medicine_schedule_items
			SET
				position = $3,
				medicine_name = $4,
				dosage = $5,
				times_per_day = $6,
				gap_between_days = $7,
				notes = $8,
				updated_at = $9
			WHERE id = $1 AND schedule_id = $2
		`,
			it.ID,
			it.ScheduleID,
			it.Position,
			it.MedicineName,
			it.Dosage,
			it.TimesPerDay,
			it.GapBetweenDays,
			it.Notes,
			it.UpdatedAt,
		); err != nil {
			return schedules.Schedule{}, txErr("update item", err)
		}
	}

	for _, it := range plan.Inserts {
		if err := insertItem(ctx, tx, it); err != nil {
			return schedules.Schedule{}, err
		}
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE medicine_schedules
		SET
			start_date = $2,
			number_of_days = $3,
			notes = $4,
			version = version + 1,
			updated_at = $5
		WHERE id = $1
		RETURNING version
	`,
		cur.ID,
		cmd.StartDate,
		cmd.NumberOfDays,
		cmd.Notes,
		cmd.UpdatedAt,
	).Scan(&cur.Version)
	if err != nil {
		return schedules.Schedule{}, txErr("update schedule", err)
	}

	cur.StartDate = cmd.StartDate
	cur.NumberOfDays = cmd.NumberOfDays
	cur.Notes = cmd.Notes
	cur.Items = plan.Items
	cur.UpdatedAt = cmd.UpdatedAt

	if err := writeOutbox(ctx, tx, schedules.NewChangeEvent(schedules.EventScheduleUpdated, cur, cmd.UpdatedAt)); err != nil {
		return schedules.Schedule{}, err
	}

	if err := tx.Commit(); err != nil {
		return schedules.Schedule{}, txErr("commit", err)
	}

	// Releer fuera de la transacción para traer las proyecciones (nombres).
	return r.GetByID(ctx, cur.ID)
}

func (r *SchedulesRepo) GetByID(ctx context.Context, id string) (schedules.Schedule, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return schedules.Schedule{}, schedules.ErrNotFound
	}

	list, err := r.query(ctx, selectSchedule+` WHERE s.id = $1`, id)
	if err != nil {
		return schedules.Schedule{}, err
	}
	if len(list) == 0 {
		return schedules.Schedule{}, schedules.ErrNotFound
	}
	return list[0], nil
}

func (r *SchedulesRepo) ListByAuthor(ctx context.Context, author schedules.Author) ([]schedules.Schedule, error) {
	col := "s.doctor_id"
	if author.Type == schedules.AuthorTypeMedStore {
		col = "s.med_store_id"
	}
	return r.query(ctx, selectSchedule+`
		WHERE s.author_type = $1 AND `+col+` = $2
		ORDER BY s.created_at DESC, s.id
	`, string(author.Type), author.ID)
}

func (r *SchedulesRepo) ListByPatient(ctx context.Context, patientID string) ([]schedules.Schedule, error) {
	return r.query(ctx, selectSchedule+`
		WHERE s.patient_id = $1
		ORDER BY s.created_at DESC, s.id
	`, patientID)
}

// Delete borra la raíz; los items caen por ON DELETE CASCADE.
func (r *SchedulesRepo) Delete(ctx context.Context, id string, deletedAt time.Time) error {
	ctx, span := r.tracer.Start(ctx, "postgres.schedules.Delete", trace.WithAttributes(
		attribute.String("schedule_id", id),
	))
	defer span.End()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return txErr("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		s          = schedules.Schedule{ID: id}
		authorType string
	)
	err = tx.QueryRowContext(ctx, `
		DELETE FROM medicine_schedules
		WHERE id = $1
		RETURNING patient_id, author_type, COALESCE(doctor_id, med_store_id), version
	`, id).Scan(&s.PatientID, &authorType, &s.Author.ID, &s.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return schedules.ErrNotFound
	}
	if err != nil {
		return txErr("delete schedule", err)
	}
	s.Author.Type = schedules.AuthorType(authorType)

	if err := writeOutbox(ctx, tx, schedules.NewChangeEvent(schedules.EventScheduleDeleted, s, deletedAt)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return txErr("commit", err)
	}
	return nil
}

func (r *SchedulesRepo) query(ctx context.Context, q string, args ...any) ([]schedules.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedules.Schedule, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var (
			s          schedules.Schedule
			authorType string
		)
		if err := rows.Scan(
			&s.ID,
			&s.PatientID,
			&s.Patient.Name,
			&authorType,
			&s.Author.ID,
			&s.AuthorName,
			&s.StartDate,
			&s.NumberOfDays,
			&s.Notes,
			&s.Version,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		s.Author.Type = schedules.AuthorType(authorType)
		s.Patient.ID = s.PatientID
		s.StartDate = schedules.DateOnly(s.StartDate)

		out = append(out, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	// Una sola query para los items de todos los schedules del listado.
	items, err := loadItems(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func loadItems(ctx context.Context, q querier, scheduleIDs []string) (map[string][]schedules.Item, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT
			id, schedule_id, position,
			medicine_name, dosage, times_per_day, gap_between_days, notes,
			created_at, updated_at
		FROM medicine_schedule_items
		WHERE schedule_id = ANY($1)
		ORDER BY schedule_id, position
	`, scheduleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]schedules.Item, len(scheduleIDs))
	for rows.Next() {
		var it schedules.Item
		if err := rows.Scan(
			&it.ID,
			&it.ScheduleID,
			&it.Position,
			&it.MedicineName,
			&it.Dosage,
			&it.TimesPerDay,
			&it.GapBetweenDays,
			&it.Notes,
			&it.CreatedAt,
			&it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out[it.ScheduleID] = append(out[it.ScheduleID], it)
	}
	return out, rows.Err()
}

func insertItem(ctx context.Context, tx *sql.Tx, it schedules.Item) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO medicine_schedule_items (
			id, schedule_id, position,
			medicine_name, dosage, times_per_day, gap_between_days, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		it.ID,
		it.ScheduleID,
		it.Position,
		it.MedicineName,
		it.Dosage,
		it.TimesPerDay,
		it.GapBetweenDays,
		it.Notes,
		it.CreatedAt,
		it.UpdatedAt,
	)
	if err != nil {
		return txErr("insert item", err)
	}
	return nil
}

// authorColumns mapea el autor al par (doctor_id, med_store_id); exactamente uno queda seteado.
func authorColumns(a schedules.Author) (doctorID, storeID sql.NullString) {
	switch a.Type {
	case schedules.AuthorTypeDoctor:
		doctorID = sql.NullString{String: a.ID, Valid: true}
	case schedules.AuthorTypeMedStore:
		storeID = sql.NullString{String: a.ID, Valid: true}
	}
	return doctorID, storeID
}

// txErr traduce errores de Postgres a errores de dominio. FK y CHECK => ErrConstraintViolation,
// el resto => ErrTransactionFailure (la transacción ya se revierte con el defer).
func txErr(op string, err error) error {
	switch pgCode(err) {
	case codeForeignKeyViolation, codeCheckViolation:
		return fmt.Errorf("%w: %s: %v", schedules.ErrConstraintViolation, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", schedules.ErrTransactionFailure, op, err)
	}
}
