package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"medicine-schedule-service/internal/domain/patients"
	"medicine-schedule-service/internal/domain/schedules"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB conecta contra DB_DSN y aplica el schema. Sin DB_DSN el test se saltea.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set")
	}

	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, Migrate(ctx, db))
	return db
}

// seedRefs crea paciente y doctor propios del test y los borra al final.
func seedRefs(t *testing.T, db *sql.DB) (patientID, doctorID string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	patientID = "pat-" + uuid.NewString()
	doctorID = "doc-" + uuid.NewString()

	require.NoError(t, NewPatientsRepo(db).Create(ctx, patients.Patient{
		ID: patientID, Name: "Ana Pérez", CreatedAt: now, UpdatedAt: now,
	}))
	_, err := db.ExecContext(ctx, `INSERT INTO doctors (id, name) VALUES ($1, $2)`, doctorID, "Dra. Gómez")
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, `DELETE FROM schedule_outbox WHERE aggregate_id IN (SELECT id FROM medicine_schedules WHERE patient_id = $1)`, patientID)
		_, _ = db.ExecContext(ctx, `DELETE FROM medicine_schedules WHERE patient_id = $1`, patientID)
		_, _ = db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, doctorID)
		_, _ = db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, patientID)
	})
	return patientID, doctorID
}

func outboxTypes(t *testing.T, db *sql.DB, scheduleID string) []string {
	t.Helper()
	rows, err := db.QueryContext(context.Background(), `
		SELECT event_type FROM schedule_outbox WHERE aggregate_id = $1 ORDER BY id
	`, scheduleID)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		out = append(out, s)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestSchedulesRepo_DB_UpdateReplacesItems(t *testing.T) {
	db := openTestDB(t)
	patientID, doctorID := seedRefs(t, db)
	repo := NewSchedulesRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	s := schedules.Schedule{
		ID:           uuid.NewString(),
		PatientID:    patientID,
		Author:       schedules.Author{Type: schedules.AuthorTypeDoctor, ID: doctorID},
		StartDate:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		NumberOfDays: 10,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Items = schedules.PlanItemChanges(s.ID, nil, []schedules.Item{
		{MedicineName: "A", Dosage: "500mg", TimesPerDay: 2},
		{MedicineName: "B", Dosage: "1 tablet", TimesPerDay: 1, GapBetweenDays: 1},
	}, now, uuid.NewString).Items
	require.NoError(t, repo.Create(ctx, s))

	idA, idB := s.Items[0].ID, s.Items[1].ID

	// [A, B] -> [A', C]
	updated, err := repo.Update(ctx, schedules.UpdateCommand{
		ScheduleID:   s.ID,
		StartDate:    s.StartDate,
		NumberOfDays: 7,
		Items: []schedules.Item{
			{ID: idA, MedicineName: "A", Dosage: "875mg", TimesPerDay: 2},
			{MedicineName: "C", Dosage: "400mg", TimesPerDay: 3, GapBetweenDays: 2},
		},
		ExpectedVersion: 1,
		UpdatedAt:       now.Add(time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 7, got.NumberOfDays)
	assert.Equal(t, idA, got.Items[0].ID)
	assert.Equal(t, "875mg", got.Items[0].Dosage)
	assert.Equal(t, "C", got.Items[1].MedicineName)
	assert.NotEmpty(t, got.Items[1].ID)
	assert.NotEqual(t, idB, got.Items[1].ID)
	assert.Equal(t, patientID, got.PatientID)
	assert.Equal(t, doctorID, got.Author.ID)

	var remaining int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM medicine_schedule_items WHERE id = $1`, idB).Scan(&remaining))
	assert.Zero(t, remaining)

	// Versión vieja: conflicto y sin escritura.
	_, err = repo.Update(ctx, schedules.UpdateCommand{
		ScheduleID:      s.ID,
		StartDate:       s.StartDate,
		NumberOfDays:    3,
		Items:           []schedules.Item{{MedicineName: "Z", Dosage: "1", TimesPerDay: 1}},
		ExpectedVersion: 1,
		UpdatedAt:       now.Add(2 * time.Minute),
	})
	require.ErrorIs(t, err, schedules.ErrVersionConflict)

	got, err = repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Len(t, got.Items, 2)

	deletedAt := now.Add(3 * time.Minute)
	require.NoError(t, repo.Delete(ctx, s.ID, deletedAt))
	_, err = repo.GetByID(ctx, s.ID)
	require.ErrorIs(t, err, schedules.ErrNotFound)

	assert.Equal(t, []string{
		string(schedules.EventScheduleCreated),
		string(schedules.EventScheduleUpdated),
		string(schedules.EventScheduleDeleted),
	}, outboxTypes(t, db, s.ID))

	var stamped time.Time
	require.NoError(t, db.QueryRowContext(ctx, `
		SELECT created_at FROM schedule_outbox
		WHERE aggregate_id = $1 AND event_type = $2
	`, s.ID, string(schedules.EventScheduleDeleted)).Scan(&stamped))
	assert.True(t, deletedAt.Equal(stamped))

	_, _ = db.ExecContext(ctx, `DELETE FROM schedule_outbox WHERE aggregate_id = $1`, s.ID)
}

func TestSchedulesRepo_DB_CheckConstraintIsNotATxFailure(t *testing.T) {
	db := openTestDB(t)
	patientID, doctorID := seedRefs(t, db)
	repo := NewSchedulesRepo(db)

	now := time.Now().UTC()
	s := schedules.Schedule{
		ID:           uuid.NewString(),
		PatientID:    patientID,
		Author:       schedules.Author{Type: schedules.AuthorTypeDoctor, ID: doctorID},
		StartDate:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		NumberOfDays: 5,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Items = schedules.PlanItemChanges(s.ID, nil, []schedules.Item{
		{MedicineName: "A", Dosage: "1", TimesPerDay: 1, GapBetweenDays: schedules.MaxGapBetweenDays + 1},
	}, now, uuid.NewString).Items

	err := repo.Create(context.Background(), s)
	require.ErrorIs(t, err, schedules.ErrConstraintViolation)

	_, err = repo.GetByID(context.Background(), s.ID)
	require.ErrorIs(t, err, schedules.ErrNotFound)
}
