package memory

import (
	"context"
	"testing"
	"time"

	"medicine-schedule-service/internal/domain/patients"
	"medicine-schedule-service/internal/domain/schedules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var doctor = schedules.Author{Type: schedules.AuthorTypeDoctor, ID: "doc-1"}

func seed(t *testing.T) (schedules.Repository, schedules.Schedule) {
	t.Helper()

	pr := NewPatientRepo()
	require.NoError(t, pr.Create(context.Background(), patients.Patient{ID: "pat-1", Name: "Ana"}))
	repo := NewScheduleRepo(pr)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := schedules.Schedule{
		ID:           "s1",
		PatientID:    "pat-1",
		Author:       doctor,
		StartDate:    now,
		NumberOfDays: 10,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
		Items: []schedules.Item{
			{ID: "A", ScheduleID: "s1", Position: 0, MedicineName: "A", Dosage: "1", TimesPerDay: 1, CreatedAt: now},
			{ID: "B", ScheduleID: "s1", Position: 1, MedicineName: "B", Dosage: "2", TimesPerDay: 1, CreatedAt: now},
		},
	}
	require.NoError(t, repo.Create(context.Background(), s))
	return repo, s
}

func TestScheduleRepo_UpdateReplacesItems(t *testing.T) {
	repo, s := seed(t)
	later := s.CreatedAt.Add(time.Hour)

	updated, err := repo.Update(context.Background(), schedules.UpdateCommand{
		ScheduleID:   s.ID,
		StartDate:    s.StartDate,
		NumberOfDays: 5,
		Items: []schedules.Item{
			{ID: "A", MedicineName: "A", Dosage: "1 new", TimesPerDay: 1},
			{MedicineName: "C", Dosage: "3", TimesPerDay: 2},
		},
		UpdatedAt: later,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Items, got.Items)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "A", got.Items[0].ID)
	assert.Equal(t, "1 new", got.Items[0].Dosage)
	assert.Equal(t, s.CreatedAt, got.Items[0].CreatedAt)
	assert.NotEmpty(t, got.Items[1].ID)
	assert.NotEqual(t, "B", got.Items[1].ID)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, doctor, got.Author)
	assert.Equal(t, "Ana", got.Patient.Name)
}

func TestScheduleRepo_VersionConflict(t *testing.T) {
	repo, s := seed(t)

	_, err := repo.Update(context.Background(), schedules.UpdateCommand{
		ScheduleID:      s.ID,
		StartDate:       s.StartDate,
		NumberOfDays:    1,
		Items:           s.Items,
		ExpectedVersion: 7,
	})
	require.ErrorIs(t, err, schedules.ErrVersionConflict)

	got, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.NumberOfDays)
}

func TestScheduleRepo_UnknownPatient(t *testing.T) {
	repo, s := seed(t)

	s.ID = "s2"
	s.PatientID = "ghost"
	require.ErrorIs(t, repo.Create(context.Background(), s), schedules.ErrConstraintViolation)
}

func TestScheduleRepo_ListsNewestFirst(t *testing.T) {
	repo, s := seed(t)

	s2 := s
	s2.ID = "s2"
	s2.CreatedAt = s.CreatedAt.Add(time.Hour)
	require.NoError(t, repo.Create(context.Background(), s2))

	byAuthor, err := repo.ListByAuthor(context.Background(), doctor)
	require.NoError(t, err)
	require.Len(t, byAuthor, 2)
	assert.Equal(t, "s2", byAuthor[0].ID)

	byPatient, err := repo.ListByPatient(context.Background(), "pat-1")
	require.NoError(t, err)
	assert.Len(t, byPatient, 2)

	other, err := repo.ListByAuthor(context.Background(), schedules.Author{Type: schedules.AuthorTypeMedStore, ID: "doc-1"})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestScheduleRepo_Delete(t *testing.T) {
	repo, s := seed(t)

	require.NoError(t, repo.Delete(context.Background(), s.ID, time.Now()))
	_, err := repo.GetByID(context.Background(), s.ID)
	require.ErrorIs(t, err, schedules.ErrNotFound)
	require.ErrorIs(t, repo.Delete(context.Background(), s.ID, time.Now()), schedules.ErrNotFound)
}
