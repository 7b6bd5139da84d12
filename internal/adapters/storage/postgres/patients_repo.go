package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"medicine-schedule-service/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (
			id, name, email, birth_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		p.ID,
		p.Name,
		p.Email,
		toNullDate(p.BirthDate),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if pgCode(err) == codeUniqueViolation {
		return patients.ErrAlreadyExists
	}
	return err
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return patients.Patient{}, patients.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, birth_date, created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id)

	p, err := scanPatient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return patients.Patient{}, patients.ErrNotFound
	}
	return p, err
}

func (r *PatientsRepo) Search(ctx context.Context, term string, limit int) ([]patients.Patient, error) {
	// ILIKE con el término escapado: '%' y '_' del usuario se buscan literales.
	pattern := "%" + escapeLike(strings.TrimSpace(term)) + "%"

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, birth_date, created_at, updated_at
		FROM patients
		WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY name ASC, id ASC
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPatient(s scanner) (patients.Patient, error) {
	var (
		p  patients.Patient
		bd sql.NullTime
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Email, &bd, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return patients.Patient{}, err
	}
	if bd.Valid {
		t := bd.Time
		p.BirthDate = &t
	}
	return p, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
