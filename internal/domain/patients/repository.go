package patients

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("patient not found")
	ErrAlreadyExists = errors.New("patient already exists")
)

type Repository interface {
	Create(ctx context.Context, p Patient) error
	GetByID(ctx context.Context, id string) (Patient, error)
	// Search busca por nombre o email (case-insensitive), ordenado por nombre.
	Search(ctx context.Context, term string, limit int) ([]Patient, error)
}
