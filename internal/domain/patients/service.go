package patients

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"medicine-schedule-service/internal/ports/lookup"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

type Service struct {
	repo Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log,
	}
}

type RegisterInput struct {
	// ID opcional: permite registrar al paciente con el mismo id que tiene en el IAM.
	ID        string
	Name      string
	Email     string
	BirthDate *time.Time
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Patient, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Patient{}, ErrInvalidInput
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return Patient{}, ErrInvalidInput
		}
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	now := s.now().UTC()
	p := Patient{
		ID:        id,
		Name:      name,
		Email:     strings.ToLower(email),
		BirthDate: in.BirthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	s.log.Info("patient registered", zap.String("patient_id", p.ID))
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// Search implementa lookup.PatientDirectory sobre el repositorio local.
func (s *Service) Search(ctx context.Context, term string, limit int) ([]lookup.Patient, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	list, err := s.repo.Search(ctx, strings.TrimSpace(term), limit)
	if err != nil {
		return nil, err
	}

	out := make([]lookup.Patient, 0, len(list))
	for _, p := range list {
		out = append(out, toLookup(p))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (lookup.Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return lookup.Patient{}, lookup.ErrPatientNotFound
	}
	if err != nil {
		return lookup.Patient{}, err
	}
	return toLookup(p), nil
}

func toLookup(p Patient) lookup.Patient {
	return lookup.Patient{ID: p.ID, Name: p.Name, Email: p.Email}
}
