package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medicine-schedule-service/internal/platform/metrics"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Service struct {
	repo    Repository
	now     func() time.Time
	newID   func() string
	log     *zap.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		now:    time.Now,
		newID:  uuid.NewString,
		log:    zap.NewNop(),
		tracer: otel.Tracer("medicine-schedule-service/schedules"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	PatientID    string
	StartDate    string
	NumberOfDays int
	Notes        string
	Items        []ItemInput
}

// UpdateInput es un reemplazo total. PatientID y Author son opcionales:
// si vienen y difieren de los guardados => ErrImmutableField.
type UpdateInput struct {
	PatientID    string
	Author       *Author
	StartDate    string
	NumberOfDays int
	Notes        string
	Items        []ItemInput

	ExpectedVersion int
}

// CalendarView es la respuesta del calendario de dosis.
type CalendarView struct {
	Schedule   Schedule
	Events     []DoseEvent
	TotalDoses int
}

func (s *Service) Create(ctx context.Context, author Author, in CreateInput) (Schedule, error) {
	ctx, span := s.tracer.Start(ctx, "schedules.Create", trace.WithAttributes(
		attribute.String("author", author.String()),
		attribute.String("patient_id", in.PatientID),
	))
	defer span.End()

	draft, err := Build(BuildRequest{
		PatientID:    in.PatientID,
		Author:       author,
		StartDate:    in.StartDate,
		NumberOfDays: in.NumberOfDays,
		Notes:        in.Notes,
		Items:        in.Items,
	})
	if err != nil {
		s.rejected(span, "create", err)
		return Schedule{}, err
	}

	now := s.now().UTC()
	sch := Schedule{
		ID:           s.newID(),
		PatientID:    draft.PatientID,
		Author:       draft.Author,
		StartDate:    draft.StartDate,
		NumberOfDays: draft.NumberOfDays,
		Notes:        draft.Notes,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// En el alta todos los items son nuevos: cualquier id recibido se ignora.
	sch.Items = PlanItemChanges(sch.ID, nil, draft.Items, now, s.newID).Items

	if err := s.repo.Create(ctx, sch); err != nil {
		return Schedule{}, s.failed(span, "create", err)
	}

	s.metrics.ScheduleWritten("create", len(sch.Items))
	s.log.Info("schedule created",
		zap.String("schedule_id", sch.ID),
		zap.String("patient_id", sch.PatientID),
		zap.Stringer("author", sch.Author),
		zap.Int("items", len(sch.Items)),
	)
	return sch, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Schedule, error) {
	ctx, span := s.tracer.Start(ctx, "schedules.Update", trace.WithAttributes(
		attribute.String("schedule_id", id),
	))
	defer span.End()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Schedule{}, s.failed(span, "update", err)
	}

	if in.PatientID != "" && in.PatientID != current.PatientID {
		s.rejected(span, "update", ErrImmutableField)
		return Schedule{}, fmt.Errorf("%w: patient_id", ErrImmutableField)
	}
	if in.Author != nil && *in.Author != current.Author {
		s.rejected(span, "update", ErrImmutableField)
		return Schedule{}, fmt.Errorf("%w: author", ErrImmutableField)
	}

	// Paciente y autor salen del estado guardado, nunca del request.
	draft, err := Build(BuildRequest{
		PatientID:    current.PatientID,
		Author:       current.Author,
		StartDate:    in.StartDate,
		NumberOfDays: in.NumberOfDays,
		Notes:        in.Notes,
		Items:        in.Items,
	})
	if err != nil {
		s.rejected(span, "update", err)
		return Schedule{}, err
	}

	updated, err := s.repo.Update(ctx, UpdateCommand{
		ScheduleID:      id,
		StartDate:       draft.StartDate,
		NumberOfDays:    draft.NumberOfDays,
		Notes:           draft.Notes,
		Items:           draft.Items,
		ExpectedVersion: in.ExpectedVersion,
		UpdatedAt:       s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			s.metrics.VersionConflict()
		}
		return Schedule{}, s.failed(span, "update", err)
	}

	s.metrics.ScheduleWritten("update", len(updated.Items))
	s.log.Info("schedule updated",
		zap.String("schedule_id", updated.ID),
		zap.Int("version", updated.Version),
		zap.Int("items", len(updated.Items)),
	)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "schedules.Delete", trace.WithAttributes(
		attribute.String("schedule_id", id),
	))
	defer span.End()

	if err := s.repo.Delete(ctx, id, s.now().UTC()); err != nil {
		return s.failed(span, "delete", err)
	}

	s.metrics.ScheduleWritten("delete", 0)
	s.log.Info("schedule deleted", zap.String("schedule_id", id))
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Schedule, error) {
	return s.repo.GetByID(ctx, id)
}

// Calendar recalcula los DoseEvent en cada llamada; no se cachean ni se persisten.
func (s *Service) Calendar(ctx context.Context, id string, w Window) (CalendarView, error) {
	if w.From != nil && w.To != nil && DateOnly(*w.From).After(DateOnly(*w.To)) {
		return CalendarView{}, fmt.Errorf("%w: from must be <= to", ErrInvalidInput)
	}

	ctx, span := s.tracer.Start(ctx, "schedules.Calendar", trace.WithAttributes(
		attribute.String("schedule_id", id),
	))
	defer span.End()

	sch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return CalendarView{}, s.failed(span, "calendar", err)
	}
	return s.calendarOf(span, sch, w), nil
}

// CalendarOf calcula el calendario de un schedule ya cargado (p. ej. tras chequear acceso sobre esa misma lectura).
func (s *Service) CalendarOf(ctx context.Context, sch Schedule, w Window) (CalendarView, error) {
	if w.From != nil && w.To != nil && DateOnly(*w.From).After(DateOnly(*w.To)) {
		return CalendarView{}, fmt.Errorf("%w: from must be <= to", ErrInvalidInput)
	}

	_, span := s.tracer.Start(ctx, "schedules.Calendar", trace.WithAttributes(
		attribute.String("schedule_id", sch.ID),
	))
	defer span.End()

	return s.calendarOf(span, sch, w), nil
}

func (s *Service) calendarOf(span trace.Span, sch Schedule, w Window) CalendarView {
	events := Calendar(sch, w)
	s.metrics.CalendarServed(len(events))
	span.SetAttributes(attribute.Int("events", len(events)))

	return CalendarView{
		Schedule:   sch,
		Events:     events,
		TotalDoses: TotalDoses(events),
	}
}

// ListForAuthor alimenta el dashboard del doctor / med-store. No materializa calendarios.
func (s *Service) ListForAuthor(ctx context.Context, author Author) ([]Summary, error) {
	if !author.Valid() {
		return nil, fmt.Errorf("%w: author", ErrInvalidInput)
	}
	list, err := s.repo.ListByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	return summarize(list), nil
}

func (s *Service) ListForPatient(ctx context.Context, patientID string) ([]Summary, error) {
	if patientID == "" {
		return nil, fmt.Errorf("%w: patient_id", ErrInvalidInput)
	}
	list, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return summarize(list), nil
}

func summarize(list []Schedule) []Summary {
	out := make([]Summary, 0, len(list))
	for _, sch := range list {
		out = append(out, Summary{
			Schedule:    sch,
			PatientName: sch.Patient.Name,
			AuthorName:  sch.AuthorName,
			ItemCount:   len(sch.Items),
			EndDate:     sch.EndDate(),
		})
	}
	return out
}

func (s *Service) rejected(span trace.Span, op string, err error) {
	s.metrics.ValidationFailed(Reason(err))
	span.SetStatus(codes.Error, "validation")
	s.log.Debug("schedule rejected", zap.String("op", op), zap.Error(err))
}

func (s *Service) failed(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrConstraintViolation) {
		s.log.Info("schedule write refused", zap.String("op", op), zap.Error(err))
		return err
	}
	s.log.Error("schedule storage error", zap.String("op", op), zap.Error(err))
	return err
}
