package schedules

import "time"

// Item es un medicamento dentro de un schedule.
// ID vacío = item nuevo pendiente de crear.
type Item struct {
	ID         string
	ScheduleID string
	Position   int

	MedicineName   string
	Dosage         string // texto libre: "500mg", "1 tablet"
	TimesPerDay    int
	GapBetweenDays int // 0 = todos los días, 1 = día por medio, N = dosis y se saltan N días

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalDoses devuelve cuántas dosis de este item caen dentro de numberOfDays.
func (it Item) TotalDoses(numberOfDays int) int {
	return ActiveDayCount(numberOfDays, it.GapBetweenDays) * it.TimesPerDay
}

// PatientRef es la proyección del paciente que acompaña a los listados.
type PatientRef struct {
	ID   string
	Name string
}

// Schedule es el aggregate root.
type Schedule struct {
	ID string

	PatientID string
	Author    Author

	StartDate    time.Time // fecha de calendario (medianoche UTC)
	NumberOfDays int

	Notes string
	Items []Item

	Version int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Proyecciones de lectura, las completa el repositorio.
	Patient    PatientRef
	AuthorName string
}

// EndDate es el último día (inclusive) del rango de dosis.
func (s Schedule) EndDate() time.Time {
	if s.NumberOfDays < 1 {
		return s.StartDate
	}
	return s.StartDate.AddDate(0, 0, s.NumberOfDays-1)
}

// DoseEvent es derivado: nunca se persiste, se recalcula en cada lectura.
type DoseEvent struct {
	Date         time.Time
	ItemID       string
	MedicineName string
	Dosage       string
	Doses        int
}

// Summary es la fila de los dashboards (sin calendario materializado).
type Summary struct {
	Schedule    Schedule
	PatientName string
	AuthorName  string
	ItemCount   int
	EndDate     time.Time
}

// ChangeEvent se escribe en el outbox en la misma transacción que el cambio.
type ChangeEvent struct {
	Type       EventType `json:"type"`
	ScheduleID string    `json:"schedule_id"`
	PatientID  string    `json:"patient_id"`
	AuthorType string    `json:"author_type"`
	AuthorID   string    `json:"author_id"`
	Version    int       `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`

	StartDate    string        `json:"start_date,omitempty"`
	NumberOfDays int           `json:"number_of_days,omitempty"`
	Items        []ChangedItem `json:"items,omitempty"`
}

type ChangedItem struct {
	ID             string `json:"id"`
	MedicineName   string `json:"medicine_name"`
	Dosage         string `json:"dosage"`
	TimesPerDay    int    `json:"times_per_day"`
	GapBetweenDays int    `json:"gap_between_days"`
}

// NewChangeEvent arma el evento a partir del estado final del schedule.
func NewChangeEvent(t EventType, s Schedule, at time.Time) ChangeEvent {
	ev := ChangeEvent{
		Type:       t,
		ScheduleID: s.ID,
		PatientID:  s.PatientID,
		AuthorType: string(s.Author.Type),
		AuthorID:   s.Author.ID,
		Version:    s.Version,
		OccurredAt: at.UTC(),
	}
	if t == EventScheduleDeleted {
		return ev
	}

	ev.StartDate = s.StartDate.Format(DateLayout)
	ev.NumberOfDays = s.NumberOfDays
	ev.Items = make([]ChangedItem, 0, len(s.Items))
	for _, it := range s.Items {
		ev.Items = append(ev.Items, ChangedItem{
			ID:             it.ID,
			MedicineName:   it.MedicineName,
			Dosage:         it.Dosage,
			TimesPerDay:    it.TimesPerDay,
			GapBetweenDays: it.GapBetweenDays,
		})
	}
	return ev
}
