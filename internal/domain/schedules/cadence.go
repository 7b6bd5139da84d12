package schedules

import (
	"cmp"
	"iter"
	"slices"
	"time"
)

const DateLayout = "2006-01-02"

// DateOnly trunca a la fecha de calendario (medianoche UTC) conservando año/mes/día tal como vienen.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ActiveDays devuelve los días con dosis dentro de [start, start+numberOfDays-1].
// El offset 0 siempre está activo; el offset d lo está si d % (gap+1) == 0.
// La secuencia no guarda estado: se puede recorrer varias veces con el mismo resultado.
func ActiveDays(start time.Time, numberOfDays, gapBetweenDays int) iter.Seq[time.Time] {
	start = DateOnly(start)
	return func(yield func(time.Time) bool) {
		if numberOfDays < 1 || gapBetweenDays < 0 {
			return
		}
		if gapBetweenDays >= numberOfDays {
			yield(start)
			return
		}
		step := gapBetweenDays + 1
		for d := 0; d < numberOfDays; d += step {
			if !yield(start.AddDate(0, 0, d)) {
				return
			}
		}
	}
}

// ActiveDayCount = floor((numberOfDays-1)/(gap+1)) + 1.
func ActiveDayCount(numberOfDays, gapBetweenDays int) int {
	if numberOfDays < 1 || gapBetweenDays < 0 {
		return 0
	}
	if gapBetweenDays >= numberOfDays {
		return 1
	}
	return (numberOfDays-1)/(gapBetweenDays+1) + 1
}

// ItemDoses empareja cada día activo del item con su cantidad de dosis diarias.
func ItemDoses(start time.Time, numberOfDays int, it Item) iter.Seq[DoseEvent] {
	return func(yield func(DoseEvent) bool) {
		for day := range ActiveDays(start, numberOfDays, it.GapBetweenDays) {
			ev := DoseEvent{
				Date:         day,
				ItemID:       it.ID,
				MedicineName: it.MedicineName,
				Dosage:       it.Dosage,
				Doses:        it.TimesPerDay,
			}
			if !yield(ev) {
				return
			}
		}
	}
}

// Window limita el calendario a un rango de fechas (ambos extremos inclusive, opcionales).
type Window struct {
	From *time.Time
	To   *time.Time
}

func (w Window) contains(day time.Time) bool {
	if w.From != nil && day.Before(DateOnly(*w.From)) {
		return false
	}
	if w.To != nil && day.After(DateOnly(*w.To)) {
		return false
	}
	return true
}

// Calendar materializa los DoseEvent del schedule, ordenados por fecha y luego por posición del item.
func Calendar(s Schedule, w Window) []DoseEvent {
	type positioned struct {
		ev  DoseEvent
		pos int
	}

	all := make([]positioned, 0)
	for i, it := range s.Items {
		for ev := range ItemDoses(s.StartDate, s.NumberOfDays, it) {
			if !w.contains(ev.Date) {
				continue
			}
			all = append(all, positioned{ev: ev, pos: i})
		}
	}

	slices.SortStableFunc(all, func(a, b positioned) int {
		if c := a.ev.Date.Compare(b.ev.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.pos, b.pos)
	})

	out := make([]DoseEvent, 0, len(all))
	for _, p := range all {
		out = append(out, p.ev)
	}
	return out
}

func TotalDoses(events []DoseEvent) int {
	n := 0
	for _, ev := range events {
		n += ev.Doses
	}
	return n
}
