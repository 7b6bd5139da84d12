package schedules

import "time"

// ItemPlan es el diff entre los items guardados y los que llegan en un update.
// Semántica de reemplazo total: lo que no viene se borra.
type ItemPlan struct {
	Updates []Item
	Inserts []Item
	Deletes []string

	// Items es el estado final, en el orden del request.
	Items []Item
}

// PlanItemChanges calcula el diff en memoria:
//   - id presente y existente en current => update in-place (conserva CreatedAt)
//   - sin id, o con un id que no pertenece al schedule => insert con identidad nueva
//   - ids de current que no aparecen => delete
func PlanItemChanges(scheduleID string, current, incoming []Item, now time.Time, newID func() string) ItemPlan {
	existing := make(map[string]Item, len(current))
	for _, it := range current {
		existing[it.ID] = it
	}

	plan := ItemPlan{Items: make([]Item, 0, len(incoming))}
	kept := make(map[string]struct{}, len(incoming))

	for i, in := range incoming {
		it := in
		it.ScheduleID = scheduleID
		it.Position = i
		it.UpdatedAt = now

		if prev, ok := existing[it.ID]; ok && it.ID != "" {
			it.CreatedAt = prev.CreatedAt
			kept[it.ID] = struct{}{}
			plan.Updates = append(plan.Updates, it)
		} else {
			it.ID = newID()
			it.CreatedAt = now
			plan.Inserts = append(plan.Inserts, it)
		}
		plan.Items = append(plan.Items, it)
	}

	for _, it := range current {
		if _, ok := kept[it.ID]; !ok {
			plan.Deletes = append(plan.Deletes, it.ID)
		}
	}

	return plan
}
