package nutrition

// Advance is the outcome of AdvanceIfComplete. NextDayMeals is nil whenever
// the pointer did not move.
type Advance struct {
	NextIndex    int            `json:"nextIndex"`
	NextDayMeals []MealLogEntry `json:"nextDayMeals"`
}

// Advanced reports whether the pointer moved past currentIndex.
func (a Advance) Advanced() bool {
	return a.NextDayMeals != nil
}

// AdvanceIfComplete moves the plan pointer to the next day once every meal
// served for the current day has a status. An empty served set is
// vacuously complete. The pointer never passes the last plan day.
func AdvanceIfComplete(plan []PlanDay, currentIndex int, currentDayMeals []MealLogEntry) Advance {
	stay := Advance{NextIndex: currentIndex}

	for _, m := range currentDayMeals {
		if !m.Status.Dispositioned() {
			return stay
		}
	}

	next := currentIndex + 1
	if currentIndex < 0 || next >= len(plan) {
		return stay
	}

	meals := MealsForDay(plan[next])
	if meals == nil {
		meals = []MealLogEntry{}
	}
	return Advance{NextIndex: next, NextDayMeals: meals}
}

// MealsForDay maps a plan day onto undispositioned log entries in slot order.
// Slots the day does not define are omitted.
func MealsForDay(day PlanDay) []MealLogEntry {
	var out []MealLogEntry
	for _, slot := range SlotOrder {
		meal, ok := day.Meals[slot]
		if !ok {
			continue
		}
		out = append(out, MealLogEntry{
			ID:         meal.ID,
			MealSlot:   slot,
			RecipeName: meal.RecipeName,
			Calories:   meal.Calories,
			Protein:    meal.Protein,
			Carbs:      meal.Carbs,
			Fat:        meal.Fat,
			Fiber:      meal.Fiber,
			Cost:       meal.Cost,
		})
	}
	return out
}

// InitialIndex is the index of the plan day dated today, or 0.
func InitialIndex(plan []PlanDay, today string) int {
	for i, d := range plan {
		if d.Date != "" && d.Date == today {
			return i
		}
	}
	return 0
}

// OverlayStatuses copies the recorded disposition of each served meal from
// the day's log, matching by meal id.
func OverlayStatuses(served []MealLogEntry, log DayLog) []MealLogEntry {
	byID := make(map[string]MealLogEntry, len(log.Meals))
	for _, e := range log.Meals {
		byID[e.ID] = e
	}
	out := make([]MealLogEntry, len(served))
	for i, m := range served {
		if rec, ok := byID[m.ID]; ok {
			m.Status = rec.Status
			m.LoggedAtTime = rec.LoggedAtTime
		}
		out[i] = m
	}
	return out
}
