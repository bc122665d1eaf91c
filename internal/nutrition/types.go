package nutrition

import (
	"strings"
)

// DateLayout is the ISO calendar-day layout used to key day logs.
const DateLayout = "2006-01-02"

// MealSlot identifies where a meal sits in the day.
type MealSlot string

const (
	Breakfast MealSlot = "breakfast"
	Lunch     MealSlot = "lunch"
	Dinner    MealSlot = "dinner"
	Snacks    MealSlot = "snacks"
)

// SlotOrder is the fixed presentation order of meal slots.
var SlotOrder = []MealSlot{Breakfast, Lunch, Dinner, Snacks}

// ParseMealSlot maps free-form labels ("Breakfast", "snack") onto a MealSlot.
func ParseMealSlot(s string) (MealSlot, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast":
		return Breakfast, true
	case "lunch":
		return Lunch, true
	case "dinner":
		return Dinner, true
	case "snack", "snacks":
		return Snacks, true
	}
	return "", false
}

// Status is the disposition of a served meal. The zero value means the meal
// has been served but not yet dispositioned.
type Status string

const (
	StatusUnset   Status = ""
	StatusEaten   Status = "eaten"
	StatusSkipped Status = "skipped"
)

// ParseStatus accepts the canonical values plus the "ate" label the web
// client sends.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eaten", "ate":
		return StatusEaten, true
	case "skipped", "skip":
		return StatusSkipped, true
	case "":
		return StatusUnset, true
	}
	return StatusUnset, false
}

// Dispositioned reports whether the meal was eaten or skipped.
func (s Status) Dispositioned() bool {
	return s == StatusEaten || s == StatusSkipped
}

// MealLogEntry is one disposition of one planned meal.
type MealLogEntry struct {
	ID           string    `json:"id"`
	MealSlot     MealSlot  `json:"mealSlot"`
	RecipeName   string    `json:"recipeName"`
	Status       Status    `json:"status"`
	LoggedAtTime string    `json:"loggedAtTime,omitempty"`
	Calories     Magnitude `json:"calories"`
	Protein      Magnitude `json:"protein"`
	Carbs        Magnitude `json:"carbs"`
	Fat          Magnitude `json:"fat"`
	Fiber        Magnitude `json:"fiber"`
	Cost         Magnitude `json:"cost"`
}

// DayLog is one calendar day's collection of meal log entries.
type DayLog struct {
	Date  string         `json:"date"`
	Meals []MealLogEntry `json:"meals"`
}

// Upsert records entry, replacing any prior entry with the same meal id.
func (d *DayLog) Upsert(entry MealLogEntry) {
	for i := range d.Meals {
		if d.Meals[i].ID == entry.ID {
			d.Meals[i] = entry
			return
		}
	}
	d.Meals = append(d.Meals, entry)
}

// NutritionTargets is the daily reference intake.
type NutritionTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// DefaultTargets are the fixed daily targets used when no per-user targets exist.
var DefaultTargets = NutritionTargets{
	Calories: 2000,
	Protein:  75,
	Carbs:    250,
	Fat:      70,
	Fiber:    30,
}

// NutrientTotals holds summed nutrient magnitudes.
type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// PlannedMeal is a meal scheduled in a plan day, mirrored from its recipe.
type PlannedMeal struct {
	ID         string    `json:"id"`
	RecipeName string    `json:"recipeName"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Calories   Magnitude `json:"calories"`
	Protein    Magnitude `json:"protein"`
	Carbs      Magnitude `json:"carbs"`
	Fat        Magnitude `json:"fat"`
	Fiber      Magnitude `json:"fiber"`
	Cost       Magnitude `json:"cost"`
}

// PlanDay is one day of a generated meal plan.
type PlanDay struct {
	Date  string                   `json:"date,omitempty"`
	Meals map[MealSlot]PlannedMeal `json:"meals"`
}
