package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/internal/nutrition"
)

// MealLog is one persisted disposition of a served meal. A user has at most
// one row per (date, meal id); logging again overwrites it.
type MealLog struct {
	ID           uuid.UUID           `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID           `gorm:"type:varchar(36);not null;uniqueIndex:idx_meal_logs_user_day_meal,priority:1" json:"user_id"`
	Date         string              `gorm:"size:10;not null;uniqueIndex:idx_meal_logs_user_day_meal,priority:2" json:"date"`
	MealID       string              `gorm:"size:64;not null;uniqueIndex:idx_meal_logs_user_day_meal,priority:3" json:"meal_id"`
	MealSlot     string              `gorm:"size:20;not null" json:"meal_slot"`
	RecipeName   string              `gorm:"size:255" json:"recipe_name"`
	Status       string              `gorm:"size:10" json:"status"`
	LoggedAt     time.Time           `json:"logged_at"`
	LoggedAtTime string              `gorm:"size:16" json:"logged_at_time"`
	Calories     nutrition.Magnitude `gorm:"type:varchar(64)" json:"calories"`
	Protein      nutrition.Magnitude `gorm:"type:varchar(64)" json:"protein"`
	Carbs        nutrition.Magnitude `gorm:"type:varchar(64)" json:"carbs"`
	Fat          nutrition.Magnitude `gorm:"type:varchar(64)" json:"fat"`
	Fiber        nutrition.Magnitude `gorm:"type:varchar(64)" json:"fiber"`
	Cost         nutrition.Magnitude `gorm:"type:varchar(64)" json:"cost"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func (m *MealLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Entry converts the row into the engine's log entry.
func (m *MealLog) Entry() nutrition.MealLogEntry {
	return nutrition.MealLogEntry{
		ID:           m.MealID,
		MealSlot:     nutrition.MealSlot(m.MealSlot),
		RecipeName:   m.RecipeName,
		Status:       nutrition.Status(m.Status),
		LoggedAtTime: m.LoggedAtTime,
		Calories:     m.Calories,
		Protein:      m.Protein,
		Carbs:        m.Carbs,
		Fat:          m.Fat,
		Fiber:        m.Fiber,
		Cost:         m.Cost,
	}
}

// NewMealLog builds the row recording entry on date for userID.
func NewMealLog(userID uuid.UUID, date string, entry nutrition.MealLogEntry, loggedAt time.Time) *MealLog {
	return &MealLog{
		UserID:       userID,
		Date:         date,
		MealID:       entry.ID,
		MealSlot:     string(entry.MealSlot),
		RecipeName:   entry.RecipeName,
		Status:       string(entry.Status),
		LoggedAt:     loggedAt,
		LoggedAtTime: entry.LoggedAtTime,
		Calories:     entry.Calories,
		Protein:      entry.Protein,
		Carbs:        entry.Carbs,
		Fat:          entry.Fat,
		Fiber:        entry.Fiber,
		Cost:         entry.Cost,
	}
}

// DailySummary caches the aggregate of one user's day.
type DailySummary struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_calorie_summaries_user_day,priority:1" json:"user_id"`
	SummaryDate  string    `gorm:"size:10;not null;uniqueIndex:idx_calorie_summaries_user_day,priority:2" json:"summary_date"`
	Calories     float64   `json:"calories"`
	Protein      float64   `json:"protein"`
	Carbs        float64   `json:"carbs"`
	Fat          float64   `json:"fat"`
	Fiber        float64   `json:"fiber"`
	Cost         float64   `json:"cost"`
	MealsEaten   int       `json:"meals_eaten"`
	MealsSkipped int       `json:"meals_skipped"`
	TotalMeals   int       `json:"total_meals"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (DailySummary) TableName() string {
	return "calorie_summaries"
}

func (s *DailySummary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
