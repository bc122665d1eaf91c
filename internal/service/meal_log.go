package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
)

// MealLogService is the LogStore backed by the meal_logs table.
type MealLogService struct {
	db  *gorm.DB
	now func() time.Time
}

var _ LogStore = (*MealLogService)(nil)

func NewMealLogService(db *gorm.DB) *MealLogService {
	return &MealLogService{db: db, now: time.Now}
}

// DayLogs returns the user's logged days between from and to inclusive,
// ascending by date. Entries within a day keep their logging order.
func (s *MealLogService) DayLogs(ctx context.Context, userID uuid.UUID, from, to string) ([]nutrition.DayLog, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var rows []models.MealLog
	if err := q.Order("date ASC").Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read meal logs: %w", err)
	}

	var days []nutrition.DayLog
	for i := range rows {
		if n := len(days); n == 0 || days[n-1].Date != rows[i].Date {
			days = append(days, nutrition.DayLog{Date: rows[i].Date})
		}
		last := &days[len(days)-1]
		last.Meals = append(last.Meals, rows[i].Entry())
	}
	return days, nil
}

// DayLog returns a single day. A day with nothing logged has no meals.
func (s *MealLogService) DayLog(ctx context.Context, userID uuid.UUID, date string) (nutrition.DayLog, error) {
	days, err := s.DayLogs(ctx, userID, date, date)
	if err != nil {
		return nutrition.DayLog{}, err
	}
	if len(days) == 0 {
		return nutrition.DayLog{Date: date, Meals: []nutrition.MealLogEntry{}}, nil
	}
	return days[0], nil
}

// UpsertEntry writes the entry for (user, date, meal id), overwriting any
// earlier disposition of the same meal.
func (s *MealLogService) UpsertEntry(ctx context.Context, userID uuid.UUID, date string, entry nutrition.MealLogEntry) error {
	row := models.NewMealLog(userID, date, entry, s.now())
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "meal_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"meal_slot", "recipe_name", "status", "logged_at", "logged_at_time",
			"calories", "protein", "carbs", "fat", "fiber", "cost", "updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert meal log: %w", err)
	}
	return nil
}
