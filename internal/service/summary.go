package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
)

// SummaryService maintains the calorie_summaries rows. Recomputing a day is
// idempotent.
type SummaryService struct {
	db     *gorm.DB
	logs   LogStore
	logger *zap.Logger
}

func NewSummaryService(db *gorm.DB, logs LogStore, logger *zap.Logger) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{db: db, logs: logs, logger: logger}
}

// Recompute rebuilds the summary of one day from its log.
func (s *SummaryService) Recompute(ctx context.Context, userID uuid.UUID, date string) (*models.DailySummary, error) {
	day, err := s.logs.DayLog(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	agg := nutrition.AggregateDay(day.Meals)

	row := &models.DailySummary{
		UserID:       userID,
		SummaryDate:  date,
		Calories:     agg.Totals.Calories,
		Protein:      agg.Totals.Protein,
		Carbs:        agg.Totals.Carbs,
		Fat:          agg.Totals.Fat,
		Fiber:        agg.Totals.Fiber,
		Cost:         agg.TotalCost,
		MealsEaten:   agg.EatenCount,
		MealsSkipped: agg.SkippedCount,
		TotalMeals:   agg.TotalCount,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "summary_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"calories", "protein", "carbs", "fat", "fiber", "cost",
			"meals_eaten", "meals_skipped", "total_meals", "updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert daily summary: %w", err)
	}
	return s.Get(ctx, userID, date)
}

// Get returns the stored summary for the day, nil when none exists.
func (s *SummaryService) Get(ctx context.Context, userID uuid.UUID, date string) (*models.DailySummary, error) {
	var row models.DailySummary
	err := s.db.WithContext(ctx).Where("user_id = ? AND summary_date = ?", userID, date).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// RecomputeAll rebuilds the summary of date for every user who logged that
// day. Failures for one user are logged and do not stop the rest.
func (s *SummaryService) RecomputeAll(ctx context.Context, date string) (int, error) {
	var userIDs []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.MealLog{}).
		Where("date = ?", date).
		Distinct().Pluck("user_id", &userIDs).Error; err != nil {
		return 0, fmt.Errorf("failed to list users for %s: %w", date, err)
	}

	done := 0
	for _, id := range userIDs {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if _, err := s.Recompute(ctx, id, date); err != nil {
			s.logger.Warn("summary recompute failed",
				zap.String("user_id", id.String()),
				zap.String("date", date),
				zap.Error(err))
			continue
		}
		done++
	}
	return done, nil
}
