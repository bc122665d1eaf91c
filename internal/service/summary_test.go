package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/testhelpers"
)

func TestRecomputeIsIdempotent(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	logs := service.NewMealLogService(db)
	svc := service.NewSummaryService(db, logs, nil)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, logs.UpsertEntry(ctx, userID, "2024-03-10", entry("b", nutrition.Breakfast, nutrition.StatusEaten, 350, 45.5)))
	require.NoError(t, logs.UpsertEntry(ctx, userID, "2024-03-10", entry("l", nutrition.Lunch, nutrition.StatusSkipped, 600, 90)))
	require.NoError(t, logs.UpsertEntry(ctx, userID, "2024-03-10", entry("d", nutrition.Dinner, nutrition.StatusUnset, 700, 110)))

	first, err := svc.Recompute(ctx, userID, "2024-03-10")
	require.NoError(t, err)
	second, err := svc.Recompute(ctx, userID, "2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 350.0, second.Calories)
	assert.Equal(t, 45.5, second.Cost)
	assert.Equal(t, 1, second.MealsEaten)
	assert.Equal(t, 1, second.MealsSkipped)
	assert.Equal(t, 3, second.TotalMeals)

	var count int64
	require.NoError(t, db.Model(&models.DailySummary{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecomputeReflectsNewLogs(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	logs := service.NewMealLogService(db)
	svc := service.NewSummaryService(db, logs, nil)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, logs.UpsertEntry(ctx, userID, "2024-03-10", entry("b", nutrition.Breakfast, nutrition.StatusEaten, 350, 45)))
	_, err := svc.Recompute(ctx, userID, "2024-03-10")
	require.NoError(t, err)

	require.NoError(t, logs.UpsertEntry(ctx, userID, "2024-03-10", entry("b", nutrition.Breakfast, nutrition.StatusSkipped, 350, 45)))
	got, err := svc.Recompute(ctx, userID, "2024-03-10")
	require.NoError(t, err)
	assert.Zero(t, got.Calories)
	assert.Zero(t, got.MealsEaten)
	assert.Equal(t, 1, got.MealsSkipped)
}

func TestRecomputeAll(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	logs := service.NewMealLogService(db)
	svc := service.NewSummaryService(db, logs, nil)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, logs.UpsertEntry(ctx, a, "2024-03-09", entry("x", nutrition.Lunch, nutrition.StatusEaten, 500, 80)))
	require.NoError(t, logs.UpsertEntry(ctx, a, "2024-03-09", entry("y", nutrition.Dinner, nutrition.StatusEaten, 600, 90)))
	require.NoError(t, logs.UpsertEntry(ctx, b, "2024-03-09", entry("z", nutrition.Lunch, nutrition.StatusSkipped, 500, 80)))
	require.NoError(t, logs.UpsertEntry(ctx, b, "2024-03-10", entry("w", nutrition.Lunch, nutrition.StatusEaten, 500, 80)))

	n, err := svc.RecomputeAll(ctx, "2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := svc.Get(ctx, a, "2024-03-09")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1100.0, got.Calories)

	missing, err := svc.Get(ctx, b, "2024-03-10")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
