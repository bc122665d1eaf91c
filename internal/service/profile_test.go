package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/testhelpers"
	"github.com/nutrilife/backend/internal/types"
)

func fp(f float64) *float64 { return &f }

func TestUpdateProfileRecordsBMI(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewProfileService(db, nil, nil)
	user := testhelpers.CreateTestUser(t, db, "ana")
	ctx := context.Background()

	resp, err := svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{
		FullName:        "Ana Cruz",
		HeightCm:        fp(160),
		CurrentWeightKg: fp(64),
		BudgetSettings:  json.RawMessage(`{"weeklyBudget": "1400"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Cruz", resp.FullName)
	assert.Equal(t, "ana", resp.Username)
	require.NotNil(t, resp.WeeklyBudget)
	assert.Equal(t, 1400.0, *resp.WeeklyBudget)

	bmi, err := svc.LatestBMI(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, bmi)
	assert.Equal(t, 25.0, bmi.BMI)
	assert.Equal(t, nutrition.BMICategory(25.0), bmi.Category)
}

func TestUpdateProfileWithoutMeasurementsSkipsBMI(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewProfileService(db, nil, nil)
	user := testhelpers.CreateTestUser(t, db, "ben")

	_, err := svc.UpdateProfile(context.Background(), user.ID, &types.UpdateProfileRequest{HeightCm: fp(170)})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.BMIRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateProfileRejectsBadInput(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewProfileService(db, nil, nil)
	user := testhelpers.CreateTestUser(t, db, "cara")
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{HeightCm: fp(20), CurrentWeightKg: fp(60)})
	assert.ErrorIs(t, err, nutrition.ErrImplausibleBody)

	_, err = svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{BudgetSettings: json.RawMessage(`[1,2]`)})
	assert.ErrorIs(t, err, service.ErrInvalidJSONField)

	_, err = svc.UpdateProfile(ctx, uuid.New(), &types.UpdateProfileRequest{})
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestBudgetChangeInvalidatesMetrics(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	cache := service.NewMemoryMetricsCache()
	svc := service.NewProfileService(db, cache, nil)
	user := testhelpers.CreateTestUser(t, db, "dan")
	ctx := context.Background()

	cache.Set(ctx, user.ID, "2024-03-10", nutrition.Metrics{WeeklyAdherence: 50})
	_, err := svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{FullName: "Dan"})
	require.NoError(t, err)
	_, ok := cache.Get(ctx, user.ID, "2024-03-10")
	assert.True(t, ok, "unchanged budget keeps the cache")

	_, err = svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{BudgetSettings: json.RawMessage(`{"weeklyBudget": 700}`)})
	require.NoError(t, err)
	_, ok = cache.Get(ctx, user.ID, "2024-03-10")
	assert.False(t, ok)

	budget, err := svc.WeeklyBudget(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, budget)
	assert.Equal(t, 700.0, *budget)
}

func TestWeeklyBudgetUnknownUser(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewProfileService(db, nil, nil)

	budget, err := svc.WeeklyBudget(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, budget)
}
