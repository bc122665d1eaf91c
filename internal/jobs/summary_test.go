package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nutrilife/backend/internal/jobs"
	"github.com/nutrilife/backend/internal/nutrition"
	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/testhelpers"
)

type mockRecomputer struct {
	mock.Mock
}

func (m *mockRecomputer) RecomputeAll(ctx context.Context, date string) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

func TestNightlyJobTargetsPreviousLocalDay(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)

	rec := new(mockRecomputer)
	rec.On("RecomputeAll", mock.Anything, "2024-03-10").Return(3, nil).Once()

	job := jobs.NewNightlySummaryJob(rec, manila, nil)
	// 16:05 UTC on the 10th is already 00:05 on the 11th in Manila.
	job.SetClock(testhelpers.FixedClock(time.Date(2024, 3, 10, 16, 5, 0, 0, time.UTC)))
	job.Run()

	rec.AssertExpectations(t)
}

func TestNightlyJobReportsFailure(t *testing.T) {
	rec := new(mockRecomputer)
	rec.On("RecomputeAll", mock.Anything, "2024-03-09").Return(0, errors.New("db down")).Once()

	n, err := jobs.NewNightlySummaryJob(rec, nil, nil).RunFor(context.Background(), "2024-03-09")
	assert.Error(t, err)
	assert.Zero(t, n)
}

func TestNightlyJobRecomputesSummaries(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	logs := service.NewMealLogService(db)
	summaries := service.NewSummaryService(db, logs, nil)
	user := testhelpers.CreateTestUser(t, db, "nightly")
	testhelpers.LogEntry(t, db, user.ID, "2024-03-09", nutrition.MealLogEntry{
		ID: "a", MealSlot: nutrition.Dinner, Status: nutrition.StatusEaten, Calories: nutrition.Num(640),
	})

	n, err := jobs.NewNightlySummaryJob(summaries, time.UTC, nil).RunFor(context.Background(), "2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := summaries.Get(context.Background(), user.ID, "2024-03-09")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 640.0, got.Calories)
	assert.Equal(t, 1, got.MealsEaten)
}

func TestSchedulerRegistersJobs(t *testing.T) {
	s := jobs.NewScheduler(time.UTC, nil)
	job := jobs.NewNightlySummaryJob(new(mockRecomputer), time.UTC, nil)

	require.NoError(t, s.Add("", "nightly-summary", job))
	assert.Error(t, s.Add("not a spec", "broken", job))
	assert.Equal(t, 1, s.Entries())

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
