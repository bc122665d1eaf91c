package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nutrilife/backend/internal/nutrition"
	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/types"
)

var _ service.IProgressService = (*MockProgressService)(nil)

// MockProgressService is a mock implementation of the ProgressService interface
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) LogMeal(ctx context.Context, userID uuid.UUID, req *types.LogMealRequest) (*types.LogMealResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.LogMealResponse), args.Error(1)
}

func (m *MockProgressService) MealLogs(ctx context.Context, userID uuid.UUID, date string) (*nutrition.DayLog, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nutrition.DayLog), args.Error(1)
}

func (m *MockProgressService) Metrics(ctx context.Context, userID uuid.UUID) (nutrition.Metrics, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(nutrition.Metrics), args.Error(1)
}

func (m *MockProgressService) History(ctx context.Context, userID uuid.UUID, days int) ([]nutrition.DaySummary, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]nutrition.DaySummary), args.Error(1)
}

func (m *MockProgressService) Series(ctx context.Context, userID uuid.UUID, days int) ([]nutrition.SeriesPoint, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]nutrition.SeriesPoint), args.Error(1)
}

func (m *MockProgressService) Dashboard(ctx context.Context, userID uuid.UUID) (*types.DashboardResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DashboardResponse), args.Error(1)
}
