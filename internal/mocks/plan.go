package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/types"
)

var _ service.IPlanService = (*MockPlanService)(nil)

// MockPlanService is a mock implementation of the PlanService interface
type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) GetPlan(ctx context.Context, userID uuid.UUID) (*models.MealPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

func (m *MockPlanService) SavePlanDays(ctx context.Context, userID uuid.UUID, days []nutrition.PlanDay) (*types.TodayPlan, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TodayPlan), args.Error(1)
}

func (m *MockPlanService) GeneratePlan(ctx context.Context, userID uuid.UUID, req *types.GeneratePlanRequest) (*types.TodayPlan, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TodayPlan), args.Error(1)
}

func (m *MockPlanService) Today(ctx context.Context, userID uuid.UUID) (*types.TodayPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TodayPlan), args.Error(1)
}

func (m *MockPlanService) Advance(ctx context.Context, userID uuid.UUID) (*types.AdvanceResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AdvanceResponse), args.Error(1)
}
