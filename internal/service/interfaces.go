package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
	"github.com/nutrilife/backend/internal/types"
)

// LogStore reads and writes a user's meal dispositions grouped by day.
// Dates use nutrition.DateLayout; an empty bound is open.
type LogStore interface {
	DayLogs(ctx context.Context, userID uuid.UUID, from, to string) ([]nutrition.DayLog, error)
	DayLog(ctx context.Context, userID uuid.UUID, date string) (nutrition.DayLog, error)
	UpsertEntry(ctx context.Context, userID uuid.UUID, date string, entry nutrition.MealLogEntry) error
}

// PlanStore persists the active plan and its day pointer. GetPlan returns
// ErrPlanNotFound when the user has none.
type PlanStore interface {
	GetPlan(ctx context.Context, userID uuid.UUID) (*models.MealPlan, error)
	SavePlan(ctx context.Context, userID uuid.UUID, days []nutrition.PlanDay, currentIndex int) (*models.MealPlan, error)
	SetCurrentIndex(ctx context.Context, planID uuid.UUID, index int) error
}

// BudgetStore returns the weekly budget, nil when none is set.
type BudgetStore interface {
	WeeklyBudget(ctx context.Context, userID uuid.UUID) (*float64, error)
}

// TargetsSource returns the daily nutrition targets for a user.
type TargetsSource interface {
	Targets(ctx context.Context, userID uuid.UUID) (nutrition.NutritionTargets, error)
}

// MetricsCache memoizes computed metrics per user and anchor date. Cache
// failures are never fatal to callers. Writes are last-write-wins: a
// computation that started before an Invalidate may Set its stale result
// afterwards, and that entry is served until it expires.
type MetricsCache interface {
	Get(ctx context.Context, userID uuid.UUID, anchorDate string) (*nutrition.Metrics, bool)
	Set(ctx context.Context, userID uuid.UUID, anchorDate string, m nutrition.Metrics)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Signup(ctx context.Context, req *types.SignupRequest) (*models.User, error)
	Login(ctx context.Context, emailOrUsername, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.ProfileResponse, error)
	LatestBMI(ctx context.Context, userID uuid.UUID) (*models.BMIRecord, error)
	WeeklyBudget(ctx context.Context, userID uuid.UUID) (*float64, error)
}

// IRecipeService defines the interface for recipe catalog operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, createdBy *uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
}

// IPlanService defines the interface for meal plan operations
type IPlanService interface {
	GetPlan(ctx context.Context, userID uuid.UUID) (*models.MealPlan, error)
	SavePlanDays(ctx context.Context, userID uuid.UUID, days []nutrition.PlanDay) (*types.TodayPlan, error)
	GeneratePlan(ctx context.Context, userID uuid.UUID, req *types.GeneratePlanRequest) (*types.TodayPlan, error)
	Today(ctx context.Context, userID uuid.UUID) (*types.TodayPlan, error)
	Advance(ctx context.Context, userID uuid.UUID) (*types.AdvanceResponse, error)
}

// IProgressService defines the interface for logging and progress views
type IProgressService interface {
	LogMeal(ctx context.Context, userID uuid.UUID, req *types.LogMealRequest) (*types.LogMealResponse, error)
	MealLogs(ctx context.Context, userID uuid.UUID, date string) (*nutrition.DayLog, error)
	Metrics(ctx context.Context, userID uuid.UUID) (nutrition.Metrics, error)
	History(ctx context.Context, userID uuid.UUID, days int) ([]nutrition.DaySummary, error)
	Series(ctx context.Context, userID uuid.UUID, days int) ([]nutrition.SeriesPoint, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*types.DashboardResponse, error)
}

// IDetectionService defines the interface for ingredient recognition
type IDetectionService interface {
	Detect(ctx context.Context, userID uuid.UUID, category string, image []byte, contentType string) (*types.DetectionResponse, error)
}
