package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/nutrition"
	"github.com/nutrilife/backend/internal/types"
)

const (
	DefaultPlanDays = 7
	MaxPlanDays     = 28
)

var (
	ErrPlanNotFound = errors.New("no active meal plan")
	ErrEmptyPlan    = errors.New("meal plan must contain at least one day")
	ErrInvalidPlan  = errors.New("invalid meal plan")
	ErrNoRecipes    = errors.New("recipe catalog is empty")
)

// PlanRepository is the PlanStore backed by the meal_plans table. A user
// has at most one active plan.
type PlanRepository struct {
	db *gorm.DB
}

var _ PlanStore = (*PlanRepository)(nil)

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) GetPlan(ctx context.Context, userID uuid.UUID) (*models.MealPlan, error) {
	var plan models.MealPlan
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) SavePlan(ctx context.Context, userID uuid.UUID, days []nutrition.PlanDay, currentIndex int) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&plan).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		plan.UserID = userID
		plan.CurrentIndex = currentIndex
		if err := plan.SetPlanDays(days); err != nil {
			return err
		}
		return tx.Save(&plan).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}
	return &plan, nil
}

// SetCurrentIndex only moves the pointer forward; a stale write is a no-op.
func (r *PlanRepository) SetCurrentIndex(ctx context.Context, planID uuid.UUID, index int) error {
	return r.db.WithContext(ctx).Model(&models.MealPlan{}).
		Where("id = ? AND current_index < ?", planID, index).
		Update("current_index", index).Error
}

// PlanService serves the current plan day and moves the pointer forward
// once every meal of that day is dispositioned.
type PlanService struct {
	store   PlanStore
	logs    LogStore
	recipes *RecipeService
	cache   MetricsCache
	logger  *zap.Logger
	loc     *time.Location
	now     func() time.Time
}

var _ IPlanService = (*PlanService)(nil)

func NewPlanService(store PlanStore, logs LogStore, recipes *RecipeService, loc *time.Location, logger *zap.Logger) *PlanService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{
		store:   store,
		logs:    logs,
		recipes: recipes,
		cache:   NoopMetricsCache{},
		logger:  logger,
		loc:     loc,
		now:     time.Now,
	}
}

// SetClock replaces the time source.
func (s *PlanService) SetClock(now func() time.Time) {
	s.now = now
}

// SetMetricsCache sets the cache invalidated whenever the served meals
// change, since unlogged plan meals count toward the metrics.
func (s *PlanService) SetMetricsCache(cache MetricsCache) {
	if cache == nil {
		cache = NoopMetricsCache{}
	}
	s.cache = cache
}

func (s *PlanService) today() string {
	return nutrition.DateKey(s.now().In(s.loc))
}

func (s *PlanService) GetPlan(ctx context.Context, userID uuid.UUID) (*models.MealPlan, error) {
	return s.store.GetPlan(ctx, userID)
}

// SavePlanDays replaces the active plan. The pointer starts at the day dated
// today, or at the first day.
func (s *PlanService) SavePlanDays(ctx context.Context, userID uuid.UUID, days []nutrition.PlanDay) (*types.TodayPlan, error) {
	clean, err := normalizePlan(days)
	if err != nil {
		return nil, err
	}
	plan, err := s.store.SavePlan(ctx, userID, clean, nutrition.InitialIndex(clean, s.today()))
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, userID)
	view, _, err := s.view(ctx, plan)
	return view, err
}

// GeneratePlan builds a plan from the recipe catalog, rotating through the
// recipes of each slot so consecutive days differ where the catalog allows.
func (s *PlanService) GeneratePlan(ctx context.Context, userID uuid.UUID, req *types.GeneratePlanRequest) (*types.TodayPlan, error) {
	n := req.Days
	if n == 0 {
		n = DefaultPlanDays
	}
	if n < 0 || n > MaxPlanDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidPlan, MaxPlanDays)
	}

	start := s.now().In(s.loc)
	if req.StartDate != "" {
		parsed, err := time.ParseInLocation(nutrition.DateLayout, req.StartDate, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrInvalidPlan)
		}
		start = parsed
	}

	bySlot, err := s.recipes.BySlot(ctx)
	if err != nil {
		return nil, err
	}
	if len(bySlot) == 0 {
		return nil, ErrNoRecipes
	}

	days := make([]nutrition.PlanDay, n)
	for i := range days {
		day := nutrition.PlanDay{
			Date:  nutrition.DateKey(start.AddDate(0, 0, i)),
			Meals: make(map[nutrition.MealSlot]nutrition.PlannedMeal),
		}
		for _, slot := range nutrition.SlotOrder {
			list := bySlot[slot]
			if len(list) == 0 {
				continue
			}
			day.Meals[slot] = list[i%len(list)].Planned(uuid.NewString())
		}
		days[i] = day
	}

	s.logger.Info("meal plan generated",
		zap.String("user_id", userID.String()),
		zap.Int("days", n),
		zap.String("start", days[0].Date))
	return s.SavePlanDays(ctx, userID, days)
}

// Today returns the plan day under the pointer with today's dispositions.
func (s *PlanService) Today(ctx context.Context, userID uuid.UUID) (*types.TodayPlan, error) {
	plan, err := s.store.GetPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	view, _, err := s.view(ctx, plan)
	return view, err
}

// Advance moves to the next plan day when the current one is complete. The
// pointer is only written when it moves.
func (s *PlanService) Advance(ctx context.Context, userID uuid.UUID) (*types.AdvanceResponse, error) {
	plan, err := s.store.GetPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	current, days, err := s.view(ctx, plan)
	if err != nil {
		return nil, err
	}

	adv := nutrition.AdvanceIfComplete(days, plan.CurrentIndex, current.Meals)
	if !adv.Advanced() {
		return &types.AdvanceResponse{Advanced: false, Plan: *current}, nil
	}

	if err := s.store.SetCurrentIndex(ctx, plan.ID, adv.NextIndex); err != nil {
		return nil, fmt.Errorf("failed to move plan pointer: %w", err)
	}
	s.cache.Invalidate(ctx, userID)
	s.logger.Info("meal plan advanced",
		zap.String("user_id", userID.String()),
		zap.Int("from", plan.CurrentIndex),
		zap.Int("to", adv.NextIndex))

	return &types.AdvanceResponse{
		Advanced: true,
		Plan: types.TodayPlan{
			PlanID:       plan.ID,
			CurrentIndex: adv.NextIndex,
			TotalDays:    len(days),
			Date:         days[adv.NextIndex].Date,
			Meals:        adv.NextDayMeals,
		},
	}, nil
}

func (s *PlanService) view(ctx context.Context, plan *models.MealPlan) (*types.TodayPlan, []nutrition.PlanDay, error) {
	days := plan.PlanDays()
	v := &types.TodayPlan{
		PlanID:       plan.ID,
		CurrentIndex: plan.CurrentIndex,
		TotalDays:    len(days),
		Meals:        []nutrition.MealLogEntry{},
	}
	if plan.CurrentIndex < 0 || plan.CurrentIndex >= len(days) {
		v.Exhausted = true
		return v, days, nil
	}

	day := days[plan.CurrentIndex]
	v.Date = day.Date
	meals := nutrition.MealsForDay(day)
	if meals == nil {
		meals = []nutrition.MealLogEntry{}
	}

	// The plan day's own date first, then today, so today's log wins.
	dates := []string{s.today()}
	if day.Date != "" && day.Date != dates[0] {
		dates = []string{day.Date, dates[0]}
	}
	for _, date := range dates {
		log, err := s.logs.DayLog(ctx, plan.UserID, date)
		if err != nil {
			return nil, nil, err
		}
		meals = nutrition.OverlayStatuses(meals, log)
	}

	v.Meals = meals
	v.Complete = allDispositioned(meals)
	v.Exhausted = v.Complete && plan.CurrentIndex == len(days)-1
	return v, days, nil
}

// allDispositioned is vacuously true for a day with no meals.
func allDispositioned(meals []nutrition.MealLogEntry) bool {
	for _, m := range meals {
		if !m.Status.Dispositioned() {
			return false
		}
	}
	return true
}

// normalizePlan canonicalizes slot keys and fills missing meal ids. Meal
// ids must be unique across the plan since logs are keyed by them.
func normalizePlan(days []nutrition.PlanDay) ([]nutrition.PlanDay, error) {
	if len(days) == 0 {
		return nil, ErrEmptyPlan
	}
	seen := make(map[string]bool)
	out := make([]nutrition.PlanDay, len(days))
	for i, d := range days {
		if d.Date != "" {
			if _, err := time.Parse(nutrition.DateLayout, d.Date); err != nil {
				return nil, fmt.Errorf("%w: day %d has malformed date %q", ErrInvalidPlan, i, d.Date)
			}
		}
		meals := make(map[nutrition.MealSlot]nutrition.PlannedMeal, len(d.Meals))
		for key, meal := range d.Meals {
			slot, ok := nutrition.ParseMealSlot(string(key))
			if !ok {
				return nil, fmt.Errorf("%w: day %d has unknown slot %q", ErrInvalidPlan, i, key)
			}
			if _, dup := meals[slot]; dup {
				return nil, fmt.Errorf("%w: day %d repeats slot %q", ErrInvalidPlan, i, slot)
			}
			if meal.ID == "" {
				meal.ID = uuid.NewString()
			}
			if seen[meal.ID] {
				return nil, fmt.Errorf("%w: duplicate meal id %q", ErrInvalidPlan, meal.ID)
			}
			seen[meal.ID] = true
			meals[slot] = meal
		}
		out[i] = nutrition.PlanDay{Date: d.Date, Meals: meals}
	}
	return out, nil
}
