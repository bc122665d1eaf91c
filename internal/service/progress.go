package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutrilife/backend/internal/nutrition"
	"github.com/nutrilife/backend/internal/types"
)

const (
	DefaultWindowDays = 7
	MaxHistoryDays    = 90
)

var (
	ErrInvalidMealSlot = errors.New("mealSlot must be breakfast, lunch, dinner or snacks")
	ErrInvalidStatus   = errors.New("status must be eaten or skipped")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrMissingMealID   = errors.New("mealId is required")
)

// ProgressOptions configures the progress pipeline.
type ProgressOptions struct {
	WindowDays int
	Location   *time.Location
}

// ProgressService records meal dispositions and derives every progress view
// from the logged days: read logs, select the window, aggregate each day,
// compute metrics.
type ProgressService struct {
	logs      LogStore
	summaries *SummaryService
	plans     IPlanService
	profiles  IProfileService
	budgets   BudgetStore
	targets   TargetsSource
	cache     MetricsCache
	logger    *zap.Logger

	windowDays int
	loc        *time.Location
	now        func() time.Time
}

var _ IProgressService = (*ProgressService)(nil)

func NewProgressService(
	logs LogStore,
	summaries *SummaryService,
	plans IPlanService,
	profiles IProfileService,
	targets TargetsSource,
	cache MetricsCache,
	opts ProgressOptions,
	logger *zap.Logger,
) *ProgressService {
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultWindowDays
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if targets == nil {
		targets = NewDefaultTargets()
	}
	if cache == nil {
		cache = NoopMetricsCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{
		logs:       logs,
		summaries:  summaries,
		plans:      plans,
		profiles:   profiles,
		budgets:    profiles,
		targets:    targets,
		cache:      cache,
		logger:     logger,
		windowDays: opts.WindowDays,
		loc:        opts.Location,
		now:        time.Now,
	}
}

// SetClock replaces the time source.
func (s *ProgressService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ProgressService) anchor() time.Time {
	return s.now().In(s.loc)
}

// LogMeal writes one disposition, then refreshes everything derived from
// the log: the day's summary, the cached metrics and the plan pointer.
func (s *ProgressService) LogMeal(ctx context.Context, userID uuid.UUID, req *types.LogMealRequest) (*types.LogMealResponse, error) {
	entry, date, err := s.entryFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.logs.UpsertEntry(ctx, userID, date, entry); err != nil {
		return nil, err
	}

	summary, err := s.summaries.Recompute(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, userID)

	resp := &types.LogMealResponse{Entry: entry, Summary: summary}
	if s.plans != nil {
		adv, err := s.plans.Advance(ctx, userID)
		switch {
		case errors.Is(err, ErrPlanNotFound):
		case err != nil:
			s.logger.Warn("plan advance after log failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		default:
			resp.Plan = adv
		}
	}
	return resp, nil
}

func (s *ProgressService) entryFromRequest(req *types.LogMealRequest) (nutrition.MealLogEntry, string, error) {
	if strings.TrimSpace(req.MealID) == "" {
		return nutrition.MealLogEntry{}, "", ErrMissingMealID
	}
	slot, ok := nutrition.ParseMealSlot(req.MealSlot)
	if !ok {
		return nutrition.MealLogEntry{}, "", ErrInvalidMealSlot
	}
	status, ok := nutrition.ParseStatus(req.Status)
	if !ok || !status.Dispositioned() {
		return nutrition.MealLogEntry{}, "", ErrInvalidStatus
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nutrition.MealLogEntry{}, "", err
	}

	loggedAt := req.LoggedAtTime
	if loggedAt == "" {
		loggedAt = s.anchor().Format("15:04")
	}

	return nutrition.MealLogEntry{
		ID:           strings.TrimSpace(req.MealID),
		MealSlot:     slot,
		RecipeName:   req.RecipeName,
		Status:       status,
		LoggedAtTime: loggedAt,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Carbs:        req.Carbs,
		Fat:          req.Fat,
		Fiber:        req.Fiber,
		Cost:         req.Cost,
	}, date, nil
}

// resolveDate defaults to today and rejects anything but YYYY-MM-DD.
func (s *ProgressService) resolveDate(date string) (string, error) {
	if date == "" {
		return nutrition.DateKey(s.anchor()), nil
	}
	if _, err := time.Parse(nutrition.DateLayout, date); err != nil {
		return "", ErrInvalidDate
	}
	return date, nil
}

// MealLogs returns the log of one day, today by default.
func (s *ProgressService) MealLogs(ctx context.Context, userID uuid.UUID, date string) (*nutrition.DayLog, error) {
	d, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	day, err := s.logs.DayLog(ctx, userID, d)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// Metrics computes the rolling-window metrics anchored at today. Plan meals
// served in the window but never logged count as undispositioned.
func (s *ProgressService) Metrics(ctx context.Context, userID uuid.UUID) (nutrition.Metrics, error) {
	anchor := s.anchor()
	if m, ok := s.cache.Get(ctx, userID, nutrition.DateKey(anchor)); ok {
		return *m, nil
	}

	window, err := s.metricsWindow(ctx, userID, anchor)
	if err != nil {
		return nutrition.Metrics{}, err
	}
	return s.computeMetrics(ctx, userID, anchor, window), nil
}

func (s *ProgressService) computeMetrics(ctx context.Context, userID uuid.UUID, anchor time.Time, window []nutrition.DayLog) nutrition.Metrics {
	m := nutrition.ComputeMetrics(window, s.targetsFor(ctx, userID), s.budgetFor(ctx, userID))
	s.cache.Set(ctx, userID, nutrition.DateKey(anchor), m)
	return m
}

func (s *ProgressService) metricsWindow(ctx context.Context, userID uuid.UUID, anchor time.Time) ([]nutrition.DayLog, error) {
	window, err := s.window(ctx, userID, s.windowDays, anchor)
	if err != nil {
		return nil, err
	}
	return s.withServedMeals(ctx, userID, window, anchor), nil
}

// withServedMeals merges the meals of every plan day up to the pointer into
// the window day they were served on: the day's own date, or today for an
// undated current day. A plan that cannot be read leaves the window as is.
func (s *ProgressService) withServedMeals(ctx context.Context, userID uuid.UUID, window []nutrition.DayLog, anchor time.Time) []nutrition.DayLog {
	if s.plans == nil {
		return window
	}
	plan, err := s.plans.GetPlan(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrPlanNotFound) {
			s.logger.Warn("plan unavailable for metrics", zap.String("user_id", userID.String()), zap.Error(err))
		}
		return window
	}

	todayKey := nutrition.DateKey(anchor)
	from := nutrition.DateKey(anchor.AddDate(0, 0, -(s.windowDays - 1)))
	days := plan.PlanDays()
	for i := 0; i <= plan.CurrentIndex && i < len(days); i++ {
		date := days[i].Date
		if date == "" {
			if i != plan.CurrentIndex {
				continue
			}
			date = todayKey
		}
		if date < from || date > todayKey {
			continue
		}
		window = nutrition.MergeServed(window, date, nutrition.MealsForDay(days[i]))
	}
	return window
}

// History summarizes the last days, newest first.
func (s *ProgressService) History(ctx context.Context, userID uuid.UUID, days int) ([]nutrition.DaySummary, error) {
	window, err := s.window(ctx, userID, clampDays(days), s.anchor())
	if err != nil {
		return nil, err
	}
	sorted := nutrition.SortDays(window, true)
	out := make([]nutrition.DaySummary, 0, len(sorted))
	for _, d := range sorted {
		out = append(out, nutrition.SummarizeDay(d))
	}
	return out, nil
}

// Series returns eaten totals per day against the targets, oldest first.
func (s *ProgressService) Series(ctx context.Context, userID uuid.UUID, days int) ([]nutrition.SeriesPoint, error) {
	window, err := s.window(ctx, userID, clampDays(days), s.anchor())
	if err != nil {
		return nil, err
	}
	return nutrition.NutritionSeries(window, s.targetsFor(ctx, userID)), nil
}

// Dashboard assembles the home screen. Missing pieces (no profile, no plan)
// are left nil rather than failing the whole view.
func (s *ProgressService) Dashboard(ctx context.Context, userID uuid.UUID) (*types.DashboardResponse, error) {
	anchor := s.anchor()
	todayKey := nutrition.DateKey(anchor)
	resp := &types.DashboardResponse{}

	if s.profiles != nil {
		profile, err := s.profiles.GetProfile(ctx, userID)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		resp.Profile = profile
		bmi, err := s.profiles.LatestBMI(ctx, userID)
		if err != nil {
			return nil, err
		}
		resp.LatestBMI = bmi
	}

	if s.plans != nil {
		today, err := s.plans.Today(ctx, userID)
		if err != nil && !errors.Is(err, ErrPlanNotFound) {
			return nil, err
		}
		resp.Today = today
	}

	todayLog, err := s.logs.DayLog(ctx, userID, todayKey)
	if err != nil {
		return nil, err
	}
	resp.MealsToday = todayLog.Meals

	if resp.TodaySummary, err = s.summaries.Get(ctx, userID, todayKey); err != nil {
		return nil, err
	}

	window, err := s.metricsWindow(ctx, userID, anchor)
	if err != nil {
		return nil, err
	}
	var metrics nutrition.Metrics
	if cached, ok := s.cache.Get(ctx, userID, todayKey); ok {
		metrics = *cached
	} else {
		metrics = s.computeMetrics(ctx, userID, anchor, window)
	}
	resp.Metrics = metrics

	// Served but not yet dispositioned plan meals count toward today's total.
	served := nutrition.DayLog{Date: todayKey, Meals: append([]nutrition.MealLogEntry(nil), todayLog.Meals...)}
	if resp.Today != nil {
		for _, m := range resp.Today.Meals {
			if !containsMeal(served.Meals, m.ID) {
				served.Meals = append(served.Meals, m)
			}
		}
	}
	resp.QuickStats = nutrition.ComputeQuickStats(served, window, metrics, s.budgetFor(ctx, userID))
	return resp, nil
}

func (s *ProgressService) window(ctx context.Context, userID uuid.UUID, n int, anchor time.Time) ([]nutrition.DayLog, error) {
	if n <= 0 {
		return []nutrition.DayLog{}, nil
	}
	from := nutrition.DateKey(anchor.AddDate(0, 0, -(n - 1)))
	days, err := s.logs.DayLogs(ctx, userID, from, nutrition.DateKey(anchor))
	if err != nil {
		return nil, fmt.Errorf("failed to read day logs: %w", err)
	}
	return nutrition.SelectWindow(days, n, anchor), nil
}

// budgetFor falls back to "no budget" when the budget cannot be read.
func (s *ProgressService) budgetFor(ctx context.Context, userID uuid.UUID) *float64 {
	if s.budgets == nil {
		return nil
	}
	budget, err := s.budgets.WeeklyBudget(ctx, userID)
	if err != nil {
		s.logger.Warn("weekly budget unavailable", zap.String("user_id", userID.String()), zap.Error(err))
		return nil
	}
	return budget
}

// targetsFor falls back to the default targets when the source fails.
func (s *ProgressService) targetsFor(ctx context.Context, userID uuid.UUID) nutrition.NutritionTargets {
	t, err := s.targets.Targets(ctx, userID)
	if err != nil {
		s.logger.Warn("nutrition targets unavailable", zap.String("user_id", userID.String()), zap.Error(err))
		return nutrition.DefaultTargets
	}
	return t
}

func clampDays(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	if days > MaxHistoryDays {
		return MaxHistoryDays
	}
	return days
}

func containsMeal(meals []nutrition.MealLogEntry, id string) bool {
	for _, m := range meals {
		if m.ID == id {
			return true
		}
	}
	return false
}
