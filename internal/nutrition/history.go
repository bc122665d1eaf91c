package nutrition

// DaySummary is one row of the meal-log history.
type DaySummary struct {
	Date         string  `json:"date"`
	Adherence    int     `json:"adherence"`
	Calories     float64 `json:"calories"`
	MealsEaten   int     `json:"mealsEaten"`
	MealsSkipped int     `json:"mealsSkipped"`
	TotalMeals   int     `json:"totalMeals"`
	TotalCost    float64 `json:"totalCost"`
}

// SummarizeDay reduces a day log to its history row. Adherence here is the
// share of eaten meals, 0 for an empty day.
func SummarizeDay(day DayLog) DaySummary {
	agg := AggregateDay(day.Meals)
	s := DaySummary{
		Date:         day.Date,
		Calories:     roundHalfUp(agg.Totals.Calories),
		MealsEaten:   agg.EatenCount,
		MealsSkipped: agg.SkippedCount,
		TotalMeals:   agg.TotalCount,
		TotalCost:    round2(agg.TotalCost),
	}
	if agg.TotalCount > 0 {
		s.Adherence = int(roundHalfUp(float64(agg.EatenCount) / float64(agg.TotalCount) * 100))
	}
	return s
}

// SeriesPoint is one day of eaten totals next to the targets.
type SeriesPoint struct {
	Date    string           `json:"date"`
	Totals  NutrientTotals   `json:"totals"`
	Targets NutritionTargets `json:"targets"`
}

// NutritionSeries returns one point per day in ascending date order.
func NutritionSeries(days []DayLog, targets NutritionTargets) []SeriesPoint {
	sorted := SortDays(days, false)
	out := make([]SeriesPoint, 0, len(sorted))
	for _, d := range sorted {
		agg := AggregateDay(d.Meals)
		out = append(out, SeriesPoint{Date: d.Date, Totals: agg.Totals, Targets: targets})
	}
	return out
}

// QuickStats backs the dashboard stat cards.
type QuickStats struct {
	MealsLogged          int      `json:"mealsLogged"`
	TotalMeals           int      `json:"totalMeals"`
	WeeklyAdherence      int      `json:"weeklyAdherence"`
	RecipesTried         int      `json:"recipesTried"`
	BudgetUsed           float64  `json:"budgetUsed"`
	DailyBudget          *float64 `json:"dailyBudget"`
	RemainingDailyBudget *float64 `json:"remainingDailyBudget"`
}

// ComputeQuickStats derives today's counters from today's log and the
// window metrics. The daily budget is a seventh of the weekly budget and is
// nil when no budget is set. RecipesTried counts distinct eaten recipe names
// across window.
func ComputeQuickStats(today DayLog, window []DayLog, metrics Metrics, weeklyBudget *float64) QuickStats {
	agg := AggregateDay(today.Meals)
	qs := QuickStats{
		MealsLogged:     agg.DispositionedCount(),
		TotalMeals:      agg.TotalCount,
		WeeklyAdherence: metrics.WeeklyAdherence,
		BudgetUsed:      round2(agg.TotalCost),
	}

	tried := make(map[string]struct{})
	for _, d := range window {
		for _, e := range d.Meals {
			if e.Status == StatusEaten && e.RecipeName != "" {
				tried[e.RecipeName] = struct{}{}
			}
		}
	}
	qs.RecipesTried = len(tried)

	if weeklyBudget != nil {
		daily := round2(finite(*weeklyBudget) / 7)
		remaining := round2(daily - agg.TotalCost)
		qs.DailyBudget = &daily
		qs.RemainingDailyBudget = &remaining
	}
	return qs
}
