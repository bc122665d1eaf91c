package nutrition

import "math"

// Metrics are the derived KPIs for a window of day logs.
type Metrics struct {
	WeeklyAdherence          int     `json:"weeklyAdherence"`
	AvgDailyNutritionPercent int     `json:"avgDailyNutrition"`
	BudgetVariance           float64 `json:"budgetVariance"`
	BudgetSet                bool    `json:"budgetSet"`
	TotalCost                float64 `json:"totalCost"`
	MealsCompleted           int     `json:"mealsCompleted"`
	MealsEaten               int     `json:"mealsEaten"`
	TotalMeals               int     `json:"totalMeals"`
}

// ComputeMetrics combines the days' aggregates with the targets and weekly
// budget. Every zero denominator resolves to 0; nothing is capped.
//
// BudgetVariance is signed (positive means over budget) and is 0 with
// BudgetSet false when weeklyBudget is nil.
func ComputeMetrics(days []DayLog, targets NutritionTargets, weeklyBudget *float64) Metrics {
	var (
		m          Metrics
		percentSum float64
		scoredDays int
	)

	for _, d := range days {
		agg := AggregateDay(d.Meals)
		m.TotalMeals += agg.TotalCount
		m.MealsCompleted += agg.DispositionedCount()
		m.MealsEaten += agg.EatenCount
		m.TotalCost += agg.TotalCost

		if agg.EatenCount > 0 {
			percentSum += TargetAttainment(agg.Totals, targets) * 100
			scoredDays++
		}
	}

	if m.TotalMeals > 0 {
		m.WeeklyAdherence = int(roundHalfUp(float64(m.MealsCompleted) / float64(m.TotalMeals) * 100))
	}
	if scoredDays > 0 {
		m.AvgDailyNutritionPercent = int(roundHalfUp(percentSum / float64(scoredDays)))
	}
	if weeklyBudget != nil {
		m.BudgetSet = true
		m.BudgetVariance = round2(m.TotalCost - finite(*weeklyBudget))
	}
	m.TotalCost = round2(m.TotalCost)
	return m
}

// TargetAttainment is the unweighted mean of the five total/target ratios.
// A nutrient with a non-positive target contributes a ratio of 0.
func TargetAttainment(totals NutrientTotals, targets NutritionTargets) float64 {
	return (ratio(totals.Calories, targets.Calories) +
		ratio(totals.Protein, targets.Protein) +
		ratio(totals.Carbs, targets.Carbs) +
		ratio(totals.Fat, targets.Fat) +
		ratio(totals.Fiber, targets.Fiber)) / 5
}

func ratio(total, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return finite(total / target)
}

// roundHalfUp rounds .5 toward positive infinity, matching the web client.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func round2(x float64) float64 {
	return roundHalfUp(x*100) / 100
}
