package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fourMeals(statuses ...Status) DayLog {
	slots := []MealSlot{Breakfast, Lunch, Dinner, Snacks}
	day := DayLog{Date: "2024-03-10"}
	for i, slot := range slots {
		day.Meals = append(day.Meals, meal(string(slot), slot, statuses[i], 500, 10))
	}
	return day
}

func TestComputeMetricsAdherence(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     int
	}{
		{"none dispositioned", []Status{StatusUnset, StatusUnset, StatusUnset, StatusUnset}, 0},
		{"half dispositioned", []Status{StatusEaten, StatusSkipped, StatusUnset, StatusUnset}, 50},
		{"half skipped", []Status{StatusSkipped, StatusSkipped, StatusUnset, StatusUnset}, 50},
		{"all dispositioned", []Status{StatusEaten, StatusSkipped, StatusEaten, StatusSkipped}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics([]DayLog{fourMeals(tt.statuses...)}, DefaultTargets, nil)
			assert.Equal(t, tt.want, m.WeeklyAdherence)
			assert.Equal(t, 4, m.TotalMeals)
		})
	}
}

func TestComputeMetricsAdherenceIsMonotonic(t *testing.T) {
	statuses := []Status{StatusUnset, StatusUnset, StatusUnset, StatusUnset}
	prev := ComputeMetrics([]DayLog{fourMeals(statuses...)}, DefaultTargets, nil).WeeklyAdherence
	for i, s := range []Status{StatusSkipped, StatusEaten, StatusSkipped, StatusEaten} {
		statuses[i] = s
		got := ComputeMetrics([]DayLog{fourMeals(statuses...)}, DefaultTargets, nil).WeeklyAdherence
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 100, prev)
}

func TestComputeMetricsNoData(t *testing.T) {
	budget := 500.0
	m := ComputeMetrics(nil, DefaultTargets, &budget)

	assert.Equal(t, 0, m.WeeklyAdherence)
	assert.Equal(t, 0, m.AvgDailyNutritionPercent)
	assert.Equal(t, 0, m.TotalMeals)
	assert.Equal(t, 0, m.MealsCompleted)
	assert.Equal(t, -500.0, m.BudgetVariance)
	assert.True(t, m.BudgetSet)
}

func TestComputeMetricsNilBudget(t *testing.T) {
	day := fourMeals(StatusEaten, StatusEaten, StatusEaten, StatusEaten)

	m := ComputeMetrics([]DayLog{day}, DefaultTargets, nil)

	assert.Equal(t, 0.0, m.BudgetVariance)
	assert.False(t, m.BudgetSet)
	assert.Equal(t, 40.0, m.TotalCost)
}

func TestComputeMetricsBudgetVariance(t *testing.T) {
	days := []DayLog{
		{Date: "2024-03-08", Meals: []MealLogEntry{
			meal("a", Breakfast, StatusEaten, 400, 250),
			meal("b", Lunch, StatusSkipped, 400, 999),
		}},
		{Date: "2024-03-09", Meals: []MealLogEntry{meal("c", Dinner, StatusEaten, 400, 300)}},
		{Date: "2024-03-10", Meals: []MealLogEntry{meal("d", Snacks, StatusEaten, 400, 200)}},
	}

	over := 700.0
	m := ComputeMetrics(days, DefaultTargets, &over)
	assert.Equal(t, 50.0, m.BudgetVariance)
	assert.Equal(t, 750.0, m.TotalCost)

	under := 800.0
	m = ComputeMetrics(days, DefaultTargets, &under)
	assert.Equal(t, -50.0, m.BudgetVariance)
}

func TestComputeMetricsAvgDailyNutrition(t *testing.T) {
	onTarget := MealLogEntry{
		ID: "a", Status: StatusEaten,
		Calories: Num(2000), Protein: Num(75), Carbs: Num(250), Fat: Num(70), Fiber: Num(30),
	}
	caloriesOnly := MealLogEntry{ID: "b", Status: StatusEaten, Calories: Num(6000)}
	days := []DayLog{
		{Date: "2024-03-08", Meals: []MealLogEntry{onTarget}},
		{Date: "2024-03-09", Meals: []MealLogEntry{caloriesOnly}},
		{Date: "2024-03-10", Meals: []MealLogEntry{{ID: "c", Status: StatusSkipped, Calories: Num(9000)}}},
	}

	m := ComputeMetrics(days, DefaultTargets, nil)

	// (100 + 60) / 2; the skipped-only day carries no signal.
	assert.Equal(t, 80, m.AvgDailyNutritionPercent)
	assert.Equal(t, 3, m.MealsCompleted)
	assert.Equal(t, 2, m.MealsEaten)
}

func TestComputeMetricsAvgDailyNutritionIsNotCapped(t *testing.T) {
	day := DayLog{Date: "2024-03-10", Meals: []MealLogEntry{{
		ID: "a", Status: StatusEaten,
		Calories: Num(6000), Protein: Num(225), Carbs: Num(750), Fat: Num(210), Fiber: Num(90),
	}}}

	m := ComputeMetrics([]DayLog{day}, DefaultTargets, nil)

	assert.Equal(t, 300, m.AvgDailyNutritionPercent)
}

func TestTargetAttainmentZeroTarget(t *testing.T) {
	totals := NutrientTotals{Calories: 2000, Protein: 75, Carbs: 250, Fat: 70, Fiber: 30}
	targets := DefaultTargets
	targets.Fiber = 0

	assert.InDelta(t, 0.8, TargetAttainment(totals, targets), 1e-9)
}
