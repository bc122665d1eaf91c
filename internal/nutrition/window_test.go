package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dates(days []DayLog) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Date
	}
	return out
}

func TestSelectWindowBoundaries(t *testing.T) {
	anchor := time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)
	days := []DayLog{
		{Date: "2024-03-11"}, // one day after anchor
		{Date: "2024-03-03"}, // seven days before
		{Date: "2024-03-04"}, // six days before
		{Date: "2024-03-10"},
	}

	got := SelectWindow(days, 7, anchor)

	assert.Equal(t, []string{"2024-03-04", "2024-03-10"}, dates(got))
}

func TestSelectWindowSortsAscending(t *testing.T) {
	anchor := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	days := []DayLog{
		{Date: "2024-03-09"},
		{Date: "2024-03-07"},
		{Date: "2024-03-10"},
		{Date: "2024-03-08"},
	}

	got := SelectWindow(days, 7, anchor)

	assert.Equal(t, []string{"2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10"}, dates(got))
}

func TestSelectWindowDropsUnparseableAndEmptyWindow(t *testing.T) {
	anchor := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	days := []DayLog{{Date: "yesterday"}, {Date: "2024-03-10"}, {Date: ""}}

	assert.Equal(t, []string{"2024-03-10"}, dates(SelectWindow(days, 1, anchor)))
	assert.Empty(t, SelectWindow(days, 0, anchor))
	assert.Empty(t, SelectWindow(nil, 7, anchor))
}

func TestSelectWindowUsesAnchorLocation(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	// 2024-03-10 01:00 in Manila is still 2024-03-09 in UTC.
	anchor := time.Date(2024, 3, 10, 1, 0, 0, 0, manila)
	days := []DayLog{{Date: "2024-03-10"}, {Date: "2024-03-03"}}

	assert.Equal(t, []string{"2024-03-10"}, dates(SelectWindow(days, 7, anchor)))
}

func TestSortDays(t *testing.T) {
	days := []DayLog{{Date: "2024-03-02"}, {Date: "2024-03-03"}, {Date: "2024-03-01"}}

	assert.Equal(t, []string{"2024-03-03", "2024-03-02", "2024-03-01"}, dates(SortDays(days, true)))
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03"}, dates(SortDays(days, false)))
	assert.Equal(t, "2024-03-02", days[0].Date)
}

func TestMergeServedAddsUnloggedMeals(t *testing.T) {
	days := []DayLog{
		{Date: "2024-03-09", Meals: []MealLogEntry{{ID: "y", Status: StatusEaten}}},
		{Date: "2024-03-10", Meals: []MealLogEntry{{ID: "a", Status: StatusEaten}}},
	}
	served := []MealLogEntry{{ID: "a"}, {ID: "b"}, {ID: "y"}}

	got := MergeServed(days, "2024-03-10", served)

	assert.Equal(t, []string{"2024-03-09", "2024-03-10"}, dates(got))
	assert.Len(t, got[1].Meals, 2)
	assert.Equal(t, "b", got[1].Meals[1].ID)
	assert.Equal(t, StatusUnset, got[1].Meals[1].Status)
	assert.Len(t, days[1].Meals, 1, "input must not be modified")
}

func TestMergeServedCreatesMissingDay(t *testing.T) {
	days := []DayLog{{Date: "2024-03-10", Meals: []MealLogEntry{{ID: "a", Status: StatusSkipped}}}}

	got := MergeServed(days, "2024-03-08", []MealLogEntry{{ID: "p"}, {ID: "q"}})

	assert.Equal(t, []string{"2024-03-08", "2024-03-10"}, dates(got))
	assert.Len(t, got[0].Meals, 2)

	m := ComputeMetrics(got, DefaultTargets, nil)
	assert.Equal(t, 3, m.TotalMeals)
	assert.Equal(t, 1, m.MealsCompleted)
	assert.Equal(t, 33, m.WeeklyAdherence)
}

func TestMergeServedNothingMissing(t *testing.T) {
	days := []DayLog{{Date: "2024-03-10", Meals: []MealLogEntry{{ID: "a", Status: StatusEaten}}}}
	assert.Equal(t, days, MergeServed(days, "2024-03-10", []MealLogEntry{{ID: "a"}}))
	assert.Equal(t, days, MergeServed(days, "2024-03-10", nil))
}
