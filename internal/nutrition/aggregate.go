package nutrition

// DayAggregate is the reduction of one day's meal entries.
type DayAggregate struct {
	Totals       NutrientTotals `json:"totals"`
	EatenCount   int            `json:"eatenCount"`
	SkippedCount int            `json:"skippedCount"`
	TotalCount   int            `json:"totalCount"`
	TotalCost    float64        `json:"totalCost"`
}

// DispositionedCount is the number of entries that were eaten or skipped.
func (a DayAggregate) DispositionedCount() int {
	return a.EatenCount + a.SkippedCount
}

// AggregateDay sums nutrients and cost over the eaten entries and counts
// entries by status. Skipped meals contribute nothing to the totals.
func AggregateDay(entries []MealLogEntry) DayAggregate {
	var agg DayAggregate
	agg.TotalCount = len(entries)
	for _, e := range entries {
		switch e.Status {
		case StatusEaten:
			agg.EatenCount++
			agg.Totals.Calories += e.Calories.Float()
			agg.Totals.Protein += e.Protein.Float()
			agg.Totals.Carbs += e.Carbs.Float()
			agg.Totals.Fat += e.Fat.Float()
			agg.Totals.Fiber += e.Fiber.Float()
			agg.TotalCost += e.Cost.Float()
		case StatusSkipped:
			agg.SkippedCount++
		}
	}
	return agg
}
