package nutrition

import (
	"sort"
	"time"
)

// SelectWindow returns the days falling in the inclusive window
// [anchor-(windowSizeDays-1), anchor], compared by calendar day in the
// anchor's location. Future-dated and unparseable days are dropped. The
// result is in ascending date order.
func SelectWindow(days []DayLog, windowSizeDays int, anchor time.Time) []DayLog {
	if windowSizeDays <= 0 {
		return []DayLog{}
	}

	upper := startOfDay(anchor)
	lower := upper.AddDate(0, 0, -(windowSizeDays - 1))

	type dated struct {
		day DayLog
		at  time.Time
	}
	var selected []dated
	for _, d := range days {
		at, err := time.ParseInLocation(DateLayout, d.Date, anchor.Location())
		if err != nil {
			continue
		}
		if at.Before(lower) || at.After(upper) {
			continue
		}
		selected = append(selected, dated{day: d, at: at})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].at.Before(selected[j].at)
	})

	out := make([]DayLog, len(selected))
	for i, s := range selected {
		out[i] = s.day
	}
	return out
}

// SortDays returns a copy of days ordered by date; descending puts the newest first.
func SortDays(days []DayLog, descending bool) []DayLog {
	out := make([]DayLog, len(days))
	copy(out, days)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].Date > out[j].Date
		}
		return out[i].Date < out[j].Date
	})
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateKey formats t as a day-log key in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MergeServed adds the served meals that were never logged to the day
// dated date, so they count toward that day's total as undispositioned.
// A meal whose id is logged on any of the days is left out. days is not
// modified; the result is ascending by date.
func MergeServed(days []DayLog, date string, served []MealLogEntry) []DayLog {
	logged := make(map[string]struct{})
	for _, d := range days {
		for _, e := range d.Meals {
			logged[e.ID] = struct{}{}
		}
	}

	var missing []MealLogEntry
	for _, m := range served {
		if _, ok := logged[m.ID]; ok {
			continue
		}
		logged[m.ID] = struct{}{}
		missing = append(missing, m)
	}
	if len(missing) == 0 {
		return days
	}

	out := make([]DayLog, 0, len(days)+1)
	found := false
	for _, d := range days {
		if d.Date == date {
			meals := make([]MealLogEntry, 0, len(d.Meals)+len(missing))
			meals = append(meals, d.Meals...)
			d.Meals = append(meals, missing...)
			found = true
		}
		out = append(out, d)
	}
	if !found {
		out = append(out, DayLog{Date: date, Meals: missing})
	}
	return SortDays(out, false)
}
