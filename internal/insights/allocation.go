package insights

import (
	"time"

	"life-tracker/internal/models"
)

const secondsPerHour = 3600

// TimeAllocation is the total time spent on a category within a period.
type TimeAllocation struct {
	Category string    `json:"category"`
	Duration float64   `json:"duration"` // hours
	Date     time.Time `json:"date"`
}

// TimeAllocations groups the activities inside the period by category and
// converts the summed seconds to hours. Rows keep the order in which their
// category first appears and all carry now as their date.
func TimeAllocations(activities []models.Activity, p Period, now time.Time) []TimeAllocation {
	filtered := FilterActivities(activities, p, now)

	var order []string
	totals := make(map[string]int64)
	for _, a := range filtered {
		if _, ok := totals[a.Category]; !ok {
			order = append(order, a.Category)
		}
		totals[a.Category] += a.Duration
	}

	out := make([]TimeAllocation, 0, len(order))
	for _, c := range order {
		out = append(out, TimeAllocation{
			Category: c,
			Duration: float64(totals[c]) / secondsPerHour,
			Date:     now,
		})
	}
	return out
}

// DayAllocation holds per-category hours for one calendar day.
type DayAllocation struct {
	Day        string             `json:"day"`  // short weekday name
	Date       string             `json:"date"` // YYYY-MM-DD
	Categories map[string]float64 `json:"categories"`
}

// WeeklyBreakdown buckets activities into the seven calendar days ending
// today, oldest first. Activities are matched on their start date, so two
// days sharing a weekday name never collide.
func WeeklyBreakdown(activities []models.Activity, now time.Time) []DayAllocation {
	loc := now.Location()
	y, m, d := now.Date()

	days := make([]DayAllocation, 7)
	index := make(map[string]int, 7)
	seconds := make([]map[string]int64, 7)
	for i := range days {
		day := time.Date(y, m, d-6+i, 0, 0, 0, 0, loc)
		key := day.Format(time.DateOnly)
		days[i] = DayAllocation{Day: day.Format("Mon"), Date: key, Categories: map[string]float64{}}
		index[key] = i
		seconds[i] = map[string]int64{}
	}

	for _, a := range activities {
		i, ok := index[a.StartTime.In(loc).Format(time.DateOnly)]
		if !ok {
			continue
		}
		seconds[i][a.Category] += a.Duration
	}

	for i := range days {
		for c, s := range seconds[i] {
			days[i].Categories[c] = float64(s) / secondsPerHour
		}
	}
	return days
}
