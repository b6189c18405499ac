// Package insights derives dashboard aggregates from raw records: period
// windows, time allocation, expense summaries and goal progress. Every
// function is pure; "now" is always passed in.
package insights

import (
	"fmt"
	"time"

	"life-tracker/internal/models"
)

// Period selects an aggregation window anchored to now.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// ParsePeriod parses a period tag. An empty tag means Weekly.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return Weekly, nil
	case Daily, Weekly, Monthly:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// WindowStart returns the inclusive start of the period containing now, in
// now's location: midnight today, midnight of the latest Sunday, or midnight
// of the first of the month.
func WindowStart(p Period, now time.Time) time.Time {
	y, m, d := now.Date()
	switch p {
	case Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
	}
}

// FilterActivities keeps activities that started at or after the window start.
func FilterActivities(activities []models.Activity, p Period, now time.Time) []models.Activity {
	start := WindowStart(p, now)
	var out []models.Activity
	for _, a := range activities {
		if !a.StartTime.Before(start) {
			out = append(out, a)
		}
	}
	return out
}

// FilterExpenses keeps expenses dated at or after the window start.
func FilterExpenses(expenses []models.Expense, p Period, now time.Time) []models.Expense {
	start := WindowStart(p, now)
	var out []models.Expense
	for _, e := range expenses {
		if !e.Date.Before(start) {
			out = append(out, e)
		}
	}
	return out
}
