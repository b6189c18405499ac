package backup

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"life-tracker/internal/models"
)

// Collections that can be rendered as CSV.
const (
	CollectionActivities = "activities"
	CollectionExpenses   = "expenses"
	CollectionGoals      = "goals"
)

// ErrUnknownCollection is returned by WriteCSV for an unsupported collection.
var ErrUnknownCollection = errors.New("unknown collection: must be activities, expenses or goals")

// WriteCSV renders one collection of data as CSV with a header row.
func WriteCSV(w io.Writer, collection string, data *models.ExportData) error {
	var rows [][]string
	switch collection {
	case CollectionActivities:
		rows = append(rows, []string{"id", "userId", "category", "description", "startTime", "endTime", "duration", "createdAt"})
		for _, a := range data.Activities {
			rows = append(rows, []string{
				id(a.ID), id(a.UserID), a.Category, optString(a.Description),
				stamp(a.StartTime), optStamp(a.EndTime), strconv.FormatInt(a.Duration, 10), stamp(a.CreatedAt),
			})
		}
	case CollectionExpenses:
		rows = append(rows, []string{"id", "userId", "amount", "category", "description", "date", "createdAt"})
		for _, e := range data.Expenses {
			rows = append(rows, []string{
				id(e.ID), id(e.UserID), number(e.Amount), e.Category, optString(e.Description),
				stamp(e.Date), stamp(e.CreatedAt),
			})
		}
	case CollectionGoals:
		rows = append(rows, []string{"id", "userId", "name", "category", "targetValue", "currentValue", "unit", "active", "direction", "createdAt"})
		for _, g := range data.Goals {
			rows = append(rows, []string{
				id(g.ID), id(g.UserID), g.Name, g.Category, number(g.TargetValue), number(g.CurrentValue),
				g.Unit, strconv.FormatBool(g.Active), string(g.EffectiveDirection()), stamp(g.CreatedAt),
			})
		}
	default:
		return ErrUnknownCollection
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func number(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func optStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return stamp(*t)
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
