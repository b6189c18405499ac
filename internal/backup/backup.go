// Package backup moves a user's data in and out of the tracker. Every export
// and every import leaves a snapshot in the backups table.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"life-tracker/internal/models"
	"life-tracker/internal/storage"
)

// ImportResults counts the records created by an import.
type ImportResults struct {
	Activities int `json:"activities"`
	Expenses   int `json:"expenses"`
	Goals      int `json:"goals"`
	Devices    int `json:"devices"`
}

// Collect assembles the export payload for a user without recording it.
func Collect(ctx context.Context, s storage.Store, userID int64, now time.Time) (*models.ExportData, error) {
	activities, err := s.ListActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.ListExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	devices, err := s.ListDevices(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.ExportData{
		Activities: activities,
		Expenses:   expenses,
		Goals:      goals,
		Devices:    devices,
		ExportDate: now,
	}, nil
}

// Export returns the user's full data set and records it as a backup.
func Export(ctx context.Context, s storage.Store, userID int64, now time.Time) (*models.ExportData, error) {
	data, err := Collect(ctx, s, userID, now)
	if err != nil {
		return nil, err
	}
	if err := record(ctx, s, userID, data); err != nil {
		return nil, err
	}
	return data, nil
}

func record(ctx context.Context, s storage.Store, userID int64, data *models.ExportData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if _, err := s.CreateBackup(ctx, userID, raw); err != nil {
		return err
	}
	return nil
}

// Import adds every record in data to userID's collections. The whole
// payload is validated before anything is written, and the user's current
// state is saved as a backup first. Records are inserted as new rows: ids and
// creation times from the payload are discarded and nothing is deduplicated,
// so importing the same file twice doubles the data.
func Import(ctx context.Context, s storage.Store, userID int64, data *models.ExportData, now time.Time) (*ImportResults, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	in := convert(userID, data)
	if err := in.validate(); err != nil {
		return nil, err
	}

	current, err := Collect(ctx, s, userID, now)
	if err != nil {
		return nil, err
	}
	if err := record(ctx, s, userID, current); err != nil {
		return nil, err
	}

	var res ImportResults
	for _, a := range in.activities {
		if _, err := s.CreateActivity(ctx, a); err != nil {
			return &res, fmt.Errorf("import activity: %w", err)
		}
		res.Activities++
	}
	for _, e := range in.expenses {
		if _, err := s.CreateExpense(ctx, e); err != nil {
			return &res, fmt.Errorf("import expense: %w", err)
		}
		res.Expenses++
	}
	for _, g := range in.goals {
		if _, err := s.CreateGoal(ctx, g); err != nil {
			return &res, fmt.Errorf("import goal: %w", err)
		}
		res.Goals++
	}
	for _, d := range in.devices {
		if _, err := s.CreateDevice(ctx, d); err != nil {
			return &res, fmt.Errorf("import device: %w", err)
		}
		res.Devices++
	}
	return &res, nil
}

type importSet struct {
	activities []models.NewActivity
	expenses   []models.NewExpense
	goals      []models.NewGoal
	devices    []models.NewDevice
}

func convert(userID int64, data *models.ExportData) importSet {
	var in importSet
	for _, a := range data.Activities {
		in.activities = append(in.activities, models.NewActivity{
			UserID:      userID,
			Category:    a.Category,
			Description: a.Description,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			Duration:    a.Duration,
		})
	}
	for _, e := range data.Expenses {
		in.expenses = append(in.expenses, models.NewExpense{
			UserID:      userID,
			Amount:      e.Amount,
			Category:    e.Category,
			Description: e.Description,
			Date:        e.Date,
		})
	}
	for _, g := range data.Goals {
		active := g.Active
		in.goals = append(in.goals, models.NewGoal{
			UserID:       userID,
			Name:         g.Name,
			Category:     g.Category,
			TargetValue:  g.TargetValue,
			CurrentValue: g.CurrentValue,
			Unit:         g.Unit,
			Active:       &active,
			Direction:    g.Direction,
		})
	}
	for _, d := range data.Devices {
		active := d.Active
		in.devices = append(in.devices, models.NewDevice{
			UserID:     userID,
			Name:       d.Name,
			DeviceID:   d.DeviceID,
			LastSynced: d.LastSynced,
			Active:     &active,
		})
	}
	return in
}

// validate checks every record and reports all failures at once, with field
// names prefixed by their position in the payload.
func (in importSet) validate() error {
	var fields []models.FieldError
	collect := func(prefix string, i int, err error) {
		var ve *models.ValidationError
		if !errors.As(err, &ve) {
			return
		}
		for _, f := range ve.Fields {
			fields = append(fields, models.FieldError{
				Field:  fmt.Sprintf("%s[%d].%s", prefix, i, f.Field),
				Reason: f.Reason,
			})
		}
	}
	for i := range in.activities {
		collect("activities", i, in.activities[i].Validate())
	}
	for i := range in.expenses {
		if in.expenses[i].Date.IsZero() {
			fields = append(fields, models.FieldError{Field: fmt.Sprintf("expenses[%d].date", i), Reason: "required"})
		}
		collect("expenses", i, in.expenses[i].Validate())
	}
	for i := range in.goals {
		collect("goals", i, in.goals[i].Validate())
	}
	for i := range in.devices {
		collect("devices", i, in.devices[i].Validate())
	}
	if len(fields) > 0 {
		return &models.ValidationError{Fields: fields}
	}
	return nil
}
