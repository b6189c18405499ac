package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"life-tracker/internal/models"
)

const activityColumns = "id, user_id, category, description, start_time, end_time, duration, created_at"

func scanActivity(r rowScanner) (models.Activity, error) {
	var (
		a    models.Activity
		desc sql.NullString
		end  sql.NullTime
	)
	if err := r.Scan(&a.ID, &a.UserID, &a.Category, &desc, &a.StartTime, &end, &a.Duration, &a.CreatedAt); err != nil {
		return a, err
	}
	a.Description = stringPtr(desc)
	a.EndTime = timePtr(end)
	return a, nil
}

// CreateActivity inserts a new activity.
func (db *DB) CreateActivity(ctx context.Context, in models.NewActivity) (*models.Activity, error) {
	a := models.Activity{
		UserID:      in.UserID,
		Category:    in.Category,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Duration:    in.Duration,
		CreatedAt:   db.now(),
	}
	id, err := db.insert(ctx,
		"INSERT INTO activities (user_id, category, description, start_time, end_time, duration, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		a.UserID, a.Category, nullString(a.Description), a.StartTime, nullTime(a.EndTime), a.Duration, a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	a.ID = id
	return &a, nil
}

// ListActivities retrieves a user's activities, newest first.
func (db *DB) ListActivities(ctx context.Context, userID int64) ([]models.Activity, error) {
	return db.listActivities(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
}

// ListActivitiesByCategory retrieves a user's activities in one category.
func (db *DB) ListActivitiesByCategory(ctx context.Context, userID int64, category string) ([]models.Activity, error) {
	return db.listActivities(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE user_id = ? AND category = ? ORDER BY created_at DESC, id DESC",
		userID, category,
	)
}

func (db *DB) listActivities(ctx context.Context, query string, args ...any) ([]models.Activity, error) {
	rows, err := db.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// GetActivity retrieves a single activity by ID.
func (db *DB) GetActivity(ctx context.Context, id int64) (*models.Activity, error) {
	a, err := scanActivity(db.queryRow(ctx, "SELECT "+activityColumns+" FROM activities WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("activity", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return &a, nil
}

// UpdateActivity applies a partial update to an activity.
func (db *DB) UpdateActivity(ctx context.Context, id int64, p models.ActivityPatch) (*models.Activity, error) {
	a, err := db.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(a)
	_, err = db.exec(ctx,
		"UPDATE activities SET user_id = ?, category = ?, description = ?, start_time = ?, end_time = ?, duration = ? WHERE id = ?",
		a.UserID, a.Category, nullString(a.Description), a.StartTime, nullTime(a.EndTime), a.Duration, a.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update activity: %w", err)
	}
	return a, nil
}

// DeleteActivity removes an activity.
func (db *DB) DeleteActivity(ctx context.Context, id int64) error {
	return db.deleteByID(ctx, "activities", "activity", id)
}

const expenseColumns = "id, user_id, amount, category, description, date, created_at"

func scanExpense(r rowScanner) (models.Expense, error) {
	var (
		e    models.Expense
		desc sql.NullString
	)
	if err := r.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &desc, &e.Date, &e.CreatedAt); err != nil {
		return e, err
	}
	e.Description = stringPtr(desc)
	return e, nil
}

// CreateExpense inserts a new expense. A zero date means now.
func (db *DB) CreateExpense(ctx context.Context, in models.NewExpense) (*models.Expense, error) {
	now := db.now()
	e := models.Expense{
		UserID:      in.UserID,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		CreatedAt:   now,
	}
	if e.Date.IsZero() {
		e.Date = now
	}
	id, err := db.insert(ctx,
		"INSERT INTO expenses (user_id, amount, category, description, date, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.UserID, e.Amount, e.Category, nullString(e.Description), e.Date, e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	e.ID = id
	return &e, nil
}

// ListExpenses retrieves a user's expenses, ordered by date descending.
func (db *DB) ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	return db.listExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE user_id = ? ORDER BY date DESC, id DESC",
		userID,
	)
}

// ListExpensesByCategory retrieves a user's expenses in one category.
func (db *DB) ListExpensesByCategory(ctx context.Context, userID int64, category string) ([]models.Expense, error) {
	return db.listExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE user_id = ? AND category = ? ORDER BY date DESC, id DESC",
		userID, category,
	)
}

func (db *DB) listExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := db.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// GetExpense retrieves a single expense by ID.
func (db *DB) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	e, err := scanExpense(db.queryRow(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("expense", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// UpdateExpense applies a partial update to an expense.
func (db *DB) UpdateExpense(ctx context.Context, id int64, p models.ExpensePatch) (*models.Expense, error) {
	e, err := db.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(e)
	_, err = db.exec(ctx,
		"UPDATE expenses SET user_id = ?, amount = ?, category = ?, description = ?, date = ? WHERE id = ?",
		e.UserID, e.Amount, e.Category, nullString(e.Description), e.Date, e.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return e, nil
}

// DeleteExpense removes an expense.
func (db *DB) DeleteExpense(ctx context.Context, id int64) error {
	return db.deleteByID(ctx, "expenses", "expense", id)
}

const goalColumns = "id, user_id, name, category, target_value, current_value, unit, active, direction, created_at"

func scanGoal(r rowScanner) (models.Goal, error) {
	var (
		g   models.Goal
		dir string
	)
	if err := r.Scan(&g.ID, &g.UserID, &g.Name, &g.Category, &g.TargetValue, &g.CurrentValue, &g.Unit, &g.Active, &dir, &g.CreatedAt); err != nil {
		return g, err
	}
	g.Direction = models.Direction(dir)
	g.Direction = g.EffectiveDirection()
	return g, nil
}

// CreateGoal inserts a new goal.
func (db *DB) CreateGoal(ctx context.Context, in models.NewGoal) (*models.Goal, error) {
	g := in.Goal()
	g.CreatedAt = db.now()
	id, err := db.insert(ctx,
		"INSERT INTO goals (user_id, name, category, target_value, current_value, unit, active, direction, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		g.UserID, g.Name, g.Category, g.TargetValue, g.CurrentValue, g.Unit, g.Active, string(g.Direction), g.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	g.ID = id
	return &g, nil
}

// ListGoals retrieves a user's goals, newest first.
func (db *DB) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	return db.listGoals(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
}

// ListGoalsByCategory retrieves a user's goals in one category.
func (db *DB) ListGoalsByCategory(ctx context.Context, userID int64, category string) ([]models.Goal, error) {
	return db.listGoals(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE user_id = ? AND category = ? ORDER BY created_at DESC, id DESC",
		userID, category,
	)
}

func (db *DB) listGoals(ctx context.Context, query string, args ...any) ([]models.Goal, error) {
	rows, err := db.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// GetGoal retrieves a single goal by ID.
func (db *DB) GetGoal(ctx context.Context, id int64) (*models.Goal, error) {
	g, err := scanGoal(db.queryRow(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("goal", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return &g, nil
}

// UpdateGoal applies a partial update to a goal.
func (db *DB) UpdateGoal(ctx context.Context, id int64, p models.GoalPatch) (*models.Goal, error) {
	g, err := db.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(g)
	_, err = db.exec(ctx,
		"UPDATE goals SET user_id = ?, name = ?, category = ?, target_value = ?, current_value = ?, unit = ?, active = ?, direction = ? WHERE id = ?",
		g.UserID, g.Name, g.Category, g.TargetValue, g.CurrentValue, g.Unit, g.Active, string(g.Direction), g.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return g, nil
}

// DeleteGoal removes a goal.
func (db *DB) DeleteGoal(ctx context.Context, id int64) error {
	return db.deleteByID(ctx, "goals", "goal", id)
}

const deviceColumns = "id, user_id, name, device_id, last_synced, active, created_at"

func scanDevice(r rowScanner) (models.Device, error) {
	var (
		d      models.Device
		synced sql.NullTime
	)
	if err := r.Scan(&d.ID, &d.UserID, &d.Name, &d.DeviceID, &synced, &d.Active, &d.CreatedAt); err != nil {
		return d, err
	}
	d.LastSynced = timePtr(synced)
	return d, nil
}

// CreateDevice registers a new device.
func (db *DB) CreateDevice(ctx context.Context, in models.NewDevice) (*models.Device, error) {
	d := in.Device()
	d.CreatedAt = db.now()
	id, err := db.insert(ctx,
		"INSERT INTO devices (user_id, name, device_id, last_synced, active, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		d.UserID, d.Name, d.DeviceID, nullTime(d.LastSynced), d.Active, d.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create device: %w", err)
	}
	d.ID = id
	return &d, nil
}

// ListDevices retrieves a user's devices, most recently synced first.
func (db *DB) ListDevices(ctx context.Context, userID int64) ([]models.Device, error) {
	rows, err := db.query(ctx,
		"SELECT "+deviceColumns+" FROM devices WHERE user_id = ? ORDER BY last_synced IS NULL, last_synced DESC, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	devices := []models.Device{}
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

// GetDevice retrieves a single device by ID.
func (db *DB) GetDevice(ctx context.Context, id int64) (*models.Device, error) {
	d, err := scanDevice(db.queryRow(ctx, "SELECT "+deviceColumns+" FROM devices WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("device", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get device: %w", err)
	}
	return &d, nil
}

// UpdateDevice applies a partial update to a device.
func (db *DB) UpdateDevice(ctx context.Context, id int64, p models.DevicePatch) (*models.Device, error) {
	d, err := db.GetDevice(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(d)
	_, err = db.exec(ctx,
		"UPDATE devices SET name = ?, device_id = ?, last_synced = ?, active = ? WHERE id = ?",
		d.Name, d.DeviceID, nullTime(d.LastSynced), d.Active, d.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update device: %w", err)
	}
	return d, nil
}

// DeleteDevice removes a device.
func (db *DB) DeleteDevice(ctx context.Context, id int64) error {
	return db.deleteByID(ctx, "devices", "device", id)
}

// CreateBackup records a snapshot.
func (db *DB) CreateBackup(ctx context.Context, userID int64, data []byte) (*models.Backup, error) {
	b := models.Backup{UserID: userID, Data: append([]byte(nil), data...), CreatedAt: db.now()}
	id, err := db.insert(ctx,
		"INSERT INTO backups (user_id, data, created_at) VALUES (?, ?, ?)",
		b.UserID, string(data), b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	b.ID = id
	return &b, nil
}

// ListBackups retrieves a user's backups, newest first.
func (db *DB) ListBackups(ctx context.Context, userID int64) ([]models.Backup, error) {
	rows, err := db.query(ctx,
		"SELECT id, user_id, data, created_at FROM backups WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	backups := []models.Backup{}
	for rows.Next() {
		var (
			b    models.Backup
			data []byte
		)
		if err := rows.Scan(&b.ID, &b.UserID, &data, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		b.Data = data
		backups = append(backups, b)
	}
	return backups, rows.Err()
}

// LatestBackup retrieves the most recent backup of a user.
func (db *DB) LatestBackup(ctx context.Context, userID int64) (*models.Backup, error) {
	var (
		b    models.Backup
		data []byte
	)
	err := db.queryRow(ctx,
		"SELECT id, user_id, data, created_at FROM backups WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1",
		userID,
	).Scan(&b.ID, &b.UserID, &data, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest backup: %w", err)
	}
	b.Data = data
	return &b, nil
}
