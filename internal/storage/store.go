package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"life-tracker/internal/config"
	"life-tracker/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique value is already taken.
	ErrDuplicate = errors.New("already exists")
)

// Store is the persistence interface shared by the in-memory and relational
// backends. Switching backends must not change behavior beyond persistence
// across restarts.
type Store interface {
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, p models.UserPatch) (*models.User, error)
	UserCount(ctx context.Context) (int, error)

	CreateActivity(ctx context.Context, in models.NewActivity) (*models.Activity, error)
	ListActivities(ctx context.Context, userID int64) ([]models.Activity, error)
	ListActivitiesByCategory(ctx context.Context, userID int64, category string) ([]models.Activity, error)
	GetActivity(ctx context.Context, id int64) (*models.Activity, error)
	UpdateActivity(ctx context.Context, id int64, p models.ActivityPatch) (*models.Activity, error)
	DeleteActivity(ctx context.Context, id int64) error

	CreateExpense(ctx context.Context, in models.NewExpense) (*models.Expense, error)
	ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error)
	ListExpensesByCategory(ctx context.Context, userID int64, category string) ([]models.Expense, error)
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id int64, p models.ExpensePatch) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error

	CreateGoal(ctx context.Context, in models.NewGoal) (*models.Goal, error)
	ListGoals(ctx context.Context, userID int64) ([]models.Goal, error)
	ListGoalsByCategory(ctx context.Context, userID int64, category string) ([]models.Goal, error)
	GetGoal(ctx context.Context, id int64) (*models.Goal, error)
	UpdateGoal(ctx context.Context, id int64, p models.GoalPatch) (*models.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error

	CreateDevice(ctx context.Context, in models.NewDevice) (*models.Device, error)
	ListDevices(ctx context.Context, userID int64) ([]models.Device, error)
	GetDevice(ctx context.Context, id int64) (*models.Device, error)
	UpdateDevice(ctx context.Context, id int64, p models.DevicePatch) (*models.Device, error)
	DeleteDevice(ctx context.Context, id int64) error

	CreateBackup(ctx context.Context, userID int64, data []byte) (*models.Backup, error)
	ListBackups(ctx context.Context, userID int64) ([]models.Backup, error)
	LatestBackup(ctx context.Context, userID int64) (*models.Backup, error)

	Close() error
}

// Open returns the backend selected by cfg: the in-memory store, PostgreSQL
// when a postgres URL is configured, or SQLite at cfg.DBPath.
func Open(cfg config.Config) (Store, error) {
	switch {
	case cfg.Storage == config.StorageMemory:
		return NewMemStore(), nil
	case cfg.Storage != config.StorageSQL:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	case isPostgresURL(cfg.DatabaseURL):
		return NewPostgresDB(cfg.DatabaseURL)
	default:
		return NewDB(cfg.DBPath)
	}
}

func isPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}
