package storage

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"life-tracker/internal/auth"
	"life-tracker/internal/models"
)

// MemStore keeps everything in maps. It is the development fallback and
// loses its contents on restart.
type MemStore struct {
	mu sync.RWMutex

	users      map[int64]models.User
	activities map[int64]models.Activity
	expenses   map[int64]models.Expense
	goals      map[int64]models.Goal
	devices    map[int64]models.Device
	backups    map[int64]models.Backup

	nextUser, nextActivity, nextExpense, nextGoal, nextDevice, nextBackup int64

	now func() time.Time
}

// NewMemStore creates an in-memory store seeded with the demo user (id 1)
// and its five demo goals.
func NewMemStore() *MemStore {
	s := &MemStore{
		users:      make(map[int64]models.User),
		activities: make(map[int64]models.Activity),
		expenses:   make(map[int64]models.Expense),
		goals:      make(map[int64]models.Goal),
		devices:    make(map[int64]models.Device),
		backups:    make(map[int64]models.Backup),
		now:        time.Now,
	}
	s.seed()
	return s
}

func (s *MemStore) seed() {
	ctx := context.Background()
	hash, _ := auth.HashPassword("password")
	user, _ := s.CreateUser(ctx, models.User{Username: "demo", PasswordHash: hash, DisplayName: "Demo User"})

	for _, g := range []models.NewGoal{
		{Name: "Sleep 8 hours", Category: models.CategorySleep, TargetValue: 8, CurrentValue: 7.2, Unit: "hours"},
		{Name: "Social Media < 2 hours", Category: models.CategorySocialMedia, TargetValue: 2, CurrentValue: 1.75, Unit: "hours"},
		{Name: "Read for 2 hours", Category: models.CategoryReading, TargetValue: 2, CurrentValue: 2.5, Unit: "hours"},
		{Name: "Practice questions (30)", Category: models.CategoryPractice, TargetValue: 30, CurrentValue: 35, Unit: "count"},
		{Name: "Gaming < 1 hour", Category: models.CategoryGaming, TargetValue: 1, CurrentValue: 0.75, Unit: "hours"},
	} {
		g.UserID = user.ID
		_, _ = s.CreateGoal(ctx, g)
	}
}

// Close is a no-op.
func (s *MemStore) Close() error { return nil }

// CreateUser stores a new user. Usernames are unique.
func (s *MemStore) CreateUser(_ context.Context, u models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return nil, ErrDuplicate
		}
	}
	s.nextUser++
	u.ID = s.nextUser
	s.users[u.ID] = u
	return &u, nil
}

// GetUser retrieves a user by ID.
func (s *MemStore) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &u, nil
}

// GetUserByUsername retrieves a user by username.
func (s *MemStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateUser applies a partial update to a user.
func (s *MemStore) UpdateUser(_ context.Context, id int64, p models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	if p.Username != nil {
		for _, other := range s.users {
			if other.ID != id && other.Username == *p.Username {
				return nil, ErrDuplicate
			}
		}
	}
	p.Apply(&u)
	s.users[id] = u
	return &u, nil
}

// UserCount returns the number of users.
func (s *MemStore) UserCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// CreateActivity stores a new activity.
func (s *MemStore) CreateActivity(_ context.Context, in models.NewActivity) (*models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextActivity++
	a := models.Activity{
		ID:          s.nextActivity,
		UserID:      in.UserID,
		Category:    in.Category,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Duration:    in.Duration,
		CreatedAt:   s.now(),
	}
	s.activities[a.ID] = a
	return &a, nil
}

// ListActivities returns a user's activities, newest first.
func (s *MemStore) ListActivities(_ context.Context, userID int64) ([]models.Activity, error) {
	return s.filterActivities(func(a models.Activity) bool { return a.UserID == userID }), nil
}

// ListActivitiesByCategory returns a user's activities in one category.
func (s *MemStore) ListActivitiesByCategory(_ context.Context, userID int64, category string) ([]models.Activity, error) {
	return s.filterActivities(func(a models.Activity) bool {
		return a.UserID == userID && a.Category == category
	}), nil
}

func (s *MemStore) filterActivities(keep func(models.Activity) bool) []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Activity{}
	for _, a := range s.activities {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out
}

// GetActivity retrieves a single activity by ID.
func (s *MemStore) GetActivity(_ context.Context, id int64) (*models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[id]
	if !ok {
		return nil, notFound("activity", id)
	}
	return &a, nil
}

// UpdateActivity applies a partial update to an activity.
func (s *MemStore) UpdateActivity(_ context.Context, id int64, p models.ActivityPatch) (*models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[id]
	if !ok {
		return nil, notFound("activity", id)
	}
	p.Apply(&a)
	s.activities[id] = a
	return &a, nil
}

// DeleteActivity removes an activity.
func (s *MemStore) DeleteActivity(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.activities[id]; !ok {
		return notFound("activity", id)
	}
	delete(s.activities, id)
	return nil
}

// CreateExpense stores a new expense. A zero date means now.
func (s *MemStore) CreateExpense(_ context.Context, in models.NewExpense) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	s.nextExpense++
	e := models.Expense{
		ID:          s.nextExpense,
		UserID:      in.UserID,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        date,
		CreatedAt:   now,
	}
	s.expenses[e.ID] = e
	return &e, nil
}

// ListExpenses returns a user's expenses, latest date first.
func (s *MemStore) ListExpenses(_ context.Context, userID int64) ([]models.Expense, error) {
	return s.filterExpenses(func(e models.Expense) bool { return e.UserID == userID }), nil
}

// ListExpensesByCategory returns a user's expenses in one category.
func (s *MemStore) ListExpensesByCategory(_ context.Context, userID int64, category string) ([]models.Expense, error) {
	return s.filterExpenses(func(e models.Expense) bool {
		return e.UserID == userID && e.Category == category
	}), nil
}

func (s *MemStore) filterExpenses(keep func(models.Expense) bool) []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Expense{}
	for _, e := range s.expenses {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].Date, out[j].Date, out[i].ID, out[j].ID)
	})
	return out
}

// GetExpense retrieves a single expense by ID.
func (s *MemStore) GetExpense(_ context.Context, id int64) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, notFound("expense", id)
	}
	return &e, nil
}

// UpdateExpense applies a partial update to an expense.
func (s *MemStore) UpdateExpense(_ context.Context, id int64, p models.ExpensePatch) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, notFound("expense", id)
	}
	p.Apply(&e)
	s.expenses[id] = e
	return &e, nil
}

// DeleteExpense removes an expense.
func (s *MemStore) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return notFound("expense", id)
	}
	delete(s.expenses, id)
	return nil
}

// CreateGoal stores a new goal.
func (s *MemStore) CreateGoal(_ context.Context, in models.NewGoal) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextGoal++
	g := in.Goal()
	g.ID = s.nextGoal
	g.CreatedAt = s.now()
	s.goals[g.ID] = g
	return &g, nil
}

// ListGoals returns a user's goals, newest first.
func (s *MemStore) ListGoals(_ context.Context, userID int64) ([]models.Goal, error) {
	return s.filterGoals(func(g models.Goal) bool { return g.UserID == userID }), nil
}

// ListGoalsByCategory returns a user's goals in one category.
func (s *MemStore) ListGoalsByCategory(_ context.Context, userID int64, category string) ([]models.Goal, error) {
	return s.filterGoals(func(g models.Goal) bool {
		return g.UserID == userID && g.Category == category
	}), nil
}

func (s *MemStore) filterGoals(keep func(models.Goal) bool) []models.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Goal{}
	for _, g := range s.goals {
		if keep(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out
}

// GetGoal retrieves a single goal by ID.
func (s *MemStore) GetGoal(_ context.Context, id int64) (*models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.goals[id]
	if !ok {
		return nil, notFound("goal", id)
	}
	return &g, nil
}

// UpdateGoal applies a partial update to a goal.
func (s *MemStore) UpdateGoal(_ context.Context, id int64, p models.GoalPatch) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return nil, notFound("goal", id)
	}
	p.Apply(&g)
	s.goals[id] = g
	return &g, nil
}

// DeleteGoal removes a goal.
func (s *MemStore) DeleteGoal(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[id]; !ok {
		return notFound("goal", id)
	}
	delete(s.goals, id)
	return nil
}

// CreateDevice registers a new device.
func (s *MemStore) CreateDevice(_ context.Context, in models.NewDevice) (*models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDevice++
	d := in.Device()
	d.ID = s.nextDevice
	d.CreatedAt = s.now()
	s.devices[d.ID] = d
	return &d, nil
}

// ListDevices returns a user's devices, most recently synced first.
func (s *MemStore) ListDevices(_ context.Context, userID int64) ([]models.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Device{}
	for _, d := range s.devices {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].LastSynced, out[j].LastSynced
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetDevice retrieves a single device by ID.
func (s *MemStore) GetDevice(_ context.Context, id int64) (*models.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.devices[id]
	if !ok {
		return nil, notFound("device", id)
	}
	return &d, nil
}

// UpdateDevice applies a partial update to a device.
func (s *MemStore) UpdateDevice(_ context.Context, id int64, p models.DevicePatch) (*models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.devices[id]
	if !ok {
		return nil, notFound("device", id)
	}
	p.Apply(&d)
	s.devices[id] = d
	return &d, nil
}

// DeleteDevice removes a device.
func (s *MemStore) DeleteDevice(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.devices[id]; !ok {
		return notFound("device", id)
	}
	delete(s.devices, id)
	return nil
}

// CreateBackup records a snapshot.
func (s *MemStore) CreateBackup(_ context.Context, userID int64, data []byte) (*models.Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextBackup++
	b := models.Backup{
		ID:        s.nextBackup,
		UserID:    userID,
		Data:      json.RawMessage(append([]byte(nil), data...)),
		CreatedAt: s.now(),
	}
	s.backups[b.ID] = b
	return &b, nil
}

// ListBackups returns a user's backups, newest first.
func (s *MemStore) ListBackups(_ context.Context, userID int64) ([]models.Backup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Backup{}
	for _, b := range s.backups {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

// LatestBackup returns the most recent backup of a user.
func (s *MemStore) LatestBackup(ctx context.Context, userID int64) (*models.Backup, error) {
	backups, err := s.ListBackups(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, ErrNotFound
	}
	return &backups[0], nil
}

// newerFirst orders by time descending, then by id descending.
func newerFirst(a, b time.Time, idA, idB int64) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA > idB
}
