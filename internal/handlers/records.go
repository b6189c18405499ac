package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"life-tracker/internal/models"
	"life-tracker/internal/storage"
)

// list answers GET /api/{entity} with an optional category filter.
func list[T any](
	w http.ResponseWriter, r *http.Request, op string,
	validCategory func(string) bool,
	all func(context.Context, int64) ([]T, error),
	byCategory func(context.Context, int64, string) ([]T, error),
) {
	var (
		items []T
		err   error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		if !validCategory(category) {
			writeError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		items, err = byCategory(r.Context(), userID(r), category)
	} else {
		items, err = all(r.Context(), userID(r))
	}
	if err != nil {
		writeStoreError(w, op, "", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// get answers GET /api/{entity}/{id}.
func get[T any](w http.ResponseWriter, r *http.Request, op, entity string, fetch func(context.Context, int64) (*T, error)) {
	id, ok := pathID(w, r, entity)
	if !ok {
		return
	}
	item, err := fetch(r.Context(), id)
	if err != nil {
		writeStoreError(w, op, entity, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// update answers PATCH /api/{entity}/{id}. The patch is validated through
// *P's Validate method before it reaches the store.
func update[T, P any](w http.ResponseWriter, r *http.Request, op, entity string, apply func(context.Context, int64, P) (*T, error)) {
	id, ok := pathID(w, r, entity)
	if !ok {
		return
	}
	var patch P
	if !decode(w, r, &patch) {
		return
	}
	item, err := apply(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, op, entity, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// remove answers DELETE /api/{entity}/{id}.
func remove(w http.ResponseWriter, r *http.Request, op, entity string, del func(context.Context, int64) error) {
	id, ok := pathID(w, r, entity)
	if !ok {
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeStoreError(w, op, entity, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// removeAll answers DELETE /api/{entity}/all. A partial failure is logged and
// still reported as success with the number actually deleted.
func removeAll(w http.ResponseWriter, r *http.Request, op, plural string, del func(context.Context, storage.Store, int64) (int, error), s storage.Store) {
	deleted, err := del(r.Context(), s, userID(r))
	if err != nil {
		log.Printf("%s error: %v", op, err)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("%d %s deleted successfully", deleted, plural),
		"deleted": deleted,
	})
}

// CreateActivity logs a new activity.
func (h *Handlers) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var in models.NewActivity
	if !decode(w, r, &in) {
		return
	}
	activity, err := h.store.CreateActivity(r.Context(), in)
	if err != nil {
		writeStoreError(w, "CreateActivity", "Activity", err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

// ListActivities returns the user's activities, optionally for one category.
func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	list(w, r, "ListActivities", models.IsActivityCategory, h.store.ListActivities, h.store.ListActivitiesByCategory)
}

// GetActivity returns a single activity.
func (h *Handlers) GetActivity(w http.ResponseWriter, r *http.Request) {
	get(w, r, "GetActivity", "Activity", h.store.GetActivity)
}

// UpdateActivity applies a partial update to an activity.
func (h *Handlers) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	update(w, r, "UpdateActivity", "Activity", h.store.UpdateActivity)
}

// DeleteActivity removes an activity.
func (h *Handlers) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "DeleteActivity", "Activity", h.store.DeleteActivity)
}

// DeleteAllActivities removes every activity of the user.
func (h *Handlers) DeleteAllActivities(w http.ResponseWriter, r *http.Request) {
	removeAll(w, r, "DeleteAllActivities", "activities", storage.DeleteAllActivities, h.store)
}

// CreateExpense records a new expense. A missing date means now.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var in models.NewExpense
	if !decode(w, r, &in) {
		return
	}
	if in.Date.IsZero() {
		in.Date = h.now()
	}
	expense, err := h.store.CreateExpense(r.Context(), in)
	if err != nil {
		writeStoreError(w, "CreateExpense", "Expense", err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// ListExpenses returns the user's expenses, optionally for one category.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	list(w, r, "ListExpenses", models.IsExpenseCategory, h.store.ListExpenses, h.store.ListExpensesByCategory)
}

// GetExpense returns a single expense.
func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	get(w, r, "GetExpense", "Expense", h.store.GetExpense)
}

// UpdateExpense applies a partial update to an expense.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	update(w, r, "UpdateExpense", "Expense", h.store.UpdateExpense)
}

// DeleteExpense removes an expense.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "DeleteExpense", "Expense", h.store.DeleteExpense)
}

// DeleteAllExpenses removes every expense of the user.
func (h *Handlers) DeleteAllExpenses(w http.ResponseWriter, r *http.Request) {
	removeAll(w, r, "DeleteAllExpenses", "expenses", storage.DeleteAllExpenses, h.store)
}

// CreateGoal adds a goal.
func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var in models.NewGoal
	if !decode(w, r, &in) {
		return
	}
	goal, err := h.store.CreateGoal(r.Context(), in)
	if err != nil {
		writeStoreError(w, "CreateGoal", "Goal", err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

// ListGoals returns the user's goals, optionally for one category.
func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	list(w, r, "ListGoals", models.IsGoalCategory, h.store.ListGoals, h.store.ListGoalsByCategory)
}

// GetGoal returns a single goal.
func (h *Handlers) GetGoal(w http.ResponseWriter, r *http.Request) {
	get(w, r, "GetGoal", "Goal", h.store.GetGoal)
}

// UpdateGoal applies a partial update to a goal.
func (h *Handlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	update(w, r, "UpdateGoal", "Goal", h.store.UpdateGoal)
}

// DeleteGoal removes a goal.
func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "DeleteGoal", "Goal", h.store.DeleteGoal)
}

// DeleteAllGoals removes every goal of the user.
func (h *Handlers) DeleteAllGoals(w http.ResponseWriter, r *http.Request) {
	removeAll(w, r, "DeleteAllGoals", "goals", storage.DeleteAllGoals, h.store)
}

// CreateDevice registers a device.
func (h *Handlers) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var in models.NewDevice
	if !decode(w, r, &in) {
		return
	}
	device, err := h.store.CreateDevice(r.Context(), in)
	if err != nil {
		writeStoreError(w, "CreateDevice", "Device", err)
		return
	}
	writeJSON(w, http.StatusCreated, device)
}

// ListDevices returns the user's devices.
func (h *Handlers) ListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.store.ListDevices(r.Context(), userID(r))
	if err != nil {
		writeStoreError(w, "ListDevices", "", err)
		return
	}
	writeJSON(w, http.StatusOK, devices)
}

// GetDevice returns a single device.
func (h *Handlers) GetDevice(w http.ResponseWriter, r *http.Request) {
	get(w, r, "GetDevice", "Device", h.store.GetDevice)
}

// UpdateDevice applies a partial update to a device.
func (h *Handlers) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	update(w, r, "UpdateDevice", "Device", h.store.UpdateDevice)
}

// DeleteDevice removes a device.
func (h *Handlers) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	remove(w, r, "DeleteDevice", "Device", h.store.DeleteDevice)
}

// SyncDevice marks a device as synced now. No data is transferred.
func (h *Handlers) SyncDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "device")
	if !ok {
		return
	}
	now := h.now()
	device, err := h.store.UpdateDevice(r.Context(), id, models.DevicePatch{LastSynced: &now})
	if err != nil {
		writeStoreError(w, "SyncDevice", "Device", err)
		return
	}
	writeJSON(w, http.StatusOK, device)
}
