package storage

import (
	"context"
	"fmt"
)

// DeleteAllActivities deletes a user's activities one at a time. It is not
// atomic: on the first failing delete it stops and returns how many rows were
// already removed together with the error. The rest stay in place.
func DeleteAllActivities(ctx context.Context, s Store, userID int64) (int, error) {
	activities, err := s.ListActivities(ctx, userID)
	if err != nil {
		return 0, err
	}
	ids := make([]int64, len(activities))
	for i, a := range activities {
		ids[i] = a.ID
	}
	return deleteEach(ctx, ids, "activity", s.DeleteActivity)
}

// DeleteAllExpenses deletes a user's expenses one at a time, like
// DeleteAllActivities.
func DeleteAllExpenses(ctx context.Context, s Store, userID int64) (int, error) {
	expenses, err := s.ListExpenses(ctx, userID)
	if err != nil {
		return 0, err
	}
	ids := make([]int64, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	return deleteEach(ctx, ids, "expense", s.DeleteExpense)
}

// DeleteAllGoals deletes a user's goals one at a time, like
// DeleteAllActivities.
func DeleteAllGoals(ctx context.Context, s Store, userID int64) (int, error) {
	goals, err := s.ListGoals(ctx, userID)
	if err != nil {
		return 0, err
	}
	ids := make([]int64, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	return deleteEach(ctx, ids, "goal", s.DeleteGoal)
}

func deleteEach(ctx context.Context, ids []int64, entity string, del func(context.Context, int64) error) (int, error) {
	deleted := 0
	for _, id := range ids {
		if err := del(ctx, id); err != nil {
			return deleted, fmt.Errorf("delete %s %d after %d deleted: %w", entity, id, deleted, err)
		}
		deleted++
	}
	return deleted, nil
}
