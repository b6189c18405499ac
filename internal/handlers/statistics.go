package handlers

import (
	"net/http"

	"life-tracker/internal/insights"
	"life-tracker/internal/models"
)

// DashboardResponse is the aggregated view behind the dashboard page.
type DashboardResponse struct {
	Period          insights.Period           `json:"period"`
	TimeAllocation  []insights.TimeAllocation `json:"timeAllocation"`
	ExpenseSummary  []insights.ExpenseSummary `json:"expenseSummary"`
	TotalExpenses   float64                   `json:"totalExpenses"`
	TotalLabel      string                    `json:"totalLabel"`
	GoalProgress    []insights.Progress       `json:"goalProgress"`
	WeeklyBreakdown []insights.DayAllocation  `json:"weeklyBreakdown,omitempty"`
}

// Dashboard aggregates the user's activities, expenses and goals for the
// requested period (daily, weekly or monthly; weekly by default).
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	period, err := insights.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	id := userID(r)
	activities, err := h.store.ListActivities(ctx, id)
	if err != nil {
		writeStoreError(w, "Dashboard", "", err)
		return
	}
	expenses, err := h.store.ListExpenses(ctx, id)
	if err != nil {
		writeStoreError(w, "Dashboard", "", err)
		return
	}
	goals, err := h.store.ListGoals(ctx, id)
	if err != nil {
		writeStoreError(w, "Dashboard", "", err)
		return
	}

	now := h.now()
	summary := insights.ExpenseSummaries(expenses, period, now)
	total := insights.TotalExpenses(insights.FilterExpenses(expenses, period, now))

	resp := DashboardResponse{
		Period:         period,
		TimeAllocation: insights.TimeAllocations(activities, period, now),
		ExpenseSummary: summary,
		TotalExpenses:  total,
		TotalLabel:     insights.FormatMoney(total),
		GoalProgress:   insights.GoalProgress(activeGoals(goals)),
	}
	if period == insights.Weekly {
		resp.WeeklyBreakdown = insights.WeeklyBreakdown(activities, now)
	}
	writeJSON(w, http.StatusOK, resp)
}

func activeGoals(goals []models.Goal) []models.Goal {
	active := make([]models.Goal, 0, len(goals))
	for _, g := range goals {
		if g.Active {
			active = append(active, g)
		}
	}
	return active
}
