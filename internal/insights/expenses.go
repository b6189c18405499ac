package insights

import (
	"time"

	"github.com/shopspring/decimal"

	"life-tracker/internal/models"
)

// ExpenseSummary is the total spent on a category within a period.
type ExpenseSummary struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// ExpenseSummaries groups the expenses inside the period by category, in
// first-seen order.
func ExpenseSummaries(expenses []models.Expense, p Period, now time.Time) []ExpenseSummary {
	filtered := FilterExpenses(expenses, p, now)

	var order []string
	totals := make(map[string]decimal.Decimal)
	for _, e := range filtered {
		sum, ok := totals[e.Category]
		if !ok {
			order = append(order, e.Category)
		}
		totals[e.Category] = sum.Add(decimal.NewFromFloat(e.Amount))
	}

	out := make([]ExpenseSummary, 0, len(order))
	for _, c := range order {
		out = append(out, ExpenseSummary{Category: c, Amount: totals[c].InexactFloat64()})
	}
	return out
}

// TotalExpenses sums every amount in expenses.
func TotalExpenses(expenses []models.Expense) float64 {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	return total.InexactFloat64()
}
