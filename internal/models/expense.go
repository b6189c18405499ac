package models

import "time"

// Expense represents a financial expense record.
type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewExpense is the payload accepted when an expense is recorded. A zero
// Date means "now".
type NewExpense struct {
	UserID      int64     `json:"userId"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
}

// Validate checks the create payload.
func (e *NewExpense) Validate() error {
	var c checker
	c.check(e.UserID > 0, "userId", "required")
	c.check(e.Amount > 0, "amount", "must be positive")
	c.check(IsExpenseCategory(e.Category), "category", "must be one of the expense categories")
	return c.err()
}

// ExpensePatch is a partial expense update.
type ExpensePatch struct {
	UserID      *int64     `json:"userId"`
	Amount      *float64   `json:"amount"`
	Category    *string    `json:"category"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}

// Validate checks the fields present in the patch.
func (p *ExpensePatch) Validate() error {
	var c checker
	if p.UserID != nil {
		c.check(*p.UserID > 0, "userId", "must be positive")
	}
	if p.Amount != nil {
		c.check(*p.Amount > 0, "amount", "must be positive")
	}
	if p.Category != nil {
		c.check(IsExpenseCategory(*p.Category), "category", "must be one of the expense categories")
	}
	if p.Date != nil {
		c.check(!p.Date.IsZero(), "date", "must not be empty")
	}
	return c.err()
}

// Apply copies the patch onto e.
func (p *ExpensePatch) Apply(e *Expense) {
	if p.UserID != nil {
		e.UserID = *p.UserID
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Description != nil {
		e.Description = p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
}
