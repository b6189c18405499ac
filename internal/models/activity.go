package models

import "time"

// Activity is a logged time interval. Duration is authoritative; StartTime
// and EndTime are descriptive and never reconciled with it.
type Activity struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Category    string     `json:"category"`
	Description *string    `json:"description"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Duration    int64      `json:"duration"` // seconds
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewActivity is the payload accepted when an activity is logged.
type NewActivity struct {
	UserID      int64      `json:"userId"`
	Category    string     `json:"category"`
	Description *string    `json:"description"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Duration    int64      `json:"duration"`
}

// Validate checks the create payload.
func (a *NewActivity) Validate() error {
	var c checker
	c.check(a.UserID > 0, "userId", "required")
	c.check(IsActivityCategory(a.Category), "category", "must be one of the activity categories")
	c.check(!a.StartTime.IsZero(), "startTime", "required")
	c.check(a.Duration >= 0, "duration", "must not be negative")
	return c.err()
}

// ActivityPatch is a partial activity update.
type ActivityPatch struct {
	UserID      *int64     `json:"userId"`
	Category    *string    `json:"category"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Duration    *int64     `json:"duration"`
}

// Validate checks the fields present in the patch.
func (p *ActivityPatch) Validate() error {
	var c checker
	if p.UserID != nil {
		c.check(*p.UserID > 0, "userId", "must be positive")
	}
	if p.Category != nil {
		c.check(IsActivityCategory(*p.Category), "category", "must be one of the activity categories")
	}
	if p.StartTime != nil {
		c.check(!p.StartTime.IsZero(), "startTime", "must not be empty")
	}
	if p.Duration != nil {
		c.check(*p.Duration >= 0, "duration", "must not be negative")
	}
	return c.err()
}

// Apply copies the patch onto a.
func (p *ActivityPatch) Apply(a *Activity) {
	if p.UserID != nil {
		a.UserID = *p.UserID
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Description != nil {
		a.Description = p.Description
	}
	if p.StartTime != nil {
		a.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		a.EndTime = p.EndTime
	}
	if p.Duration != nil {
		a.Duration = *p.Duration
	}
}
