package models

import (
	"strings"
	"time"
)

// Direction states which side of the target a goal wants to be on.
type Direction string

const (
	// AtLeast goals are met by reaching the target (floor-type).
	AtLeast Direction = "atLeast"
	// AtMost goals are met by staying under the target (ceiling-type).
	AtMost Direction = "atMost"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == AtLeast || d == AtMost
}

// InferDirection reproduces how goals without an explicit direction were
// classified: a "<" in the name or a social_media/gaming category makes the
// goal a ceiling.
func InferDirection(name, category string) Direction {
	if strings.Contains(name, "<") || category == CategorySocialMedia || category == CategoryGaming {
		return AtMost
	}
	return AtLeast
}

// Goal is a target value for a category with externally maintained progress.
type Goal struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	TargetValue  float64   `json:"targetValue"`
	CurrentValue float64   `json:"currentValue"`
	Unit         string    `json:"unit"`
	Active       bool      `json:"active"`
	Direction    Direction `json:"direction"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EffectiveDirection returns the stored direction, falling back to the
// inferred one for rows that predate the explicit field.
func (g *Goal) EffectiveDirection() Direction {
	if g.Direction.Valid() {
		return g.Direction
	}
	return InferDirection(g.Name, g.Category)
}

// NewGoal is the payload accepted when a goal is created.
type NewGoal struct {
	UserID       int64     `json:"userId"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	TargetValue  float64   `json:"targetValue"`
	CurrentValue float64   `json:"currentValue"`
	Unit         string    `json:"unit"`
	Active       *bool     `json:"active"`
	Direction    Direction `json:"direction"`
}

// Validate checks the create payload.
func (g *NewGoal) Validate() error {
	var c checker
	c.check(g.UserID > 0, "userId", "required")
	c.check(strings.TrimSpace(g.Name) != "", "name", "required")
	c.check(IsGoalCategory(g.Category), "category", "must be an activity or expense category")
	c.check(g.TargetValue > 0, "targetValue", "must be positive")
	c.check(g.CurrentValue >= 0, "currentValue", "must not be negative")
	c.check(strings.TrimSpace(g.Unit) != "", "unit", "required")
	c.check(g.Direction == "" || g.Direction.Valid(), "direction", "must be atLeast or atMost")
	return c.err()
}

// Goal builds the stored form of the payload, filling defaults.
func (g *NewGoal) Goal() Goal {
	active := true
	if g.Active != nil {
		active = *g.Active
	}
	dir := g.Direction
	if !dir.Valid() {
		dir = InferDirection(g.Name, g.Category)
	}
	return Goal{
		UserID:       g.UserID,
		Name:         g.Name,
		Category:     g.Category,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		Unit:         g.Unit,
		Active:       active,
		Direction:    dir,
	}
}

// GoalPatch is a partial goal update.
type GoalPatch struct {
	UserID       *int64     `json:"userId"`
	Name         *string    `json:"name"`
	Category     *string    `json:"category"`
	TargetValue  *float64   `json:"targetValue"`
	CurrentValue *float64   `json:"currentValue"`
	Unit         *string    `json:"unit"`
	Active       *bool      `json:"active"`
	Direction    *Direction `json:"direction"`
}

// Validate checks the fields present in the patch.
func (p *GoalPatch) Validate() error {
	var c checker
	if p.UserID != nil {
		c.check(*p.UserID > 0, "userId", "must be positive")
	}
	if p.Name != nil {
		c.check(strings.TrimSpace(*p.Name) != "", "name", "must not be empty")
	}
	if p.Category != nil {
		c.check(IsGoalCategory(*p.Category), "category", "must be an activity or expense category")
	}
	if p.TargetValue != nil {
		c.check(*p.TargetValue > 0, "targetValue", "must be positive")
	}
	if p.CurrentValue != nil {
		c.check(*p.CurrentValue >= 0, "currentValue", "must not be negative")
	}
	if p.Unit != nil {
		c.check(strings.TrimSpace(*p.Unit) != "", "unit", "must not be empty")
	}
	if p.Direction != nil {
		c.check(p.Direction.Valid(), "direction", "must be atLeast or atMost")
	}
	return c.err()
}

// Apply copies the patch onto g.
func (p *GoalPatch) Apply(g *Goal) {
	if p.UserID != nil {
		g.UserID = *p.UserID
	}
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.TargetValue != nil {
		g.TargetValue = *p.TargetValue
	}
	if p.CurrentValue != nil {
		g.CurrentValue = *p.CurrentValue
	}
	if p.Unit != nil {
		g.Unit = *p.Unit
	}
	if p.Active != nil {
		g.Active = *p.Active
	}
	if p.Direction != nil {
		g.Direction = *p.Direction
	}
}
