package insights

import (
	"math"

	"life-tracker/internal/models"
)

// MaxPercentage caps goal progress so over-achievement shows up to 2x.
const MaxPercentage = 200

// Progress is the display form of a goal.
type Progress struct {
	GoalID        int64            `json:"goalId"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	TargetValue   float64          `json:"targetValue"`
	CurrentValue  float64          `json:"currentValue"`
	Unit          string           `json:"unit"`
	Direction     models.Direction `json:"direction"`
	Percentage    int              `json:"percentage"`
	IsAboveTarget bool             `json:"isAboveTarget"`
	CurrentLabel  string           `json:"currentLabel"`
	TargetLabel   string           `json:"targetLabel"`
}

// Percentage returns round(current/target*100) clamped to MaxPercentage.
// Halves round up. A non-positive target counts as already exceeded unless
// there is no progress at all.
func Percentage(current, target float64) int {
	if target <= 0 {
		if current <= 0 {
			return 0
		}
		return MaxPercentage
	}
	p := math.Floor(current/target*100 + 0.5)
	if p > MaxPercentage {
		return MaxPercentage
	}
	return int(p)
}

// IsAboveTarget reports whether current is past target for the direction.
// Ceilings are only passed when exceeded; floors count once reached.
func IsAboveTarget(dir models.Direction, current, target float64) bool {
	if dir == models.AtMost {
		return current > target
	}
	return current >= target
}

// GoalProgress computes the display progress of each goal, in input order.
func GoalProgress(goals []models.Goal) []Progress {
	out := make([]Progress, 0, len(goals))
	for _, g := range goals {
		dir := g.EffectiveDirection()
		out = append(out, Progress{
			GoalID:        g.ID,
			Name:          g.Name,
			Category:      g.Category,
			TargetValue:   g.TargetValue,
			CurrentValue:  g.CurrentValue,
			Unit:          g.Unit,
			Direction:     dir,
			Percentage:    Percentage(g.CurrentValue, g.TargetValue),
			IsAboveTarget: IsAboveTarget(dir, g.CurrentValue, g.TargetValue),
			CurrentLabel:  FormatGoalValue(g.CurrentValue, g.Unit),
			TargetLabel:   FormatGoalValue(g.TargetValue, g.Unit),
		})
	}
	return out
}
