package insights

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatSecondsHM renders seconds as "Xh Ym", or "Ym" under an hour.
func FormatSecondsHM(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatSecondsHMS renders seconds as HH:MM:SS.
func FormatSecondsHMS(seconds int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FormatMoney renders a USD amount such as "$1,234.50".
func FormatMoney(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -amount)
	}
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// FormatGoalValue renders a goal value in its unit.
func FormatGoalValue(value float64, unit string) string {
	switch unit {
	case "hours":
		hours := math.Floor(value)
		minutes := math.Round((value - hours) * 60)
		return fmt.Sprintf("%dh %dm", int64(hours), int64(minutes))
	case "USD":
		return FormatMoney(value)
	default:
		return strconv.FormatFloat(value, 'f', -1, 64) + " " + unit
	}
}
