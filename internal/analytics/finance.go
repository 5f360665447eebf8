package analytics

import (
	"math"
	"time"
)

// Profit may be negative.
func Profit(salesTotal, expenseTotal int64) int64 {
	return salesTotal - expenseTotal
}

// GoalProgress is the share of goal reached, in percent. Values above 100 are
// kept as is.
func GoalProgress(total, goal int64) float64 {
	if goal <= 0 {
		return 0
	}
	return float64(total) / float64(goal) * 100
}

// DaysElapsed counts days from the period start through today, inclusive.
func DaysElapsed(periodStart, today time.Time) int {
	return Interval{Start: Day(periodStart), End: Day(today)}.Days()
}

// AverageDailyProfit returns 0 when no day has elapsed.
func AverageDailyProfit(profit int64, days int) float64 {
	if days < 1 {
		return 0
	}
	return float64(profit) / float64(days)
}

// Projection approximates a duration with 365-day years and 30-day months.
type Projection struct {
	DaysNeeded int `json:"daysNeeded"`
	Years      int `json:"years"`
	Months     int `json:"months"`
	Days       int `json:"days"`
}

// ProjectMilestone estimates how long a daily rate takes to accumulate the
// milestone. ok is false when the rate is not positive.
func ProjectMilestone(dailyRate float64, milestone int64) (p Projection, ok bool) {
	if dailyRate <= 0 || math.IsNaN(dailyRate) || math.IsInf(dailyRate, 0) {
		return Projection{}, false
	}
	days := int(math.Ceil(float64(milestone) / dailyRate))
	rem := days % 365
	return Projection{
		DaysNeeded: days,
		Years:      days / 365,
		Months:     rem / 30,
		Days:       rem % 30,
	}, true
}

// PacePercent is dailyRate as a share of the reference rate, clamped to [0,100].
func PacePercent(dailyRate, referenceRate float64) float64 {
	if referenceRate <= 0 {
		return 0
	}
	return math.Min(100, math.Max(0, dailyRate/referenceRate*100))
}
